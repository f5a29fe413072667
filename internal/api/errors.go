package api

import (
	"github.com/pkg/errors"
)

// Failure messages surfaced to callers. Errors leaving this package carry
// one of these texts or the server's own message.
var (
	ErrUnauthorized  = errors.New("token expired or invalid")
	ErrNetwork       = errors.New("network connection failed, please check the network")
	ErrRequestConfig = errors.New("request configuration error")
)

const (
	msgRequestFailed     = "request failed"
	msgUploadTokenFailed = "failed to get upload token"
)

// StatusError is a non-2xx response other than 401
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return e.Message
}

// envelopeError is a 2xx response whose envelope code is not success
type envelopeError struct {
	Code    int
	Message string
}

func (e *envelopeError) Error() string {
	return e.Message
}

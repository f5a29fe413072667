// Package api is the client for the video management backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"
)

// Client defaults
const (
	DefaultBaseURL = "https://pay.moujiang.com/apiAdmin"
	DefaultTimeout = 30 * time.Second
)

const (
	pathUploadToken = "/api/upload/uploadToken"
	pathInsertVideo = "/api/v1/man/insert"

	envelopeSuccess = 200
)

// Client talks to the backend over HTTP
type Client struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
	hooks   []func(*http.Request)
	now     func() time.Time
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithRequestHook registers fn to run on every outgoing request
func WithRequestHook(fn func(*http.Request)) Option {
	return func(c *Client) { c.hooks = append(c.hooks, fn) }
}

// New creates a client for baseURL, or DefaultBaseURL when empty
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root
func (c *Client) BaseURL() string {
	return c.baseURL
}

type tokenEnvelope struct {
	Code int    `json:"code"`
	Data string `json:"data"`
	Msg  string `json:"msg"`
}

// GetUploadToken fetches an object-storage upload token
func (c *Client) GetUploadToken(ctx context.Context, authorization string) (string, error) {
	if err := checkAuthorization(authorization, c.now()); err != nil {
		c.logf(logging.Warning, "authorization rejected before request", "error", err.Error())
		return "", err
	}

	var env tokenEnvelope
	if err := c.do(ctx, http.MethodPost, pathUploadToken, authorization, nil, &env); err != nil {
		return "", err
	}
	if env.Code != envelopeSuccess {
		msg := env.Msg
		if msg == "" {
			msg = msgUploadTokenFailed
		}
		return "", &envelopeError{Code: env.Code, Message: msg}
	}
	return env.Data, nil
}

// Video is the metadata registered for an uploaded video.
// Zero-valued fields leave the backend defaults in place.
type Video struct {
	Title         string `json:"title,omitempty"`
	VideoURL      string `json:"videoUrl,omitempty"`
	CoverURL      string `json:"coverUrl,omitempty"`
	VideoKey      string `json:"videoKey,omitempty"`
	CoverKey      string `json:"coverKey,omitempty"`
	FileSize      int64  `json:"fileSize,omitempty"`
	CreateTime    string `json:"createTime,omitempty"`
	Status        string `json:"status,omitempty"`
	ExamineStatus string `json:"examineStatus,omitempty"`
	CreationType  int    `json:"creationType,omitempty"`

	// Extra fields sent as-is, applied last
	Extra map[string]any `json:"-"`
}

func defaultVideoFields() map[string]any {
	return map[string]any{
		"status":        "1",
		"examineStatus": "1",
		"creationType":  1,
	}
}

// insertBody overlays the caller's fields onto the defaults
func insertBody(v Video) (map[string]any, error) {
	body := defaultVideoFields()

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	for k, val := range fields {
		body[k] = val
	}
	for k, val := range v.Extra {
		body[k] = val
	}
	return body, nil
}

// SubmitVideo registers an uploaded video and returns the decoded response body
func (c *Client) SubmitVideo(ctx context.Context, v Video) (map[string]any, error) {
	body, err := insertBody(v)
	if err != nil {
		c.logf(logging.Error, "could not build video body", "error", err.Error())
		return nil, ErrRequestConfig
	}
	c.logf(logging.Debug, "submitting video", "title", v.Title, "videoKey", v.VideoKey)

	var out map[string]any
	if err := c.do(ctx, http.MethodPost, pathInsertVideo, "", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// do performs a JSON request and maps every failure to the package's error set
func (c *Client) do(ctx context.Context, method, path, authorization string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			c.logf(logging.Error, "could not encode request", "path", path, "error", err.Error())
			return ErrRequestConfig
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		c.logf(logging.Error, "could not build request", "path", path, "error", err.Error())
		return ErrRequestConfig
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	for _, hook := range c.hooks {
		hook(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.logf(logging.Warning, "request got no response", "path", path, "error", err.Error())
		return ErrNetwork
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logf(logging.Warning, "could not read response", "path", path, "error", err.Error())
		return ErrNetwork
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := msgRequestFailed
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &payload) == nil && payload.Message != "" {
			msg = payload.Message
		}
		c.logf(logging.Warning, "request failed", "path", path, "status", resp.StatusCode, "message", msg)
		return &StatusError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "invalid response from %s", path)
	}
	return nil
}

func (c *Client) logf(level int8, msg string, params ...interface{}) {
	if c.log == nil {
		return
	}
	switch level {
	case logging.Debug:
		c.log.Debug(msg, params...)
	case logging.Warning:
		c.log.Warning(msg, params...)
	case logging.Error:
		c.log.Error(msg, params...)
	default:
		c.log.Info(msg, params...)
	}
}

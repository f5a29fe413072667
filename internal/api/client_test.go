package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ausocean/utils/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", WithLogger((*logging.TestLogger)(t)))
}

func TestGetUploadToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, pathUploadToken, r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("Authorization"))
		w.Write([]byte(`{"code":200,"data":"upload-token","msg":"ok"}`))
	})

	tok, err := c.GetUploadToken(context.Background(), "secret")
	require.NoError(t, err)
	assert.Equal(t, "upload-token", tok)
}

func TestGetUploadTokenEnvelopeFailure(t *testing.T) {
	tests := []struct {
		name, body, want string
	}{
		{"server message", `{"code":500,"msg":"quota exceeded"}`, "quota exceeded"},
		{"no message", `{"code":403}`, msgUploadTokenFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})
			_, err := c.GetUploadToken(context.Background(), "secret")
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestErrorTranslation(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
		is     error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"message":"ignored"}`, "token expired or invalid", ErrUnauthorized},
		{"server message", http.StatusBadRequest, `{"message":"title required"}`, "title required", nil},
		{"no message", http.StatusInternalServerError, `oops`, "request failed", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			_, err := c.SubmitVideo(context.Background(), Video{Title: "x"})
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			} else {
				var se *StatusError
				require.True(t, errors.As(err, &se))
				assert.Equal(t, tt.status, se.StatusCode)
			}
		})
	}
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url)
	_, err := c.GetUploadToken(context.Background(), "secret")
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, "network connection failed, please check the network", err.Error())
}

func TestRequestConfigFailure(t *testing.T) {
	c := New("http://bad host")
	_, err := c.SubmitVideo(context.Background(), Video{})
	assert.ErrorIs(t, err, ErrRequestConfig)

	_, err = c.SubmitVideo(context.Background(), Video{Extra: map[string]any{"bad": func() {}}})
	assert.ErrorIs(t, err, ErrRequestConfig)
}

func TestSubmitVideoBody(t *testing.T) {
	bodies := make(chan map[string]any, 1)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, pathInsertVideo, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "uploader", r.Header.Get("X-Client"))
		data, _ := io.ReadAll(r.Body)
		var body map[string]any
		assert.NoError(t, json.Unmarshal(data, &body))
		bodies <- body
		w.Write([]byte(`{"code":200,"data":{"id":7}}`))
	})
	WithRequestHook(func(r *http.Request) { r.Header.Set("X-Client", "uploader") })(c)

	resp, err := c.SubmitVideo(context.Background(), Video{
		Title:         "holiday",
		VideoURL:      "https://cdn/v",
		CoverURL:      "https://cdn/v-cover",
		VideoKey:      "v",
		CoverKey:      "v-cover",
		FileSize:      1234,
		CreateTime:    "2025-03-15 10:30:00",
		ExamineStatus: "0",
		Extra:         map[string]any{"category": "travel"},
	})
	require.NoError(t, err)
	assert.Equal(t, float64(200), resp["code"])

	got := <-bodies
	assert.Equal(t, map[string]any{
		"status":        "1",
		"examineStatus": "0",
		"creationType":  float64(1),
		"title":         "holiday",
		"videoUrl":      "https://cdn/v",
		"coverUrl":      "https://cdn/v-cover",
		"videoKey":      "v",
		"coverKey":      "v-cover",
		"fileSize":      float64(1234),
		"createTime":    "2025-03-15 10:30:00",
		"category":      "travel",
	}, got)
}

func TestContextCancelIsNotNetworkError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.GetUploadToken(ctx, "secret")
	assert.ErrorIs(t, err, context.Canceled)
}

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()}).SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

func TestExpiredJWTFailsFast(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"code":200,"data":"tok"}`))
	})

	_, err := c.GetUploadToken(context.Background(), "Bearer "+signed(t, time.Now().Add(-time.Hour)))
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, calls.Load())

	tok, err := c.GetUploadToken(context.Background(), signed(t, time.Now().Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCheckAuthorizationIgnoresOpaqueTokens(t *testing.T) {
	for _, auth := range []string{"", "abc", "a.b.c", "Bearer not-a-jwt"} {
		assert.NoError(t, checkAuthorization(auth, time.Now()), auth)
	}
}

func TestDefaultBaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, New("").BaseURL())
	c := New("", WithTimeout(5*time.Second))
	assert.Equal(t, 5*time.Second, c.http.Timeout)
}

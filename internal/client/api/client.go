// Package api is the client for the profile submission gateway: one HTTP
// operation per onboarding step, each taking the normalized payload for
// exactly that step and returning updated profile fields.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/skatuve/skatuve-client/internal/profile"
)

// RejectionError is a structured non-success response from the API. Its
// message, when present, is surfaced to the user verbatim.
type RejectionError struct {
	StatusCode int
	Message    string
}

func (e *RejectionError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "request rejected"
}

// ErrMalformedResponse marks a response body that could not be decoded.
// It is handled like any other transport failure.
var ErrMalformedResponse = errors.New("api: malformed response")

// TokenSource supplies the bearer token attached to every request. An
// empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// envelope is the uniform gateway response shape.
type envelope struct {
	Success bool                 `json:"success"`
	Payload *profile.UserProfile `json:"payload,omitempty"`
	Message string               `json:"message,omitempty"`
}

// Client talks to the remote profile API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     zerolog.Logger
}

// NewClient creates a gateway client. timeout is the transport-level
// default; zero disables it, leaving the caller's context in charge.
func NewClient(baseURL string, tokens TokenSource, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

func (c *Client) authorize(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// postJSON sends body as JSON and decodes the envelope.
func (c *Client) postJSON(ctx context.Context, path string, body any) (*profile.UserProfile, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, errors.Wrap(err, "encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	return c.do(req)
}

// filePart is one file attached to a multipart submission.
type filePart struct {
	field    string
	path     string
	fileName string
}

// postMultipart sends fields and files as multipart form data and decodes
// the envelope. File parts stream from the local paths the form collected.
func (c *Client) postMultipart(ctx context.Context, path string, fields map[string]string, files []filePart) (*profile.UserProfile, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for field, value := range fields {
		if err := writer.WriteField(field, value); err != nil {
			return nil, errors.Wrap(err, "write form field")
		}
	}

	for _, f := range files {
		src, err := os.Open(f.path)
		if err != nil {
			return nil, errors.Wrapf(err, "open upload %s", f.path)
		}

		name := f.fileName
		if name == "" {
			name = filepath.Base(f.path)
		}

		part, err := writer.CreateFormFile(f.field, name)
		if err == nil {
			_, err = io.Copy(part, src)
		}
		src.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "attach upload %s", f.path)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "finish multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(req)

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*profile.UserProfile, error) {
	res, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "api request failed")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		c.log.Debug().Str("path", req.URL.Path).Int("status", res.StatusCode).Msg("undecodable api response")
		return nil, errors.Wrapf(ErrMalformedResponse, "status %d", res.StatusCode)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 || !env.Success {
		return nil, &RejectionError{StatusCode: res.StatusCode, Message: env.Message}
	}

	return env.Payload, nil
}

// getJSON performs an authorized GET and decodes the envelope.
func (c *Client) getJSON(ctx context.Context, path string) (*profile.UserProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	c.authorize(req)

	return c.do(req)
}

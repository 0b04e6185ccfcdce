// Package snapurl is the single chokepoint for all calls to the upstream
// SnapURL REST API. Every call resolves to the normalized envelope
// {success, message, data, error} regardless of whether the upstream body was
// JSON, plain text, or binary, and every failure is a typed *APIError decided
// here at the transport boundary.
package snapurl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
)

// ErrorKind classifies an upstream failure. Callers branch on the kind
// instead of inspecting message text.
type ErrorKind int

const (
	KindNetwork ErrorKind = iota
	KindUnauthorized
	KindValidation
	KindServer
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation"
	default:
		return "server"
	}
}

// APIError carries the classification and the server's message, if any.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsUnauthorized reports whether err is an upstream authorization failure.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Kind == KindUnauthorized
}

// Envelope is the normalized upstream response shape.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`

	// Blob holds a binary body (exports, QR images). Never serialized.
	Blob []byte `json:"-"`
}

// DecodeData unmarshals the envelope's data payload into v.
func (e *Envelope) DecodeData(v interface{}) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("envelope has no data payload")
	}
	return json.Unmarshal(e.Data, v)
}

type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient builds a client against the given base URL. Every request it
// issues is bounded by timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type requestOptions struct {
	skipAuth bool
}

type Option func(*requestOptions)

// SkipAuth suppresses the Authorization header even when a token is supplied.
// Auth is opt-out: by default every request carries the token it was given.
func SkipAuth() Option {
	return func(o *requestOptions) { o.skipAuth = true }
}

// do issues one request and normalizes the response. A non-2xx status becomes
// a *APIError carrying the server's message if one could be extracted, else
// "HTTP <status>". The context is bounded by the client timeout.
func (c *Client) do(ctx context.Context, method, path, token string, body interface{}, opts ...Option) (*Envelope, error) {
	var ro requestOptions
	for _, opt := range opts {
		opt(&ro)
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &APIError{Kind: KindValidation, Message: "failed to encode request: " + err.Error()}
		}
		reqBody = bytes.NewReader(payload)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Message: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" && !ro.skipAuth {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Kind: KindNetwork, Message: "failed to read response: " + err.Error()}
	}

	env := normalize(resp, raw)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return nil, &APIError{Kind: kindFromStatus(resp.StatusCode), Status: resp.StatusCode, Message: msg}
	}
	return env, nil
}

// normalize folds any body shape into the envelope.
func normalize(resp *http.Response, raw []byte) *Envelope {
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	switch {
	case mediaType == "application/json" || mediaType == "":
		env := &Envelope{}
		if len(raw) == 0 {
			env.Success = ok
			return env
		}
		if err := json.Unmarshal(raw, env); err == nil {
			return env
		}
		// Not our envelope shape; treat the body as opaque text.
		return &Envelope{Success: ok, Message: strings.TrimSpace(string(raw))}
	case strings.HasPrefix(mediaType, "text/"):
		return &Envelope{Success: ok, Message: strings.TrimSpace(string(raw))}
	default:
		return &Envelope{Success: ok, Blob: raw}
	}
}

func kindFromStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindServer
	}
}

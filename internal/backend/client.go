package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Roelanb/wacheck/internal/checker"
)

const (
	pathSessionStatus = "/api/session-status"
	pathInitialize    = "/api/initialize"
	pathCheckSingle   = "/api/check-single"
	pathCheckBatch    = "/api/check-batch"
	pathStatus        = "/api/status"
)

// Logger is the subset of zap.SugaredLogger the client uses.
type Logger interface {
	Debugw(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
}

// AppError is an application-level failure reported in the response body.
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string { return e.Message }

// StatusError is a non-2xx response that carried no application error.
type StatusError struct {
	Method string
	URL    string
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend %s %s: %s", e.Method, e.URL, e.Status)
}

// InitResult is the body of POST /api/initialize.
type InitResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// BatchStarted is the body of a successful POST /api/check-batch.
type BatchStarted struct {
	Message string `json:"message,omitempty"`
	Total   int    `json:"total,omitempty"`
}

// Client calls the checker backend over HTTP.
type Client struct {
	Base string
	HTTP *http.Client
	log  Logger
}

// New returns a client for base (e.g. http://127.0.0.1:5000). A nil httpClient
// gets a client with the given timeout.
func New(base string, httpClient *http.Client, timeout time.Duration, log Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		Base: strings.TrimRight(base, "/"),
		HTTP: httpClient,
		log:  log,
	}
}

func (c *Client) SessionStatus(ctx context.Context) (checker.SessionState, error) {
	var out checker.SessionState
	if err := c.do(ctx, http.MethodGet, pathSessionStatus, nil, &out); err != nil {
		return checker.SessionState{}, err
	}
	return out, nil
}

func (c *Client) Initialize(ctx context.Context) (InitResult, error) {
	var out InitResult
	if err := c.do(ctx, http.MethodPost, pathInitialize, struct{}{}, &out); err != nil {
		return InitResult{}, err
	}
	return out, nil
}

// CheckSingle looks up one number. An application error is folded into the
// returned result's Error field rather than returned as err.
func (c *Client) CheckSingle(ctx context.Context, number string) (checker.CheckResult, error) {
	var out checker.CheckResult
	err := c.do(ctx, http.MethodPost, pathCheckSingle, struct {
		Number string `json:"number"`
	}{Number: number}, &out)
	var appErr *AppError
	if errors.As(err, &appErr) {
		return checker.CheckResult{Number: number, Error: appErr.Message}, nil
	}
	if err != nil {
		return checker.CheckResult{}, err
	}
	return out, nil
}

// StartBatch submits numbers as a background job. Rejections come back as *AppError.
func (c *Client) StartBatch(ctx context.Context, numbers []string) (BatchStarted, error) {
	var out BatchStarted
	if err := c.do(ctx, http.MethodPost, pathCheckBatch, struct {
		Numbers []string `json:"numbers"`
	}{Numbers: numbers}, &out); err != nil {
		return BatchStarted{}, err
	}
	return out, nil
}

func (c *Client) Status(ctx context.Context) (checker.BatchStatus, error) {
	var out checker.BatchStatus
	if err := c.do(ctx, http.MethodGet, pathStatus, nil, &out); err != nil {
		return checker.BatchStatus{}, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		body = buf
	}
	u := c.Base + path
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("backend %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	if c.log != nil {
		c.log.Debugw("backend call", "method", method, "path", path, "status", resp.StatusCode, "request_id", reqID, "elapsed", time.Since(start))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}

	// The service answers application failures as {"error": "..."}, usually with 200.
	if msg, ok := errorField(raw); ok {
		if c.log != nil {
			c.log.Warnw("backend reported error", "path", path, "status", resp.StatusCode, "error", msg, "request_id", reqID)
		}
		return &AppError{Status: resp.StatusCode, Message: msg}
	}
	if resp.StatusCode/100 != 2 {
		return &StatusError{Method: method, URL: u, Status: resp.Status}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func errorField(raw []byte) (string, bool) {
	var probe struct {
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || probe.Error == nil || *probe.Error == "" {
		return "", false
	}
	return *probe.Error, true
}

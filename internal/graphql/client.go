// Package graphql sends named query and mutation documents to the single
// configured endpoint and normalizes every failure into an OperationError.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"evently-client/internal/session"
	"evently-client/pkg/logger"

	"github.com/google/uuid"
)

// Document is a named query or mutation
type Document struct {
	Name  string
	Query string
}

// Variables are sent alongside a Document
type Variables map[string]interface{}

// Executor is implemented by Client and by test doubles
type Executor interface {
	Execute(ctx context.Context, doc Document, vars Variables, cred *session.Credential) (*Result, error)
}

// ErrorEntry is one element of the envelope's errors array
type ErrorEntry struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path,omitempty"`
}

type request struct {
	Query     string    `json:"query"`
	Variables Variables `json:"variables,omitempty"`
}

type envelope struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []ErrorEntry               `json:"errors"`
}

// Client is a single-shot request/response client: no retries, no
// batching, no timeout beyond the caller's context.
type Client struct {
	endpoint   string
	httpClient *http.Client
	log        *logger.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger overrides the default logger
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// NewClient creates a client for endpoint
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
		log:        logger.GetDefault(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the configured URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Execute posts doc and vars. A bearer header is attached iff cred is non-nil
// with a non-empty token.
func (c *Client) Execute(ctx context.Context, doc Document, vars Variables, cred *session.Credential) (*Result, error) {
	requestID := uuid.NewString()
	log := c.log.WithRequestID(requestID)
	start := time.Now()

	res, status, err := c.do(ctx, requestID, doc, vars, cred)
	log.LogOperation(ctx, doc.Name, status, time.Since(start), err)
	return res, err
}

func (c *Client) do(ctx context.Context, requestID string, doc Document, vars Variables, cred *session.Credential) (*Result, int, error) {
	body, err := json.Marshal(request{Query: doc.Query, Variables: vars})
	if err != nil {
		return nil, 0, c.transportErr(doc, 0, fmt.Errorf("encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, 0, c.transportErr(doc, 0, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if cred != nil && cred.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cred.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, c.transportErr(doc, 0, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, c.transportErr(doc, resp.StatusCode, fmt.Errorf("read body: %w", err))
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		opErr := c.transportErr(doc, resp.StatusCode, ErrUnexpectedStatus)
		if decodeErr == nil {
			opErr.Messages = messages(env.Errors)
		}
		return nil, resp.StatusCode, opErr
	}

	if decodeErr != nil {
		return nil, resp.StatusCode, c.transportErr(doc, resp.StatusCode, fmt.Errorf("%w: %v", ErrMalformedBody, decodeErr))
	}

	if len(env.Errors) > 0 && len(env.Data) == 0 {
		return nil, resp.StatusCode, &OperationError{
			Kind:       KindApplication,
			Operation:  doc.Name,
			StatusCode: resp.StatusCode,
			Messages:   messages(env.Errors),
			Err:        ErrRemote,
		}
	}

	return &Result{
		Operation:  doc.Name,
		StatusCode: resp.StatusCode,
		Data:       env.Data,
		Errors:     env.Errors,
	}, resp.StatusCode, nil
}

func (c *Client) transportErr(doc Document, status int, err error) *OperationError {
	return &OperationError{
		Kind:       KindTransport,
		Operation:  doc.Name,
		StatusCode: status,
		Err:        err,
	}
}

func messages(entries []ErrorEntry) []string {
	if len(entries) == 0 {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Message)
	}
	return out
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/dsaintel/dsaiq/internal/analytics"
	"github.com/dsaintel/dsaiq/internal/quiz"
)

// Endpoint paths. The analytics path takes the user id as a trailing segment.
const (
	PathQuiz      = "/quiz"
	PathSubmit    = "/quiz/submit"
	PathAnalytics = "/analytics"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// Client is the scoring service as seen by the quiz and dashboard.
// Calls are one-shot: no retries, and a submission is sent at most once.
type Client interface {
	// FetchQuiz returns the question set for userID.
	FetchQuiz(ctx context.Context, userID string) ([]quiz.Question, error)

	// FetchAnalytics returns either a *analytics.Snapshot or an
	// analytics.Message for userID.
	FetchAnalytics(ctx context.Context, userID string) (analytics.Result, error)

	// SubmitQuiz sends a finished session. Any 2xx answer is success.
	SubmitQuiz(ctx context.Context, sub quiz.Submission) (*Ack, error)
}

// Ack is the submission acknowledgement. Its fields are filled when the body
// carries them and are nil otherwise.
type Ack struct {
	TotalQuestions *int
	Accuracy       *float64
	Raw            json.RawMessage
}

func decodeAck(raw []byte) *Ack {
	ack := &Ack{Raw: raw}
	if !gjson.ValidBytes(raw) {
		return ack
	}
	if v := gjson.GetBytes(raw, "total_questions"); v.Type == gjson.Number {
		n := int(v.Int())
		ack.TotalQuestions = &n
	}
	if v := gjson.GetBytes(raw, "accuracy"); v.Type == gjson.Number {
		a := v.Float()
		ack.Accuracy = &a
	}
	return ack
}

// HTTPClient talks to the scoring service over HTTP.
type HTTPClient struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// NewHTTPClient creates a client for the service at baseURL. A non-positive
// timeout disables the per-request deadline.
func NewHTTPClient(baseURL string, timeout time.Duration, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		http:    http.DefaultClient,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the service root the client was built with.
func (c *HTTPClient) BaseURL() string { return c.baseURL }

func (c *HTTPClient) FetchQuiz(ctx context.Context, userID string) ([]quiz.Question, error) {
	q := url.Values{}
	if userID != "" {
		q.Set("user_id", userID)
	}

	endpoint := "GET " + PathQuiz
	raw, err := c.do(ctx, http.MethodGet, PathQuiz, q, nil)
	if err != nil {
		return nil, err
	}
	if err := validateResponse(endpoint, QuizSchema, raw); err != nil {
		return nil, err
	}

	var questions []quiz.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, &ErrInvalidResponse{Endpoint: endpoint, Content: raw, Err: err}
	}
	return questions, nil
}

func (c *HTTPClient) FetchAnalytics(ctx context.Context, userID string) (analytics.Result, error) {
	path := PathAnalytics + "/" + url.PathEscape(userID)

	endpoint := "GET " + PathAnalytics
	raw, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	if err := validateResponse(endpoint, AnalyticsSchema, raw); err != nil {
		return nil, err
	}

	res, err := analytics.Decode(raw)
	if err != nil {
		return nil, &ErrInvalidResponse{Endpoint: endpoint, Content: raw, Err: err}
	}
	return res, nil
}

func (c *HTTPClient) SubmitQuiz(ctx context.Context, sub quiz.Submission) (*Ack, error) {
	if sub.Responses == nil {
		sub.Responses = []quiz.AnswerRecord{}
	}
	raw, err := c.do(ctx, http.MethodPost, PathSubmit, nil, sub)
	if err != nil {
		return nil, err
	}
	return decodeAck(raw), nil
}

// do sends one request and returns the body of a 2xx answer.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	endpoint := method + " " + path
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal %s body: %w", endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ErrTransport{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &ErrTransport{Endpoint: endpoint, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ErrStatus{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       snippet(raw),
		}
	}
	return raw, nil
}

// snippet shortens a body for error messages.
func snippet(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}

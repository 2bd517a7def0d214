// Package judge wraps the external code-execution service. The judge is
// an opaque collaborator reached over HTTP; this client only adds a
// request timeout, one bounded retry, and a typed failure.
package judge

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

	"github.com/skillmatch-io/apiserver/config"
)

// ErrUnavailable is returned when the judge cannot produce a verdict:
// transport failure, timeout, or an error response, after retries are
// exhausted.
var ErrUnavailable = errors.New("judge unavailable")

// VerdictAccepted is the verdict description for a fully passing run.
const VerdictAccepted = "Accepted"

const (
	defaultRequestTimeout = 15 * time.Second
	maxAttempts           = 2
	retryBackoff          = 500 * time.Millisecond
)

// Judge0 language ids for the supported languages.
var languageIDs = map[string]int{
	"python":     71,
	"java":       62,
	"c":          50,
	"c++":        54,
	"javascript": 63,
}

// LanguageID resolves a language name (case-insensitive) to the judge's
// language id.
func LanguageID(language string) (int, bool) {
	id, ok := languageIDs[strings.ToLower(strings.TrimSpace(language))]
	return id, ok
}

// Request describes one grading run.
type Request struct {
	SourceCode     string `json:"source_code"`
	LanguageID     int    `json:"language_id"`
	Stdin          string `json:"stdin"`
	ExpectedOutput string `json:"expected_output,omitempty"`
}

// Result is the judge's verdict for a run.
type Result struct {
	Verdict string
}

// Accepted reports whether the run passed.
func (r Result) Accepted() bool {
	return r.Verdict == VerdictAccepted
}

type gradeResponse struct {
	Status struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"status"`
}

// Client calls the external judge synchronously. The URL is expected to
// request a blocking run (wait=true), so one POST yields a verdict.
type Client struct {
	httpClient *http.Client
	url        string
	apiKey     string
	apiHost    string
}

// NewClient constructs a judge client from config.
func NewClient(cfg config.JudgeConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		apiHost:    cfg.APIHost,
	}
}

// Grade runs the submitted code and returns the verdict. Transport
// failures and 5xx responses are retried once, then surfaced as
// ErrUnavailable.
func (c *Client) Grade(ctx context.Context, req Request) (Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Result{}, err
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
			case <-time.After(retryBackoff):
			}
		}

		result, retryable, err := c.grade(ctx, body)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}
	return Result{}, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

func (c *Client) grade(ctx context.Context, body []byte) (Result, bool, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return Result{}, false, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("X-RapidAPI-Key", c.apiKey)
		httpReq.Header.Set("X-RapidAPI-Host", c.apiHost)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Result{}, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Result{}, true, fmt.Errorf("judge responded with status %d", resp.StatusCode)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Result{}, false, fmt.Errorf("judge responded with status %d", resp.StatusCode)
	}

	var parsed gradeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Result{}, false, fmt.Errorf("invalid judge response: %v", err)
	}
	if strings.TrimSpace(parsed.Status.Description) == "" {
		return Result{}, false, errors.New("judge response missing status")
	}

	return Result{Verdict: parsed.Status.Description}, false, nil
}

package judge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/skillmatch-io/apiserver/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return NewClient(config.JudgeConfig{URL: url, APIKey: "test-key", APIHost: "judge.test"})
}

func TestGradeAccepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("X-RapidAPI-Key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":{"id":3,"description":"Accepted"}}`))
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL).Grade(context.Background(), Request{
		SourceCode: `print("Hello, World!")`,
		LanguageID: 71,
	})
	require.NoError(t, err)
	assert.Equal(t, "Accepted", result.Verdict)
	assert.True(t, result.Accepted())
}

func TestGradeWrongAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":{"id":4,"description":"Wrong Answer"}}`))
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL).Grade(context.Background(), Request{LanguageID: 71})
	require.NoError(t, err)
	assert.Equal(t, "Wrong Answer", result.Verdict)
	assert.False(t, result.Accepted())
}

func TestGradeRetriesOnServerErrorThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"status":{"id":3,"description":"Accepted"}}`))
	}))
	defer srv.Close()

	result, err := newTestClient(srv.URL).Grade(context.Background(), Request{LanguageID: 71})
	require.NoError(t, err)
	assert.Equal(t, "Accepted", result.Verdict)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGradeUnavailableAfterBoundedRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Grade(context.Background(), Request{LanguageID: 71})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(2), calls.Load(), "exactly one retry")
}

func TestGradeClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Grade(context.Background(), Request{LanguageID: 71})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGradeTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newTestClient(srv.URL).Grade(context.Background(), Request{LanguageID: 71})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestLanguageID(t *testing.T) {
	tests := []struct {
		language string
		want     int
		ok       bool
	}{
		{language: "python", want: 71, ok: true},
		{language: "Python", want: 71, ok: true},
		{language: "java", want: 62, ok: true},
		{language: "c", want: 50, ok: true},
		{language: "c++", want: 54, ok: true},
		{language: "javascript", want: 63, ok: true},
		{language: "cobol", ok: false},
	}
	for _, tt := range tests {
		id, ok := LanguageID(tt.language)
		assert.Equal(t, tt.ok, ok, tt.language)
		if tt.ok {
			assert.Equal(t, tt.want, id, tt.language)
		}
	}
}

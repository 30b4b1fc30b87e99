package filter

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mikey/snooker/internal/adapters/history"
	"github.com/mikey/snooker/internal/config"
	"github.com/mikey/snooker/internal/core"
	"github.com/mikey/snooker/internal/utils"
	"github.com/mikey/snooker/internal/whitelist"
	"github.com/mikey/snooker/pkg/snooker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const ebookBody = `<p>Nice post! Check out our free (for a limited time only) eBook <a href="http://my-free-ebook.com">here</a> that's totally relevant</p>`

func newService(t *testing.T, repo core.HistoryRepository, trusted ...string) *core.CommentFilterService {
	t.Helper()
	logger := zap.NewNop()
	return core.NewCommentFilterService(
		snooker.NewEvaluator(snooker.DefaultConfig()),
		repo,
		whitelist.NewChecker(trusted, logger),
		utils.NewTextProcessor(logger),
		logger,
		core.ServiceOptions{HistoryEnabled: true, RecordHistory: true},
	)
}

func newHTTPFilter(t *testing.T, svc *core.CommentFilterService) *HTTPFilter {
	t.Helper()
	return NewHTTPFilter(svc, zap.NewNop(), config.ServerConfig{
		ListenAddress: "127.0.0.1:0",
		ReadTimeout:   time.Second,
		WriteTimeout:  time.Second,
	})
}

func post(t *testing.T, f *HTTPFilter, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.App().Test(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v), string(data))
}

func TestHTTPFilterCheck(t *testing.T) {
	f := newHTTPFilter(t, newService(t, nil))

	body, err := json.Marshal(map[string]any{
		"author": "Johnny B. Goode",
		"url":    "http://my-free-ebook.com",
		"body":   ebookBody,
	})
	require.NoError(t, err)

	resp := post(t, f, "/api/v1/comments/check", string(body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	var out AnalysisResponse
	decode(t, resp, &out)
	assert.Equal(t, -10, out.Score)
	assert.Equal(t, snooker.StatusSpam, out.Status)
	assert.Equal(t, snooker.StatusSpam, out.Decision)
	assert.NotEmpty(t, out.ProcessingID)
	assert.Len(t, out.Breakdown, len(snooker.RuleNames()))
	assert.False(t, out.HistoryUsed)
}

func TestHTTPFilterCheckRejectsBadInput(t *testing.T) {
	f := newHTTPFilter(t, newService(t, nil))

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"body": `},
		{"missing body", `{"author": "someone"}`},
		{"wrong type", `{"body": 42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, f, "/api/v1/comments/check", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var out map[string]string
			decode(t, resp, &out)
			assert.NotEmpty(t, out["error"])
		})
	}
}

func TestHTTPFilterTrustedSender(t *testing.T) {
	f := newHTTPFilter(t, newService(t, nil, "example.org"))

	resp := post(t, f, "/api/v1/comments/check", `{"email": "Editor@Example.org", "body": "Sorry, cheap pills here"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out AnalysisResponse
	decode(t, resp, &out)
	assert.True(t, out.Whitelisted)
	assert.Equal(t, snooker.StatusValid, out.Decision)
	assert.Equal(t, snooker.StatusSpam, out.Status)
}

func TestHTTPFilterModerationFeedsHistory(t *testing.T) {
	repo := history.NewMemoryHistory(zap.NewNop(), time.Hour, 10, time.Hour)
	defer repo.Stop()
	f := newHTTPFilter(t, newService(t, repo))

	for i := 0; i < 3; i++ {
		resp := post(t, f, "/api/v1/comments/moderation",
			`{"email": "bob@example.com", "body": "an older comment", "status": "valid"}`)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
	}

	resp := post(t, f, "/api/v1/comments/check", `{"email": "bob@example.com", "body": "Thanks, I agree"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out AnalysisResponse
	decode(t, resp, &out)
	assert.True(t, out.HistoryUsed)
	assert.Equal(t, 5, out.Score)
	assert.Equal(t, snooker.StatusValid, out.Status)
}

func TestHTTPFilterModerationValidation(t *testing.T) {
	t.Run("bad status", func(t *testing.T) {
		f := newHTTPFilter(t, newService(t, nil))
		resp := post(t, f, "/api/v1/comments/moderation", `{"email": "a@example.com", "status": "ham"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing email", func(t *testing.T) {
		f := newHTTPFilter(t, newService(t, nil))
		resp := post(t, f, "/api/v1/comments/moderation", `{"status": "spam"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("history disabled", func(t *testing.T) {
		f := newHTTPFilter(t, newService(t, nil))
		resp := post(t, f, "/api/v1/comments/moderation", `{"email": "a@example.com", "status": "spam"}`)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestHTTPFilterHealth(t *testing.T) {
	f := newHTTPFilter(t, newService(t, nil))

	resp, err := f.App().Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]string
	decode(t, resp, &out)
	assert.Equal(t, "ok", out["status"])
}

func TestHTTPFilterProcessComment(t *testing.T) {
	f := newHTTPFilter(t, newService(t, nil))

	analysis, err := f.ProcessComment(context.Background(), &snooker.Comment{Body: "Thanks, I agree"})
	require.NoError(t, err)
	assert.Equal(t, 2, analysis.Result.Score)
}

func TestHTTPFilterStartFailsOnBusyAddress(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	f := NewHTTPFilter(newService(t, nil), zap.NewNop(), config.ServerConfig{ListenAddress: ln.Addr().String()})
	assert.Error(t, f.Start())
}

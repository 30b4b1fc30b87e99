package factory

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/mikey/snooker/internal/adapters/filter"
	"github.com/mikey/snooker/internal/adapters/history"
	"github.com/mikey/snooker/internal/config"
	"github.com/mikey/snooker/pkg/snooker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newConfig(settings map[string]any) *config.Config {
	v := config.NewEmptyViper()
	for k, val := range settings {
		v.Set(k, val)
	}
	return config.NewFromViper(v)
}

func TestHistoryFactory(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		f := NewHistoryFactory(newConfig(nil), zap.NewNop())
		repo, err := f.CreateHistoryRepository()
		require.NoError(t, err)
		mem, ok := repo.(*history.MemoryHistory)
		require.True(t, ok)
		mem.Stop()
	})

	t.Run("sqlite creates its directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "history.db")
		f := NewHistoryFactory(newConfig(map[string]any{
			"history.type":        "sqlite",
			"history.sqlite_path": path,
		}), zap.NewNop())
		repo, err := f.CreateHistoryRepository()
		require.NoError(t, err)
		sqlite, ok := repo.(*history.SQLiteHistory)
		require.True(t, ok)
		sqlite.Stop()
		assert.FileExists(t, path)
	})

	t.Run("disabled", func(t *testing.T) {
		f := NewHistoryFactory(newConfig(map[string]any{
			"history.enabled": false,
			"history.record":  false,
		}), zap.NewNop())
		repo, err := f.CreateHistoryRepository()
		require.NoError(t, err)
		assert.Nil(t, repo)
	})

	t.Run("unknown type", func(t *testing.T) {
		f := NewHistoryFactory(newConfig(map[string]any{"history.type": "redis"}), zap.NewNop())
		_, err := f.CreateHistoryRepository()
		assert.ErrorContains(t, err, "unsupported history type")
	})
}

func TestScorerFactoryHonorsRuleConfig(t *testing.T) {
	f := NewScorerFactory(newConfig(map[string]any{
		"rules.spam_leading_words": []string{"greetings"},
		"rules.history_cap":        2,
	}), zap.NewNop())
	e := f.CreateScorer()

	assert.Equal(t, []string{"greetings"}, e.Config().SpamLeadingWords)
	assert.Equal(t, 2, e.Config().HistoryCap)

	result := e.Evaluate(snooker.Comment{Body: "Greetings from a friendly neighbourhood reader"})
	assert.Equal(t, -8, result.Score)
}

func TestFilterFactory(t *testing.T) {
	logger := zap.NewNop()
	svc, err := NewServiceFactory(newConfig(nil), logger).CreateService(snooker.NewEvaluator(snooker.DefaultConfig()), nil)
	require.NoError(t, err)

	t.Run("http", func(t *testing.T) {
		f := NewFilterFactory(newConfig(nil), logger, svc)
		cf, err := f.CreateCommentFilter()
		require.NoError(t, err)
		assert.IsType(t, &filter.HTTPFilter{}, cf)
	})

	t.Run("cli writes to the configured output", func(t *testing.T) {
		f := NewFilterFactory(newConfig(map[string]any{
			"server.filter_type": "cli",
			"cli.format":         "json",
		}), logger, svc)
		var buf bytes.Buffer
		f.SetOutput(&buf)

		cf, err := f.CreateCommentFilter()
		require.NoError(t, err)
		_, err = cf.ProcessComment(context.Background(), &snooker.Comment{Body: "Thanks, I agree"})
		require.NoError(t, err)
		assert.Contains(t, buf.String(), `"status": "valid"`)
	})

	t.Run("unknown type", func(t *testing.T) {
		f := NewFilterFactory(newConfig(map[string]any{"server.filter_type": "postfix"}), logger, svc)
		_, err := f.CreateCommentFilter()
		assert.ErrorContains(t, err, "unsupported filter type")
	})
}

func TestServiceFactoryOptions(t *testing.T) {
	f := NewServiceFactory(newConfig(map[string]any{
		"history.record":       false,
		"server.max_body_size": 1024,
		"spam.trusted_domains": []string{"example.com"},
	}), zap.NewNop())

	opts, err := f.ServiceOptions()
	require.NoError(t, err)
	assert.True(t, opts.HistoryEnabled)
	assert.False(t, opts.RecordHistory)
	assert.Equal(t, 1024, opts.MaxBodySize)
	assert.True(t, f.CreateWhitelist().IsWhitelisted("jane@example.com"))
}

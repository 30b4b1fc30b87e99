package di

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mikey/snooker/internal/core"
	"github.com/mikey/snooker/internal/ports"
	"github.com/mikey/snooker/pkg/snooker"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCLIContainer(t *testing.T) {
	var out bytes.Buffer
	flags := &CLIFlags{Format: "json", TrustedDomains: []string{"example.org"}}

	container, err := BuildCLIContainer(flags, &out)
	require.NoError(t, err)

	err = container.Invoke(func(filter ports.CommentFilter, history core.HistoryRepository) error {
		assert.Nil(t, history, "no history store without a config file")

		analysis, err := filter.ProcessComment(context.Background(), &snooker.Comment{
			Email: snooker.String("me@example.org"),
			Body:  "Sorry, cheap pills",
		})
		require.NoError(t, err)
		assert.True(t, analysis.Whitelisted)
		return nil
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"whitelisted": true`)
}

func TestBuildCLIContainerWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rules:
  spam_leading_words: []
  history_cap: 3
history:
  type: memory
`), 0o644))

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := &CLIFlags{}
	flags.BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"--config", path, "--format", "yaml"}))

	container, err := BuildCLIContainer(flags, &bytes.Buffer{})
	require.NoError(t, err)

	err = container.Invoke(func(e *snooker.Evaluator, history core.HistoryRepository) {
		assert.Empty(t, e.Config().SpamLeadingWords)
		assert.Equal(t, 3, e.Config().HistoryCap)
		assert.NotNil(t, history)
		if s, ok := history.(interface{ Stop() }); ok {
			s.Stop()
		}
	})
	require.NoError(t, err)
}

func TestBindFlagsDefaults(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := &CLIFlags{}
	flags.BindFlags(fs)
	require.NoError(t, fs.Parse(nil))

	assert.Equal(t, "text", flags.Format)
	assert.Equal(t, 65536, flags.MaxBodySize)
	assert.False(t, flags.trustedSet())
}

package cmd

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidyops/workmaid/config"
)

func purgeConfig() *config.Config {
	return &config.Config{Purge: true, KeepDays: 3}
}

func TestResolvePurge(t *testing.T) {
	t.Run("declined confirmation disables the phase", func(t *testing.T) {
		cfg := purgeConfig()
		err := resolvePurge(cfg, bufio.NewReader(strings.NewReader("n\n")))
		require.NoError(t, err)
		assert.False(t, cfg.Purge)
	})

	t.Run("confirmation keeps the phase enabled", func(t *testing.T) {
		cfg := purgeConfig()
		err := resolvePurge(cfg, bufio.NewReader(strings.NewReader("y\n")))
		require.NoError(t, err)
		assert.True(t, cfg.Purge)
	})

	// An empty reader would decline if the prompt ran at all, so these cases
	// also prove the prompt is skipped.
	t.Run("force skips the prompt", func(t *testing.T) {
		cfg := purgeConfig()
		cfg.Force = true
		err := resolvePurge(cfg, bufio.NewReader(strings.NewReader("")))
		require.NoError(t, err)
		assert.True(t, cfg.Purge)
	})

	t.Run("simulate never prompts", func(t *testing.T) {
		cfg := purgeConfig()
		cfg.Simulate = true
		err := resolvePurge(cfg, bufio.NewReader(strings.NewReader("")))
		require.NoError(t, err)
		assert.True(t, cfg.Purge)
	})

	t.Run("no purge requested means nothing to confirm", func(t *testing.T) {
		cfg := purgeConfig()
		cfg.Purge = false
		err := resolvePurge(cfg, bufio.NewReader(strings.NewReader("")))
		require.NoError(t, err)
		assert.False(t, cfg.Purge)
	})
}

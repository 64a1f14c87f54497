package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesToFile(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())
	path := filepath.Join(t.TempDir(), "logs", LogFileName)

	closer, err := Setup(Options{Level: "debug", File: path})
	require.NoError(t, err)

	log.Debug().Str("key", "tagduke-data-v1").Msg("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"message":"hello"`), "got %s", data)
	assert.Contains(t, string(data), `"key":"tagduke-data-v1"`)
}

func TestSetupWithoutSinksIsSilent(t *testing.T) {
	closer, err := Setup(Options{Level: "info"})
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
	assert.Equal(t, zerolog.Disabled, log.Logger.GetLevel())
}

func TestSetLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())

	SetLevel("warn")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	SetLevel("nonsense")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel(), "unknown names are ignored")
}

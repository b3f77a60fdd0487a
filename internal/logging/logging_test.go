package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWriter_JSON(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })
	var buf bytes.Buffer

	require.NoError(t, SetupWriter(&buf, "warn", false))
	log.Info().Msg("hidden")
	log.Warn().Str("album", "Symphonies").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"album":"Symphonies"`)
	assert.Contains(t, out, `"message":"shown"`)
}

func TestSetupWriter_Pretty(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })
	var buf bytes.Buffer

	require.NoError(t, SetupWriter(&buf, "", true))
	log.Info().Msg("discs combined")

	out := buf.String()
	assert.Contains(t, out, "discs combined")
	assert.False(t, strings.HasPrefix(out, "{"), "console output is not JSON")
}

func TestSetupWriter_BadLevel(t *testing.T) {
	err := SetupWriter(&bytes.Buffer{}, "loud", false)
	assert.Error(t, err)
}

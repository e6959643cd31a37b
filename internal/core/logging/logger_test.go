package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	logger := Component("test-component")
	logger.Info().Msg("test message")

	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))

	assert.Equal(t, "test-component", logEntry["cmp"])
	assert.Equal(t, "test message", logEntry["message"])
}

func TestSub_CarriesContextFields(t *testing.T) {
	var buf bytes.Buffer
	logger := Sub(zerolog.New(&buf), "gateway")

	ctx := WithGeneration(WithRefreshID(context.Background(), "abc"), 7)
	logger.Debug().Ctx(ctx).Msg("fetch")

	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))

	assert.Equal(t, "gateway", logEntry["cmp"])
	assert.Equal(t, "abc", logEntry["refresh_id"])
	assert.InDelta(t, 7, logEntry["generation"], 0)
}

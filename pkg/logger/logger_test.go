package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jhoicas/cierre-fiscal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWriter_FiltraPorNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWriter(&buf, "warn")

	log.Info().Msg("no debe salir")
	log.Warn().Str("period", "2024-03").Msg("sí sale")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "2024-03", entry["period"])
	assert.Equal(t, "sí sale", entry["message"])
}

func TestNewNop_NoEscribe(t *testing.T) {
	log := logger.NewNop()
	assert.NotPanics(t, func() {
		log.Error().Str("k", "v").Msg("descartado")
		child := log.With().Str("a", "b").Logger()
		child.Info().Msg("tampoco")
	})
}

func TestWith_AgregaCampos(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWriter(&buf, "info")

	child := log.With().Str("company_id", "e1").Logger()
	child.Info().Msg("liquidación calculada")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "e1", entry["company_id"])
}

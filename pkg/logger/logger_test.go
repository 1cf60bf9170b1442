package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/foodcart-api/pkg/logger"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &m))
	return m
}

func TestNew_JSONConServicioYComponente(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Service: "foodcart-api", Output: &buf})

	log.Named("checkout").Info().Str("user_id", "u1").Msg("compra registrada")

	line := decodeLine(t, &buf)
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "foodcart-api", line["service"])
	assert.Equal(t, "checkout", line["component"])
	assert.Equal(t, "u1", line["user_id"])
	assert.Equal(t, "compra registrada", line["message"])
	assert.Contains(t, line, "time")
}

func TestNew_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "warn", Output: &buf})

	log.Info().Msg("no sale")
	assert.Zero(t, buf.Len())
	log.Warn().Msg("sale")
	assert.Equal(t, "warn", decodeLine(t, &buf)["level"])
}

func TestNew_NivelInvalidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "verboso", Output: &buf})

	log.Debug().Msg("no sale")
	assert.Zero(t, buf.Len())
	log.Info().Msg("sale")
	assert.Equal(t, "info", decodeLine(t, &buf)["level"])
}

func TestNop_NoEscribe(t *testing.T) {
	assert.NotPanics(t, func() {
		logger.Nop().Named("x").Error().Msg("descartado")
	})
}

package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewTagsService(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{Service: "curtain-pos", Level: ParseLevel("debug"), Output: buf})

	log.Debug().Msg("hello")

	assert.Contains(t, buf.String(), `"service":"curtain-pos"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestRequestIDCarriedInContext(t *testing.T) {
	buf := &bytes.Buffer{}
	base := New(Options{Service: "test", Output: buf})

	ctx := WithRequestID(context.Background(), base, "req-123")
	From(ctx, base).Info().Msg("handled")

	assert.Contains(t, buf.String(), `"request_id":"req-123"`)
}

func TestFromFallsBack(t *testing.T) {
	buf := &bytes.Buffer{}
	base := New(Options{Service: "test", Output: buf})

	From(context.Background(), base).Warn().Msg("no ctx logger")

	assert.Contains(t, buf.String(), "no ctx logger")
}

func TestParseLevelDefaults(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("invalid"))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
}

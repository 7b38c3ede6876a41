package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewBuildsTaggedLogger(t *testing.T) {
	log, err := New()
	require.NoError(t, err)
	require.NotNil(t, log)

	entry := log.Check(zap.InfoLevel, "ping")
	require.NotNil(t, entry)
}

func TestMustPanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		Must(nil, errors.New("build failed"))
	})
}

func TestNamedNilBaseFallsBackToNop(t *testing.T) {
	assert.NotNil(t, Named(nil, "scheduler"))
}

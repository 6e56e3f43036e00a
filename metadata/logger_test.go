package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))

	b := newStream(0).table(TableModule, 1)
	moduleRow(b, 0, 1, 1, 0, 0)
	_, err := Decode(b.bytes())
	require.NoError(t, err)
	assert.NotZero(t, logs.FilterMessage("decoded table").Len())

	// Reset after use must not leave a nil logger behind.
	SetLogger(nil)
	require.NotNil(t, Logger())
	_, err = Decode(b.bytes())
	require.NoError(t, err)

	before := logs.Len()
	_, err = Decode(b.bytes())
	require.NoError(t, err)
	assert.Equal(t, before, logs.Len())
}

func TestConfigLoggerOverridesPackageLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	pkgCore, pkgLogs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(pkgCore))

	core, logs := observer.New(zapcore.DebugLevel)
	b := newStream(0).table(TableModule, 1)
	moduleRow(b, 0, 1, 1, 0, 0)
	_, err := DecodeWithConfig(b.bytes(), &Config{Logger: zap.New(core)})
	require.NoError(t, err)

	assert.NotZero(t, logs.Len())
	assert.Zero(t, pkgLogs.Len())
}

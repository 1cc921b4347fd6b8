package logging

import (
	"sync"
	"testing"

	"github.com/rpgo/savings-projector/internal/calculation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var _ calculation.Logger = (*zap.SugaredLogger)(nil)

func TestParseLevel(t *testing.T) {
	cases := map[LogLevel]zapcore.Level{
		DebugLevel: zapcore.DebugLevel,
		InfoLevel:  zapcore.InfoLevel,
		"":         zapcore.InfoLevel,
		WarnLevel:  zapcore.WarnLevel,
		ErrorLevel: zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.EqualError(t, err, "invalid log level: loud")
}

func TestConfig(t *testing.T) {
	cfg, err := Config(DebugLevel, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Encoding)
	assert.True(t, cfg.Level.Enabled(zapcore.DebugLevel))
	assert.Equal(t, []string{"stderr"}, cfg.OutputPaths)

	cfg, err = Config(WarnLevel, FormatConsole)
	require.NoError(t, err)
	assert.Equal(t, "console", cfg.Encoding)
	assert.False(t, cfg.Level.Enabled(zapcore.InfoLevel))
	assert.True(t, cfg.DisableStacktrace)

	_, err = Config(InfoLevel, "xml")
	assert.EqualError(t, err, "invalid log format: xml")
	_, err = Config("chatty", FormatJSON)
	assert.Error(t, err)
}

func TestInitAndGet(t *testing.T) {
	t.Cleanup(func() { Set(nil) })

	require.NoError(t, Init(ErrorLevel, FormatJSON))
	assert.True(t, Get().Core().Enabled(zapcore.ErrorLevel))
	assert.False(t, Get().Core().Enabled(zapcore.WarnLevel))

	assert.Error(t, Init(InfoLevel, "xml"))
	// a failed Init keeps the previous logger
	assert.True(t, Get().Core().Enabled(zapcore.ErrorLevel))
}

func TestSugarFeedsEngineLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(nil) })

	var l calculation.Logger = Sugar()
	l.Debugf("year %d balance %s", 1, "19046")
	l.Warnf("no bracket for %s", "9950.50")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "year 1 balance 19046", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestSetNilRestoresNop(t *testing.T) {
	Set(nil)
	assert.False(t, Get().Core().Enabled(zapcore.ErrorLevel))
}

func TestConcurrentInitAndGet(t *testing.T) {
	t.Cleanup(func() { Set(nil) })

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			assert.NoError(t, Init(ErrorLevel, FormatJSON))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			Get().Info("interrupt")
			_ = Sugar()
		}
	}()
	wg.Wait()
	assert.True(t, Get().Core().Enabled(zapcore.ErrorLevel))
}

package retry

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/orgball2608/social-feed/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() Config {
	return Config{
		MaxRetries:      2,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		Multiplier:      1,
	}
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	log := logger.New(logger.Opts{Env: "test", Output: io.Discard})
	calls := 0

	err := Do(context.Background(), log, "ping", func() error {
		calls++
		if calls < 2 {
			return errors.New("not yet")
		}
		return nil
	}, fastConfig())

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDo_GivesUpAfterMaxRetries(t *testing.T) {
	log := logger.New(logger.Opts{Env: "test", Output: io.Discard})
	calls := 0

	err := Do(context.Background(), log, "ping", func() error {
		calls++
		return errors.New("down")
	}, fastConfig())

	require.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_PermanentStopsImmediately(t *testing.T) {
	log := logger.New(logger.Opts{Env: "test", Output: io.Discard})
	calls := 0
	boom := errors.New("bad credentials")

	err := Do(context.Background(), log, "ping", func() error {
		calls++
		return Permanent(boom)
	}, fastConfig())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

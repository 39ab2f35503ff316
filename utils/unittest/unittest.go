package unittest

import (
	"testing"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// Logger returns a zerolog logger for tests, silenced by default. Set the
// verbose flag while debugging a test.
func Logger() zerolog.Logger {
	if testing.Verbose() {
		return zerolog.New(zerolog.NewConsoleWriter()).Level(zerolog.DebugLevel)
	}
	return zerolog.Nop()
}

// RequireReturnsBefore requires that the given function returns before the
// duration expires.
func RequireReturnsBefore(t testing.TB, f func(), duration time.Duration, message string) {
	done := make(chan struct{})

	go func() {
		f()
		close(done)
	}()

	RequireCloseBefore(t, done, duration, message)
}

// RequireNeverReturnBefore requires that the given function does not return
// before the duration expires, and returns the channel that closes when the
// function eventually returns.
func RequireNeverReturnBefore(t testing.TB, f func(), duration time.Duration, message string) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		f()
		close(done)
	}()

	select {
	case <-time.After(duration):
	case <-done:
		require.Fail(t, "function returned early: "+message)
	}

	return done
}

// RequireCloseBefore requires that the given channel closes before the
// duration expires.
func RequireCloseBefore(t testing.TB, c <-chan struct{}, duration time.Duration, message string) {
	select {
	case <-time.After(duration):
		require.Fail(t, "channel did not close in time: "+message)
	case <-c:
	}
}

// RequireNotClosedBefore requires that the given channel is not closed before
// the duration expires.
func RequireNotClosedBefore(t testing.TB, c <-chan struct{}, duration time.Duration, message string) {
	select {
	case <-time.After(duration):
	case <-c:
		require.Fail(t, "channel closed early: "+message)
	}
}

// RunWithBadgerDB runs the given function with a badger DB backed by a
// temporary directory, which is cleaned up when the test finishes.
func RunWithBadgerDB(t testing.TB, f func(db *badger.DB)) {
	dir := t.TempDir()
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	require.NoError(t, err)
	defer func() {
		require.NoError(t, db.Close())
	}()
	f(db)
}

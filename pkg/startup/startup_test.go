package startup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStartup(maxAttempts int) *Startup {
	return NewStartup(ectologger.NewEctoLogger(func(ectologger.EctoLogMessage) {}), maxAttempts).
		WithBackoffUnit(time.Millisecond)
}

func recorder(events *[]string, name string, requires ...string) *Func {
	return &Func{
		Name:     name,
		Requires: requires,
		OnStart: func(context.Context) error {
			*events = append(*events, "start "+name)
			return nil
		},
		OnStop: func(context.Context) error {
			*events = append(*events, "stop "+name)
			return nil
		},
	}
}

func TestStartup_Order(t *testing.T) {
	var events []string
	s := newTestStartup(1)
	s.AddDependency(recorder(&events, "server", "database", "events"))
	s.AddDependency(recorder(&events, "migrations", "database"))
	s.AddDependency(recorder(&events, "database"))
	s.AddDependency(recorder(&events, "events"))

	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, []string{"start database", "start events", "start server", "start migrations"}, events)
	assert.Equal(t, StatusStarted, s.Status("server"))

	events = nil
	require.NoError(t, s.Stop(context.Background()))
	assert.Equal(t, []string{"stop migrations", "stop server", "stop events", "stop database"}, events)
	assert.Equal(t, StatusStopped, s.Status("database"))
}

func TestStartup_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	s := newTestStartup(3)
	s.AddDependency(&Func{Name: "database", OnStart: func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("connection refused")
		}
		return nil
	}})

	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, 3, calls)
}

func TestStartup_GivesUp(t *testing.T) {
	s := newTestStartup(2)
	s.AddDependency(&Func{Name: "database", OnStart: func(context.Context) error {
		return errors.New("connection refused")
	}})

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.Equal(t, StatusFailed, s.Status("database"))
}

func TestStartup_UnknownAndCyclicDependencies(t *testing.T) {
	s := newTestStartup(1)
	s.AddDependency(&Func{Name: "server", Requires: []string{"cache"}})
	assert.ErrorContains(t, s.Start(context.Background()), "not registered")

	s = newTestStartup(1)
	s.AddDependency(&Func{Name: "a", Requires: []string{"b"}})
	s.AddDependency(&Func{Name: "b", Requires: []string{"a"}})
	assert.ErrorContains(t, s.Start(context.Background()), "cycle")
}

func TestStartup_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewStartup(ectologger.NewEctoLogger(func(ectologger.EctoLogMessage) {}), 5).WithBackoffUnit(time.Hour)
	s.AddDependency(&Func{Name: "database", OnStart: func(context.Context) error {
		cancel()
		return errors.New("down")
	}})

	assert.ErrorIs(t, s.Start(ctx), context.Canceled)
}

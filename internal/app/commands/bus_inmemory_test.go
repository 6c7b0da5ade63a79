package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type holdCommand struct{ item string }

func (holdCommand) Key() string { return "hold" }

type otherCommand struct{}

func (otherCommand) Key() string { return "other" }

func TestDispatchRoutesByKey(t *testing.T) {
	bus := NewInMemoryBus()
	RegisterHandler[holdCommand, string](bus, "hold", HandlerFunc[holdCommand, string](func(ctx context.Context, cmd holdCommand) (string, error) {
		return "held " + cmd.item, nil
	}))

	got, err := Dispatch[holdCommand, string](context.Background(), bus, holdCommand{item: "saree-1"})
	require.NoError(t, err)
	assert.Equal(t, "held saree-1", got)
	assert.Equal(t, []string{"hold"}, bus.Keys())
}

func TestDispatchErrors(t *testing.T) {
	bus := NewInMemoryBus()
	RegisterHandler[holdCommand, string](bus, "hold", HandlerFunc[holdCommand, string](func(context.Context, holdCommand) (string, error) {
		return "ok", nil
	}))

	_, err := bus.Dispatch(context.Background(), otherCommand{})
	assert.ErrorIs(t, err, ErrHandlerNotFound)

	_, err = Dispatch[holdCommand, int](context.Background(), bus, holdCommand{})
	assert.ErrorIs(t, err, ErrResultType)

	_, err = Dispatch[holdCommand, string](context.Background(), nil, holdCommand{})
	assert.ErrorIs(t, err, ErrNilBus)

	bus.RegisterRaw("other", func(ctx context.Context, cmd Command) (any, error) { return nil, nil })
	assert.Equal(t, []string{"hold", "other"}, bus.Keys())
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	bus := NewInMemoryBus()
	bus.RegisterRaw("hold", func(context.Context, Command) (any, error) { return nil, nil })
	assert.Panics(t, func() {
		bus.RegisterRaw("hold", func(context.Context, Command) (any, error) { return nil, nil })
	})
}

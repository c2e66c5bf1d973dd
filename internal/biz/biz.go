package biz

import (
	"context"

	"tumble/internal/event"

	"github.com/google/wire"
	"github.com/yola1107/kratos/v2/errors"
)

// ProviderSet is biz providers.
var ProviderSet = wire.NewSet(
	event.NewBus,
	wire.Bind(new(Notifier), new(*event.Bus)),
	NewTumble,
)

var (
	// ErrSpinInProgress is returned when a spin is requested while another
	// one has not settled yet.
	ErrSpinInProgress = errors.Conflict("SPIN_IN_PROGRESS", "a spin is already in progress")
)

// Notifier is the publish/subscribe channel shared with presentation.
type Notifier interface {
	Emit(ctx context.Context, topic event.Topic, payload any)
	On(topic event.Topic, h event.Handler) func()
	Expect(topic event.Topic) *event.Future
}

// StreakRepo persists the count of consecutive spins without a cluster.
type StreakRepo interface {
	Load(ctx context.Context) (int, error)
	Save(ctx context.Context, n int) error
}

package session

import (
	"context"
	"math/rand/v2"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/rheo/rheo/internal/journey"
	"github.com/rheo/rheo/internal/store"
)

// Deps are the collaborators a lesson screen needs. Only Service is
// required; the rest fall back to no-op or real-time defaults.
type Deps struct {
	Service  *journey.Service
	Events   store.EventRepo
	Logger   *zap.Logger
	Language string

	Clock   func() time.Time
	Shuffle func(n int, swap func(i, j int))
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Clock == nil {
		d.Clock = time.Now
	}
	if d.Shuffle == nil {
		d.Shuffle = rand.Shuffle
	}
	return d
}

// persist runs an event write off the update loop. Failures are logged
// and otherwise ignored.
func (d Deps) persist(event string, write func(context.Context, store.EventRepo) error) tea.Cmd {
	if d.Events == nil {
		return nil
	}
	events, logger := d.Events, d.Logger
	return func() tea.Msg {
		if err := write(context.Background(), events); err != nil {
			logger.Warn("event not saved", zap.String("event", event), zap.Error(err))
		}
		return nil
	}
}

package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/makskhv21/bot-weather/internal/store"
	"github.com/makskhv21/bot-weather/internal/weather"
)

// Sender is the minimal interface the scheduler needs to deliver a text
// message. telegram.Router implements it.
type Sender interface {
	SendMessage(chatID int64, text string) error
}

// Gateway fetches forecasts for scheduled deliveries.
type Gateway interface {
	Forecast(ctx context.Context, city string) (weather.SampleSeries, error)
}

// Registry is the scheduler's read-only view of user state.
type Registry interface {
	DueEntries(now string) []store.Entry
}

// Scheduler fires daily weather notifications. Once per tick it matches
// every registered (user, city, time) entry against the current wall-clock
// minute and delivers today's forecast for each match.
type Scheduler struct {
	registry Registry
	gateway  Gateway
	sender   Sender
	log      *zap.Logger
	interval time.Duration
	nowFn    func() time.Time
	started  atomic.Bool
}

// New creates a Scheduler. interval should be one minute: the match is an
// exact string comparison at minute granularity, so a shorter interval can
// double-fire and a longer one can skip minutes entirely.
func New(registry Registry, gateway Gateway, sender Sender, log *zap.Logger, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		registry: registry,
		gateway:  gateway,
		sender:   sender,
		log:      log,
		interval: interval,
		nowFn:    time.Now,
	}
}

// Run ticks until ctx is canceled. Calling Run a second time returns
// immediately without starting a second ticker.
func (s *Scheduler) Run(ctx context.Context) {
	if !s.started.CompareAndSwap(false, true) {
		s.log.Warn("scheduler already running")
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopping")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick performs one scan: match entries against the current minute and
// deliver. A failed fetch or send skips that entry; a missed notification
// is preferable to a crashed loop.
func (s *Scheduler) tick(ctx context.Context) {
	now := s.nowFn().Format("15:04")

	for _, e := range s.registry.DueEntries(now) {
		series, err := s.gateway.Forecast(ctx, e.City)
		if err != nil {
			s.log.Warn("forecast fetch failed, skipping notification",
				zap.Int64("chatID", e.UserID),
				zap.String("city", e.City),
				zap.Error(err),
			)
			continue
		}
		if len(series) == 0 {
			continue
		}

		text := weather.FormatCityWeatherMessage(e.City, series, weather.SelectionToday)
		if err := s.sender.SendMessage(e.UserID, text); err != nil {
			s.log.Error("send failed",
				zap.Int64("chatID", e.UserID),
				zap.String("city", e.City),
				zap.Error(err),
			)
		}
	}
}

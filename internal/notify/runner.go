package notify

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"airmail/internal/compose"
	"airmail/internal/config"
	"airmail/internal/detect"
	"airmail/internal/episodes"
	"airmail/internal/history"
	"airmail/internal/logging"
	"airmail/internal/mail"
	"airmail/internal/state"
	"airmail/internal/tvmaze"
)

// Status classifies how a run ended. It replaces exception-to-boolean error
// handling with an explicit result so the caller can log precisely and the
// persistence rules stay auditable.
type Status int

const (
	// StatusNoChange covers both a genuine no-change outcome and the
	// degraded fetch-failure case.
	StatusNoChange Status = iota
	// StatusSent means a notification went out and state was updated.
	StatusSent
	// StatusFetchFailed means the episode source reported no usable data.
	StatusFetchFailed
	// StatusSendFailed means a notification was due but SMTP delivery
	// failed; no state was persisted.
	StatusSendFailed
	// StatusSkipped means another run holds the lock.
	StatusSkipped
)

// Result reports the outcome of one scheduled check.
type Result struct {
	Status  Status
	Kind    detect.Kind
	Subject string
	Err     error
}

// Runner sequences one run: fetch, detect, compose, send, persist.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	source   tvmaze.Source
	states   *state.Store
	composer *compose.Composer
	sender   mail.Sender
	history  *history.Store // optional
	now      func() time.Time
	lockPath string
}

// Option customizes a Runner.
type Option func(*Runner)

// WithClock overrides the time source; tests pin "today" with it.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLockFile sets the flock path guarding overlapping scheduled runs. An
// empty path disables locking.
func WithLockFile(path string) Option {
	return func(r *Runner) {
		r.lockPath = path
	}
}

// NewRunner wires the dispatch pipeline. The history store may be nil.
func NewRunner(cfg *config.Config, logger *slog.Logger, source tvmaze.Source, states *state.Store, composer *compose.Composer, sender mail.Sender, hist *history.Store, opts ...Option) *Runner {
	r := &Runner{
		cfg:      cfg,
		logger:   logging.WithComponent(logger, "notify"),
		source:   source,
		states:   states,
		composer: composer,
		sender:   sender,
		history:  hist,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run performs one complete check. It never panics and never retries;
// failures degrade according to the error taxonomy (fetch failure acts like
// no change, send failure suppresses state persistence) and the next
// scheduled invocation is the retry mechanism.
func (r *Runner) Run(ctx context.Context) Result {
	if r.lockPath != "" {
		if err := os.MkdirAll(filepath.Dir(r.lockPath), 0o755); err != nil {
			r.logger.Error("create lock directory", slog.Any("error", err))
			return Result{Status: StatusSkipped, Err: fmt.Errorf("create lock directory: %w", err)}
		}
		lock := flock.New(r.lockPath)
		ok, err := lock.TryLock()
		if err != nil {
			r.logger.Error("acquire run lock", slog.Any("error", err))
			return Result{Status: StatusSkipped, Err: fmt.Errorf("acquire lock: %w", err)}
		}
		if !ok {
			r.logger.Warn("another run is in progress, skipping")
			return Result{Status: StatusSkipped}
		}
		defer func() { _ = lock.Unlock() }()
	}

	logger := r.logger.With(slog.String("run_id", uuid.NewString()))

	prevAired := r.loadAired(logger)
	prevIDs := r.loadUpcoming(logger)

	listing, err := r.source.ShowEpisodes(ctx, r.cfg.Show.Query)
	if err != nil {
		logger.Error("fetch episodes", slog.String("query", r.cfg.Show.Query), slog.Any("error", err))
		return Result{Status: StatusFetchFailed, Kind: detect.NoChange, Err: err}
	}

	today := r.now().Format(time.DateOnly)
	aired, upcoming := episodes.Split(listing.Episodes, today)
	outcome := detect.Evaluate(aired, upcoming, prevAired, prevIDs)

	logger.Info("change detection complete",
		slog.String("show", listing.ShowName),
		slog.String("outcome", outcome.Kind.String()),
		slog.Int("aired", len(aired)),
		slog.Int("upcoming", len(upcoming)))

	switch outcome.Kind {
	case detect.NewAired:
		return r.dispatchNewAired(ctx, logger, listing.ShowName, outcome)
	case detect.UpcomingChanged:
		return r.dispatchUpcoming(ctx, logger, listing.ShowName, outcome)
	default:
		return Result{Status: StatusNoChange, Kind: detect.NoChange}
	}
}

func (r *Runner) dispatchNewAired(ctx context.Context, logger *slog.Logger, show string, outcome detect.Outcome) Result {
	msg, err := r.composer.NewEpisode(show, outcome.Latest, outcome.Upcoming)
	if err != nil {
		logger.Error("compose new episode notification", slog.Any("error", err))
		return Result{Status: StatusSendFailed, Kind: outcome.Kind, Err: err}
	}

	if err := r.sender.Send(ctx, msg); err != nil {
		logger.Error("send new episode notification",
			slog.String("episode", outcome.Latest.Code()),
			slog.Any("error", err))
		return Result{Status: StatusSendFailed, Kind: outcome.Kind, Subject: msg.Subject, Err: err}
	}

	if err := r.states.SaveAired(episodes.RecordOf(outcome.Latest)); err != nil {
		logger.Error("persist aired state", slog.Any("error", err))
	}
	if len(outcome.Upcoming) > 0 {
		if err := r.states.SaveUpcoming(episodes.IDs(outcome.Upcoming)); err != nil {
			logger.Error("persist upcoming state", slog.Any("error", err))
		}
	}

	r.recordHistory(ctx, logger, outcome.Kind, msg.Subject, outcome.Latest.Code())
	logger.Info("notification sent",
		slog.String("outcome", outcome.Kind.String()),
		slog.String("episode", outcome.Latest.Code()))
	return Result{Status: StatusSent, Kind: outcome.Kind, Subject: msg.Subject}
}

func (r *Runner) dispatchUpcoming(ctx context.Context, logger *slog.Logger, show string, outcome detect.Outcome) Result {
	msg, err := r.composer.UpcomingChanged(show, outcome.Upcoming)
	if err != nil {
		logger.Error("compose upcoming notification", slog.Any("error", err))
		return Result{Status: StatusSendFailed, Kind: outcome.Kind, Err: err}
	}

	if err := r.sender.Send(ctx, msg); err != nil {
		logger.Error("send upcoming notification", slog.Any("error", err))
		return Result{Status: StatusSendFailed, Kind: outcome.Kind, Subject: msg.Subject, Err: err}
	}

	if err := r.states.SaveUpcoming(episodes.IDs(outcome.Upcoming)); err != nil {
		logger.Error("persist upcoming state", slog.Any("error", err))
	}

	r.recordHistory(ctx, logger, outcome.Kind, msg.Subject, fmt.Sprint(episodes.IDs(outcome.Upcoming)))
	logger.Info("notification sent", slog.String("outcome", outcome.Kind.String()))
	return Result{Status: StatusSent, Kind: outcome.Kind, Subject: msg.Subject}
}

func (r *Runner) loadAired(logger *slog.Logger) *episodes.AiredRecord {
	rec, ok, err := r.states.LoadAired()
	if err != nil {
		// Unreadable state starts the run as if never notified; worst case
		// is one duplicate email rather than a missed one.
		logger.Warn("load aired state", slog.Any("error", err))
		return nil
	}
	if !ok {
		return nil
	}
	return &rec
}

func (r *Runner) loadUpcoming(logger *slog.Logger) []int {
	ids, ok, err := r.states.LoadUpcoming()
	if err != nil {
		logger.Warn("load upcoming state", slog.Any("error", err))
		return nil
	}
	if !ok {
		return nil
	}
	return ids
}

func (r *Runner) recordHistory(ctx context.Context, logger *slog.Logger, kind detect.Kind, subject, detail string) {
	if r.history == nil {
		return
	}
	entry := history.Entry{
		Kind:    kind.String(),
		Subject: subject,
		Detail:  detail,
		SentAt:  r.now().UTC(),
	}
	if err := r.history.Record(ctx, entry); err != nil {
		logger.Warn("record notification history", slog.Any("error", err))
	}
}

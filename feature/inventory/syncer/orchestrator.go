package syncer

import (
	"context"
	"errors"
	"iter"
	"net/url"
	"sync/atomic"
	"time"

	"inventory-sync/core/logger"
	"inventory-sync/core/moysklad"
	"inventory-sync/feature/inventory/projection"
	"inventory-sync/feature/inventory/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Pager walks a paginated API collection.
type Pager interface {
	Pages(ctx context.Context, collection string, query url.Values) iter.Seq2[*moysklad.Page, error]
}

// Refresher rebuilds and publishes the projection.
type Refresher interface {
	Refresh(ctx context.Context) (*projection.Projection, error)
}

// Options narrows a single cycle.
type Options struct {
	// Phases restricts the cycle to the named phases; empty runs all of them.
	Phases []string
	// SkipProjection leaves the published projection untouched.
	SkipProjection bool
}

// Orchestrator runs sync cycles: every phase pages through one collection,
// normalizes each row and upserts it, then the projection is rebuilt.
type Orchestrator struct {
	pager     Pager
	refresher Refresher
	cfg       Config
	logger    *zap.Logger
	phases    []phase
	last      atomic.Pointer[CycleReport]
}

// New creates an orchestrator. counterpartyTag filters the counterparties
// whose card balances are synchronized.
func New(pager Pager, st Store, refresher Refresher, cfg Config, counterpartyTag string, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		pager:     pager,
		refresher: refresher,
		cfg:       cfg,
		logger:    log,
		phases:    buildPhases(st, counterpartyTag),
	}
}

// LastReport returns the report of the last finished cycle, or nil.
func (o *Orchestrator) LastReport() *CycleReport {
	return o.last.Load()
}

// Run repeats cycles separated by the idle interval until ctx is done.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.logger.Info("Sync loop started",
		zap.Duration("cooldown", o.cfg.Cooldown()),
		zap.Duration("idle", o.cfg.Idle()))

	for {
		if _, err := o.RunCycle(ctx, Options{}); err != nil && ctx.Err() == nil {
			o.logger.Error("Sync cycle failed", zap.Error(err))
		}
		if err := sleep(ctx, o.cfg.Idle()); err != nil {
			o.logger.Info("Sync loop stopped")
			return nil
		}
	}
}

// RunCycle runs the selected phases in order with a cooldown between them.
// A failing phase is recorded and the cycle moves on; the next cycle starts
// it again from the first page. The projection is rebuilt once the phases
// are done unless the cycle was cancelled. The returned error is non-nil
// only for an unknown phase name or cancellation.
func (o *Orchestrator) RunCycle(ctx context.Context, opts Options) (*CycleReport, error) {
	phases, err := selectPhases(o.phases, opts.Phases)
	if err != nil {
		return nil, err
	}

	report := &CycleReport{ID: uuid.NewString(), StartedAt: time.Now()}
	log := logger.WithCycle(o.logger, report.ID)
	log.Info("Sync cycle started", zap.Int("phases", len(phases)))

	for i, ph := range phases {
		if i > 0 {
			if err := sleep(ctx, o.cfg.Cooldown()); err != nil {
				report.Cancelled = true
				break
			}
		}
		report.Phases = append(report.Phases, o.runPhase(ctx, ph, log.With(zap.String("phase", ph.name))))
		if ctx.Err() != nil {
			report.Cancelled = true
			break
		}
	}

	if !report.Cancelled && !opts.SkipProjection {
		report.Projection = o.rebuild(ctx, log)
	}

	report.FinishedAt = time.Now()
	o.last.Store(report)
	log.Info("Sync cycle finished",
		zap.Bool("cancelled", report.Cancelled),
		zap.Duration("duration", report.FinishedAt.Sub(report.StartedAt)))

	if report.Cancelled {
		return report, ctx.Err()
	}
	return report, nil
}

func (o *Orchestrator) runPhase(ctx context.Context, ph phase, log *zap.Logger) PhaseReport {
	rep := PhaseReport{Name: ph.name}
	start := time.Now()
	// Row writes outlive cancellation so a row is never abandoned half-written.
	writeCtx := context.WithoutCancel(ctx)

	record := func(key string, err error) {
		switch {
		case err == nil:
			rep.Upserted++
		case errors.Is(err, errSkipped):
			rep.Skipped++
		case errors.Is(err, store.ErrUnresolvedReference):
			rep.Skipped++
			log.Debug("Row dropped", zap.String("key", key), zap.Error(err))
		default:
			rep.Failed++
			log.Warn("Row write failed", zap.String("key", key), zap.Error(err))
		}
	}

pages:
	for page, err := range o.pager.Pages(ctx, ph.collection, ph.query) {
		if err != nil {
			rep.Error = err.Error()
			log.Error("Phase abandoned", zap.Int("pages", rep.Pages), zap.Error(err))
			break
		}
		rep.Pages++
		for _, raw := range page.Rows {
			if ctx.Err() != nil {
				rep.Error = ctx.Err().Error()
				break pages
			}
			ph.row(writeCtx, raw, record)
		}
	}

	rep.Duration = time.Since(start)
	log.Info("Phase finished",
		zap.Int("pages", rep.Pages),
		zap.Int("upserted", rep.Upserted),
		zap.Int("skipped", rep.Skipped),
		zap.Int("failed", rep.Failed))
	return rep
}

func (o *Orchestrator) rebuild(ctx context.Context, log *zap.Logger) *ProjectionReport {
	if o.refresher == nil {
		return nil
	}
	p, err := o.refresher.Refresh(ctx)
	if err != nil {
		log.Error("Projection rebuild failed", zap.Error(err))
		return &ProjectionReport{Error: err.Error()}
	}
	return &ProjectionReport{Published: true, Groups: p.Size()}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

package inventory

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"inventory-sync/feature/inventory/models"
	"inventory-sync/feature/inventory/normalize"
	"inventory-sync/feature/inventory/projection"
	"inventory-sync/feature/inventory/syncer"

	"go.uber.org/zap"
)

// ErrInvalidCardNumber is returned for card numbers no card can hold.
var ErrInvalidCardNumber = errors.New("invalid card number")

// CardReader looks up loyalty cards.
type CardReader interface {
	CardByNumber(ctx context.Context, number string) (*models.Card, error)
}

// Rebuilder rebuilds and publishes the projection on demand.
type Rebuilder interface {
	Refresh(ctx context.Context) (*projection.Projection, error)
}

// StatusReporter exposes the last sync cycle.
type StatusReporter interface {
	LastReport() *syncer.CycleReport
}

// Service serves reads from the published projection and point lookups from storage.
type Service struct {
	cache     *projection.Cache
	rebuilder Rebuilder
	cards     CardReader
	status    StatusReporter
	logger    *zap.Logger
}

// NewService creates the inventory service. status may be nil when the sync loop is off.
func NewService(cache *projection.Cache, rebuilder Rebuilder, cards CardReader, status StatusReporter, logger *zap.Logger) *Service {
	return &Service{
		cache:     cache,
		rebuilder: rebuilder,
		cards:     cards,
		status:    status,
		logger:    logger,
	}
}

// Current returns the published projection without touching storage.
func (s *Service) Current() *projection.Projection {
	return s.cache.Get()
}

// Group returns every node of the published projection with the given name.
func (s *Service) Group(name string) []*projection.Node {
	return s.cache.Get().Find(name)
}

// Rebuild rebuilds the projection now. The previous one stays published on failure.
func (s *Service) Rebuild(ctx context.Context) (*projection.Projection, error) {
	return s.rebuilder.Refresh(ctx)
}

// Card returns the card with the given number, or nil when none exists.
func (s *Service) Card(ctx context.Context, number string) (*models.Card, error) {
	if number == "" || utf8.RuneCountInString(number) > normalize.MaxCardNumberLength {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCardNumber, number)
	}
	return s.cards.CardByNumber(ctx, number)
}

// SyncStatus returns the last cycle report, or nil before the first cycle ends.
func (s *Service) SyncStatus() *syncer.CycleReport {
	if s.status == nil {
		return nil
	}
	return s.status.LastReport()
}

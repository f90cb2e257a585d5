package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockroom/inventory-api/internal/core/domain"
	"github.com/stockroom/inventory-api/internal/core/ports"
	"github.com/stockroom/inventory-api/internal/core/query"
	"github.com/stockroom/inventory-api/internal/pkg/metrics"
)

// InventoryService implements the owner-scoped inventory use cases.
type InventoryService struct {
	repo    ports.InventoryRepository
	cache   ports.StatsCache
	journal ports.ChangeJournal
	log     zerolog.Logger
	now     func() time.Time
}

func NewInventoryService(
	repo ports.InventoryRepository,
	cache ports.StatsCache,
	journal ports.ChangeJournal,
	log zerolog.Logger,
) *InventoryService {
	return &InventoryService{
		repo:    repo,
		cache:   cache,
		journal: journal,
		log:     log,
		now:     time.Now,
	}
}

// Create validates fields and stores a new record owned by ownerID.
func (s *InventoryService) Create(ctx context.Context, ownerID string, fields ports.InventoryFields) (*domain.InventoryRecord, error) {
	rec := &domain.InventoryRecord{Stock: domain.StockIn}
	fields.ApplyTo(rec)
	rec.Normalize()

	if err := validateCreate(rec, fields); err != nil {
		return nil, err
	}

	rec.UserID = ownerID
	rec.LastUpdated = s.now().UTC()

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, rec, domain.ChangeCreated)
	s.log.Info().Str("record_id", rec.ID).Str("inventory_id", rec.InventoryID).Str("owner_id", ownerID).Msg("inventory record created")
	return rec, nil
}

// validateCreate merges the "required" failures of absent fields with the
// record's own constraint checks.
func validateCreate(rec *domain.InventoryRecord, fields ports.InventoryFields) error {
	verr := &domain.ValidationError{}
	if fields.CostUnit == nil {
		verr.Add("costUnit", "Cost per unit is required")
	}
	var fieldErr *domain.ValidationError
	if errors.As(rec.Validate(), &fieldErr) {
		for field, msg := range fieldErr.Fields {
			verr.Add(field, msg)
		}
	}
	return verr.OrNil()
}

// Update applies the supplied fields to a record owned by ownerID.
func (s *InventoryService) Update(ctx context.Context, ownerID, recordID string, fields ports.InventoryFields) (*domain.InventoryRecord, error) {
	rec, err := s.ownedRecord(ctx, ownerID, recordID)
	if err != nil {
		return nil, err
	}

	updated := *rec
	fields.ApplyTo(&updated)
	updated.Normalize()
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	updated.LastUpdated = s.now().UTC()

	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, &updated, domain.ChangeUpdated)
	return &updated, nil
}

// Delete permanently removes a record owned by ownerID.
func (s *InventoryService) Delete(ctx context.Context, ownerID, recordID string) error {
	rec, err := s.ownedRecord(ctx, ownerID, recordID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, rec.ID, ownerID); err != nil {
		return err
	}

	s.afterWrite(ctx, rec, domain.ChangeDeleted)
	s.log.Info().Str("record_id", rec.ID).Str("owner_id", ownerID).Msg("inventory record deleted")
	return nil
}

// ownedRecord loads recordID and checks that ownerID owns it.
func (s *InventoryService) ownedRecord(ctx context.Context, ownerID, recordID string) (*domain.InventoryRecord, error) {
	rec, err := s.repo.FindByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if !rec.OwnedBy(ownerID) {
		s.log.Warn().Str("record_id", recordID).Str("owner_id", ownerID).Msg("ownership check failed")
		return nil, domain.ErrForbidden
	}
	return rec, nil
}

func (s *InventoryService) afterWrite(ctx context.Context, rec *domain.InventoryRecord, action domain.ChangeAction) {
	metrics.InventoryWritesTotal.WithLabelValues(string(action)).Inc()
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, rec.UserID); err != nil {
			s.log.Warn().Err(err).Str("owner_id", rec.UserID).Msg("failed to invalidate stats cache")
		}
	}
	if s.journal != nil {
		s.journal.Record(ctx, domain.InventoryChange{
			RecordID:    rec.ID,
			InventoryID: rec.InventoryID,
			OwnerID:     rec.UserID,
			Action:      action,
			At:          s.now().UTC(),
		})
	}
}

// ListByOwner returns every record of ownerID, newest first.
func (s *InventoryService) ListByOwner(ctx context.Context, ownerID string) ([]*domain.InventoryRecord, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// List returns the owner's records narrowed by params.
func (s *InventoryService) List(ctx context.Context, ownerID string, params query.Params) ([]*domain.InventoryRecord, error) {
	records, err := s.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return query.Apply(records, params), nil
}

// Search is List with only a search term.
func (s *InventoryService) Search(ctx context.Context, ownerID, term string) ([]*domain.InventoryRecord, error) {
	return s.List(ctx, ownerID, query.Params{Search: term})
}

// Stats summarizes the owner's records, served from the cache when possible.
func (s *InventoryService) Stats(ctx context.Context, ownerID string) (domain.InventoryStats, error) {
	var (
		generation int64
		cacheable  bool
	)
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, ownerID)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("owner_id", ownerID).Msg("stats cache read failed, computing")
		case ok:
			return *cached, nil
		}

		// Read before listing so a write committed in between invalidates this result.
		if generation, err = s.cache.Generation(ctx, ownerID); err != nil {
			s.log.Warn().Err(err).Str("owner_id", ownerID).Msg("stats cache generation read failed")
		} else {
			cacheable = true
		}
	}

	records, err := s.ListByOwner(ctx, ownerID)
	if err != nil {
		return domain.InventoryStats{}, err
	}
	stats := query.ComputeStats(records)

	if cacheable {
		stored, err := s.cache.Set(ctx, ownerID, generation, stats)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("owner_id", ownerID).Msg("stats cache write failed")
		case !stored:
			s.log.Debug().Str("owner_id", ownerID).Msg("stats changed while computing, not cached")
		}
	}
	return stats, nil
}

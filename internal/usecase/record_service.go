package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"moneytrail/internal/cache"
	"moneytrail/internal/domain"
	"moneytrail/internal/finance"
)

// RecordService handles financial record writes and the reads that feed the
// table, charts and exports
type RecordService struct {
	records         domain.FinancialRecordRepository
	cache           *cache.RecordCache
	defaultCurrency string
	log             zerolog.Logger
}

// NewRecordService creates a new RecordService
func NewRecordService(
	records domain.FinancialRecordRepository,
	recordCache *cache.RecordCache,
	defaultCurrency string,
	log zerolog.Logger,
) *RecordService {
	return &RecordService{
		records:         records,
		cache:           recordCache,
		defaultCurrency: defaultCurrency,
		log:             log.With().Str("component", "records").Logger(),
	}
}

// List returns the user's records in store order, from cache when possible
func (s *RecordService) List(ctx context.Context, userID uuid.UUID) ([]*domain.FinancialRecord, error) {
	if records, ok := s.cache.Get(userID); ok {
		return records, nil
	}

	// a write that lands while the store is read makes this result stale
	gen := s.cache.Generation(userID)
	records, err := s.records.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	s.cache.SetIfUnchanged(userID, gen, records)
	return records, nil
}

// Rows returns the records table: records ordered by date with derived metrics
func (s *RecordService) Rows(ctx context.Context, userID uuid.UUID) ([]finance.Row, error) {
	records, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return finance.Rows(records), nil
}

// Series aggregates the user's records into chart series
func (s *RecordService) Series(ctx context.Context, userID uuid.UUID) (finance.ChartSeries, error) {
	records, err := s.List(ctx, userID)
	if err != nil {
		return finance.ChartSeries{}, err
	}
	return finance.Aggregate(records, s.defaultCurrency), nil
}

// Dashboard builds every dashboard chart for the user
func (s *RecordService) Dashboard(ctx context.Context, userID uuid.UUID) (finance.Dashboard, error) {
	series, err := s.Series(ctx, userID)
	if err != nil {
		return finance.Dashboard{}, err
	}
	return finance.BuildDashboard(&series)
}

// Create validates the payload and stores a new record
func (s *RecordService) Create(ctx context.Context, userID uuid.UUID, in finance.RecordInput) (*domain.FinancialRecord, error) {
	values, err := finance.ValidateRecord(in)
	if err != nil {
		return nil, err
	}

	record, err := s.records.Create(ctx, userID, values)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(userID)

	s.log.Info().
		Str("user_id", userID.String()).
		Str("record_id", record.ID.String()).
		Msg("financial record created")
	return record, nil
}

// Update validates the payload and replaces every editable field of the record
func (s *RecordService) Update(ctx context.Context, userID, id uuid.UUID, in finance.RecordInput) (*domain.FinancialRecord, error) {
	values, err := finance.ValidateRecord(in)
	if err != nil {
		return nil, err
	}

	record, err := s.records.Update(ctx, userID, id, values)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(userID)

	s.log.Info().
		Str("user_id", userID.String()).
		Str("record_id", id.String()).
		Msg("financial record updated")
	return record, nil
}

// Delete removes the record. The cached set drops it immediately and is put
// back if the store fails.
func (s *RecordService) Delete(ctx context.Context, userID, id uuid.UUID) (*domain.FinancialRecord, error) {
	previous, gen, cached := s.cache.Remove(userID, id)

	record, err := s.records.Delete(ctx, userID, id)
	if err != nil {
		restored := cached && s.cache.Restore(userID, gen, previous)
		if cached && !restored {
			// the set changed meanwhile; let the next read reload it
			s.cache.Invalidate(userID)
		}
		s.log.Warn().Err(err).
			Str("user_id", userID.String()).
			Str("record_id", id.String()).
			Bool("cache_restored", restored).
			Msg("delete failed")
		return nil, err
	}
	s.cache.Invalidate(userID)

	s.log.Info().
		Str("user_id", userID.String()).
		Str("record_id", id.String()).
		Bool("existed", record != nil).
		Msg("financial record deleted")
	return record, nil
}

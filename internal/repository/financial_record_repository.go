package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"moneytrail/internal/domain"
)

const recordColumns = `id, user_id, date, currency, gross_income_ytd, taxes_paid_ytd,
		       assets_ex_cash, cash, debt, created_at, updated_at`

// FinancialRecordRepositoryImpl implements the FinancialRecordRepository interface
type FinancialRecordRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewFinancialRecordRepository creates a new FinancialRecordRepository
func NewFinancialRecordRepository(db *pgxpool.Pool) domain.FinancialRecordRepository {
	return &FinancialRecordRepositoryImpl{db: db}
}

// Create stores a new record for the user
func (r *FinancialRecordRepositoryImpl) Create(ctx context.Context, userID uuid.UUID, values domain.RecordValues) (*domain.FinancialRecord, error) {
	now := time.Now().UTC()
	record := &domain.FinancialRecord{
		ID:           uuid.New(),
		UserID:       userID,
		RecordValues: values,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	query := `
		INSERT INTO financial_records (
			id, user_id, date, currency, gross_income_ytd, taxes_paid_ytd,
			assets_ex_cash, cash, debt, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
	`

	_, err := r.db.Exec(ctx, query,
		record.ID,
		record.UserID,
		record.Date,
		record.Currency,
		record.GrossIncomeYtd,
		record.TaxesPaidYtd,
		record.AssetsExCash,
		record.Cash,
		record.Debt,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create financial record: %w", err)
	}

	return record, nil
}

// ListByUser retrieves all records of a user in creation order
func (r *FinancialRecordRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.FinancialRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM financial_records
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query financial records: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.FinancialRecord, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan financial record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating financial records: %w", err)
	}

	return records, nil
}

// Update replaces the editable fields of a record owned by the user
func (r *FinancialRecordRepositoryImpl) Update(ctx context.Context, userID, id uuid.UUID, values domain.RecordValues) (*domain.FinancialRecord, error) {
	query := `
		UPDATE financial_records
		SET date = $1, currency = $2, gross_income_ytd = $3, taxes_paid_ytd = $4,
		    assets_ex_cash = $5, cash = $6, debt = $7, updated_at = NOW()
		WHERE id = $8 AND user_id = $9
		RETURNING ` + recordColumns

	record, err := scanRecord(r.db.QueryRow(ctx, query,
		values.Date,
		values.Currency,
		values.GrossIncomeYtd,
		values.TaxesPaidYtd,
		values.AssetsExCash,
		values.Cash,
		values.Debt,
		id,
		userID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("financial record %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update financial record: %w", err)
	}

	return record, nil
}

// Delete removes a record owned by the user. A missing record is not an error.
func (r *FinancialRecordRepositoryImpl) Delete(ctx context.Context, userID, id uuid.UUID) (*domain.FinancialRecord, error) {
	query := `
		DELETE FROM financial_records
		WHERE id = $1 AND user_id = $2
		RETURNING ` + recordColumns

	record, err := scanRecord(r.db.QueryRow(ctx, query, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete financial record: %w", err)
	}

	return record, nil
}

func scanRecord(row pgx.Row) (*domain.FinancialRecord, error) {
	record := &domain.FinancialRecord{}
	err := row.Scan(
		&record.ID,
		&record.UserID,
		&record.Date,
		&record.Currency,
		&record.GrossIncomeYtd,
		&record.TaxesPaidYtd,
		&record.AssetsExCash,
		&record.Cash,
		&record.Debt,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	record.Date = record.Date.UTC()
	return record, nil
}

package domain

import (
	"context"

	"github.com/google/uuid"
)

// FinancialRecordRepository defines the interface for financial record storage.
// Every operation is scoped to the owning user.
type FinancialRecordRepository interface {
	// Create stores a new record and assigns its ID
	Create(ctx context.Context, userID uuid.UUID, values RecordValues) (*FinancialRecord, error)

	// ListByUser retrieves all records of a user in store order
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*FinancialRecord, error)

	// Update replaces every editable field of a record.
	// Returns ErrNotFound if the record does not exist for this user.
	Update(ctx context.Context, userID, id uuid.UUID, values RecordValues) (*FinancialRecord, error)

	// Delete removes a record unconditionally. The deleted record is returned,
	// or nil when nothing matched.
	Delete(ctx context.Context, userID, id uuid.UUID) (*FinancialRecord, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// UpsertByEmail creates the user on first login and refreshes the profile afterwards
	UpsertByEmail(ctx context.Context, identity Identity) (*User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}

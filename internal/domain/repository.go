package domain

import "context"

// QuestionSetRepository persists question sets by id.
type QuestionSetRepository interface {
	// Save inserts the set or replaces the stored one with the same id.
	Save(ctx context.Context, set QuestionSet) error

	// GetByID returns nil without an error when the set does not exist.
	GetByID(ctx context.Context, id string) (*QuestionSet, error)

	ListIDs(ctx context.Context) ([]string, error)

	// Delete reports whether a set was removed.
	Delete(ctx context.Context, id string) (bool, error)
}

// TransactionManager runs fn inside a single transaction carried by ctx.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

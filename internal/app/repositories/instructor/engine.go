package instructor

import (
	"context"

	"github.com/courseroom/backend/internal/app/models"
)

// Filter selects instructor records by exact match. Zero-valued fields are
// wildcards, so the zero Filter matches every record.
type Filter struct {
	CourseID string
	GoogleID string
	Email    string
}

// IsEmpty reports whether the filter matches everything
func (f Filter) IsEmpty() bool {
	return f == Filter{}
}

// Engine is the storage collaborator the instructor store is built on.
//
// A write that has been issued and flushed is durable, but the engine only
// guarantees it becomes visible to later Selects within some backend-specific,
// unbounded delay. Read-after-write is NOT synchronous; the store compensates
// with its own visibility checks.
type Engine interface {
	// Select returns detached copies of all records matching the filter,
	// in no particular order.
	Select(ctx context.Context, f Filter) ([]models.InstructorRecord, error)

	// Insert issues a write for a new record.
	Insert(ctx context.Context, rec *models.InstructorRecord) error

	// Update rewrites the name and email of the record identified by
	// (rec.CourseID, rec.GoogleID). The key fields themselves are never
	// rewritten.
	Update(ctx context.Context, rec *models.InstructorRecord) error

	// Delete issues a delete for the record identified by the key pair.
	// Deleting an absent record is not an error.
	Delete(ctx context.Context, courseID, googleID string) error

	// DeleteAll issues deletes for every record matching the filter.
	// The filter must not be empty.
	DeleteAll(ctx context.Context, f Filter) error

	// Flush commits any buffered writes. Engines that write through
	// implement this as a no-op.
	Flush(ctx context.Context) error
}

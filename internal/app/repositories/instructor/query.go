package instructor

import (
	"context"
	"fmt"

	"github.com/courseroom/backend/internal/app/models"
	"github.com/courseroom/backend/internal/pkg/assume"
)

// Query layer: side-effect-free lookups translating a key into matching
// records. Key arguments must be non-empty; violating that is a caller bug
// and fails fast. Records returned here are detached copies, so a record
// deleted earlier in the same call can never surface as a stale live
// reference.

// findRecordForGoogleID returns the record keyed by (courseId, googleId),
// or nil when there is none.
func (s *Store) findRecordForGoogleID(ctx context.Context, courseID, googleID string) (*models.InstructorRecord, error) {
	assume.NotEmpty("googleId", googleID)
	assume.NotEmpty("courseId", courseID)

	records, err := s.engine.Select(ctx, Filter{CourseID: courseID, GoogleID: googleID})
	if err != nil {
		return nil, fmt.Errorf("error finding instructor by google id: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	rec := records[0]
	return &rec, nil
}

// findRecordForEmail returns the record keyed by (courseId, email), or nil
// when there is none.
func (s *Store) findRecordForEmail(ctx context.Context, courseID, email string) (*models.InstructorRecord, error) {
	assume.NotEmpty("courseId", courseID)
	assume.NotEmpty("email", email)

	records, err := s.engine.Select(ctx, Filter{CourseID: courseID, Email: email})
	if err != nil {
		return nil, fmt.Errorf("error finding instructor by email: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	rec := records[0]
	return &rec, nil
}

// findRecordsForGoogleID returns all records for one google identity,
// unordered and unbounded.
func (s *Store) findRecordsForGoogleID(ctx context.Context, googleID string) ([]models.InstructorRecord, error) {
	assume.NotEmpty("googleId", googleID)

	records, err := s.engine.Select(ctx, Filter{GoogleID: googleID})
	if err != nil {
		return nil, fmt.Errorf("error finding instructors by google id: %w", err)
	}
	return records, nil
}

// findRecordsForCourse returns all records for one course, unordered and
// unbounded.
func (s *Store) findRecordsForCourse(ctx context.Context, courseID string) ([]models.InstructorRecord, error) {
	assume.NotEmpty("courseId", courseID)

	records, err := s.engine.Select(ctx, Filter{CourseID: courseID})
	if err != nil {
		return nil, fmt.Errorf("error finding instructors by course: %w", err)
	}
	return records, nil
}

// findAllRecords returns every instructor record in the store. Full scan;
// reserved for administrative use.
func (s *Store) findAllRecords(ctx context.Context) ([]models.InstructorRecord, error) {
	records, err := s.engine.Select(ctx, Filter{})
	if err != nil {
		return nil, fmt.Errorf("error finding all instructors: %w", err)
	}
	return records, nil
}

// Package instructor handles CRUD operations for instructor roles.
// The API exchanges detached attribute objects (datatransfer package)
// instead of persistable records.
package instructor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/courseroom/backend/internal/app/datatransfer"
	"github.com/courseroom/backend/internal/app/models"
	"github.com/courseroom/backend/internal/pkg/apperrors"
	"github.com/courseroom/backend/internal/pkg/assume"
	"github.com/courseroom/backend/internal/pkg/metrics"
	"github.com/courseroom/backend/internal/pkg/persistwait"
)

// Process-wide persistence check budget. An issued write is re-checked for
// visibility every interval, up to the attempt limit (~5s total). These are
// deliberately not per-call settings.
const (
	persistenceCheckInterval = 200 * time.Millisecond
	persistenceCheckAttempts = 25
)

// Store is the data access facade for instructor roles. Each method is its
// own unit of work: no session state is held across calls, and the store
// client handle is injected at construction, never pulled from a global.
type Store struct {
	engine Engine
	waiter *persistwait.Waiter
	log    zerolog.Logger

	// onTimeout, when set, is invoked after a visibility check gives up.
	// Test harnesses use it to observe the otherwise silent timeout path.
	onTimeout func(operation string)
}

// NewStore creates a Store on the given engine
func NewStore(engine Engine, log zerolog.Logger) *Store {
	return &Store{
		engine: engine,
		waiter: persistwait.New(persistenceCheckInterval, persistenceCheckAttempts),
		log:    log,
	}
}

// CreateInstructor persists a new instructor role and blocks until the write
// is visible to reads, or the process-wide wait budget elapses.
//
// Preconditions: attrs is non-nil and valid; violating this is a caller bug
// and panics. Returns an error matching apperrors.ErrEntityAlreadyExists when
// a role with the same (courseId, googleId) already exists; in that case the
// store is left unchanged.
//
// Two callers racing to create the same key can both pass the existence
// check before either write is visible. The engine is not assumed to enforce
// uniqueness, so this check-then-act race is a documented weakness.
func (s *Store) CreateInstructor(ctx context.Context, attrs *datatransfer.InstructorAttributes) error {
	assume.That(attrs != nil, "non-nil instructor attributes expected")
	assume.That(attrs.IsValid(), "invalid instructor attributes received as a parameter: %v", attrs.InvalidityInfo())

	existing, err := s.findRecordForGoogleID(ctx, attrs.CourseID, attrs.GoogleID)
	if err != nil {
		return fmt.Errorf("checking for existing instructor: %w", err)
	}
	if existing != nil {
		return apperrors.NewEntityAlreadyExistsError(attrs.GoogleID, attrs.CourseID)
	}

	rec := attrs.ToRecord()
	if err := s.engine.Insert(ctx, rec); err != nil {
		if errors.Is(err, apperrors.ErrEntityAlreadyExists) {
			return err
		}
		return fmt.Errorf("creating instructor: %w", err)
	}
	if err := s.engine.Flush(ctx); err != nil {
		return fmt.Errorf("flushing instructor create: %w", err)
	}

	s.awaitVisibility(ctx, "createInstructor", attrs.CourseID, attrs.GoogleID, func(ctx context.Context) (bool, error) {
		check, err := s.findRecordForGoogleID(ctx, attrs.CourseID, attrs.GoogleID)
		return check != nil, err
	})

	return nil
}

// GetInstructorForEmail returns the instructor keyed by (courseId, email),
// or nil when there is none. Absence is a normal outcome, not an error.
func (s *Store) GetInstructorForEmail(ctx context.Context, courseID, email string) (*datatransfer.InstructorAttributes, error) {
	rec, err := s.findRecordForEmail(ctx, courseID, email)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		s.log.Info().Str("courseId", courseID).Str("email", email).
			Msg("Trying to get non-existent instructor")
		return nil, nil
	}
	return datatransfer.NewInstructorAttributes(rec), nil
}

// GetInstructorForGoogleID returns the instructor keyed by
// (courseId, googleId), or nil when there is none.
func (s *Store) GetInstructorForGoogleID(ctx context.Context, courseID, googleID string) (*datatransfer.InstructorAttributes, error) {
	rec, err := s.findRecordForGoogleID(ctx, courseID, googleID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		s.log.Info().Str("courseId", courseID).Str("googleId", googleID).
			Msg("Trying to get non-existent instructor")
		return nil, nil
	}
	return datatransfer.NewInstructorAttributes(rec), nil
}

// GetInstructorsForGoogleID returns every instructor role held by one google
// identity. The result is never nil; no matches yields an empty slice.
func (s *Store) GetInstructorsForGoogleID(ctx context.Context, googleID string) ([]*datatransfer.InstructorAttributes, error) {
	records, err := s.findRecordsForGoogleID(ctx, googleID)
	if err != nil {
		return nil, err
	}
	return toAttributesList(records), nil
}

// GetInstructorsForCourse returns every instructor role in one course.
// The result is never nil; no matches yields an empty slice.
func (s *Store) GetInstructorsForCourse(ctx context.Context, courseID string) ([]*datatransfer.InstructorAttributes, error) {
	records, err := s.findRecordsForCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return toAttributesList(records), nil
}

// GetAllInstructors returns every instructor role in the system.
// Not scalable and not paginated; don't use outside admin features.
func (s *Store) GetAllInstructors(ctx context.Context) ([]*datatransfer.InstructorAttributes, error) {
	records, err := s.findAllRecords(ctx)
	if err != nil {
		return nil, err
	}
	return toAttributesList(records), nil
}

// UpdateInstructor rewrites the name and email of the stored record keyed by
// (attrs.CourseID, attrs.GoogleID). The key fields are immutable and never
// rewritten.
//
// Preconditions: attrs is non-nil, valid, and names an existing record.
// Updating a non-existent instructor is treated as a caller bug and panics
// (deliberately asymmetric with DeleteInstructor's silent no-op). No
// visibility wait is performed after an update.
func (s *Store) UpdateInstructor(ctx context.Context, attrs *datatransfer.InstructorAttributes) error {
	assume.That(attrs != nil, "non-nil instructor attributes expected")
	assume.That(attrs.IsValid(), "invalid instructor attributes received as a parameter: %v", attrs.InvalidityInfo())

	rec, err := s.findRecordForGoogleID(ctx, attrs.CourseID, attrs.GoogleID)
	if err != nil {
		return fmt.Errorf("looking up instructor to update: %w", err)
	}
	assume.That(rec != nil, "trying to update non-existent instructor: %s/%s", attrs.CourseID, attrs.GoogleID)

	rec.Name = attrs.Name
	rec.Email = attrs.Email

	if err := s.engine.Update(ctx, rec); err != nil {
		return fmt.Errorf("updating instructor: %w", err)
	}
	if err := s.engine.Flush(ctx); err != nil {
		return fmt.Errorf("flushing instructor update: %w", err)
	}

	return nil
}

// DeleteInstructor removes the instructor keyed by (courseId, googleId) and
// blocks until the delete is visible to reads, or the wait budget elapses.
// Deleting an absent instructor is a silent no-op.
func (s *Store) DeleteInstructor(ctx context.Context, courseID, googleID string) error {
	rec, err := s.findRecordForGoogleID(ctx, courseID, googleID)
	if err != nil {
		return fmt.Errorf("looking up instructor to delete: %w", err)
	}
	if rec == nil {
		return nil
	}

	if err := s.engine.Delete(ctx, courseID, googleID); err != nil {
		return fmt.Errorf("deleting instructor: %w", err)
	}
	if err := s.engine.Flush(ctx); err != nil {
		return fmt.Errorf("flushing instructor delete: %w", err)
	}

	s.awaitVisibility(ctx, "deleteInstructor", courseID, googleID, func(ctx context.Context) (bool, error) {
		check, err := s.findRecordForGoogleID(ctx, courseID, googleID)
		return check == nil, err
	})

	return nil
}

// DeleteInstructorsForGoogleID removes every instructor role held by one
// google identity. No matches is a silent no-op. Bulk deletes skip the
// visibility wait applied to single deletes.
func (s *Store) DeleteInstructorsForGoogleID(ctx context.Context, googleID string) error {
	assume.NotEmpty("googleId", googleID)

	if err := s.engine.DeleteAll(ctx, Filter{GoogleID: googleID}); err != nil {
		return fmt.Errorf("bulk deleting instructors by google id: %w", err)
	}
	if err := s.engine.Flush(ctx); err != nil {
		return fmt.Errorf("flushing bulk instructor delete: %w", err)
	}
	return nil
}

// DeleteInstructorsForCourse removes every instructor role in one course.
// No matches is a silent no-op. Bulk deletes skip the visibility wait
// applied to single deletes.
func (s *Store) DeleteInstructorsForCourse(ctx context.Context, courseID string) error {
	assume.NotEmpty("courseId", courseID)

	if err := s.engine.DeleteAll(ctx, Filter{CourseID: courseID}); err != nil {
		return fmt.Errorf("bulk deleting instructors by course: %w", err)
	}
	if err := s.engine.Flush(ctx); err != nil {
		return fmt.Errorf("flushing bulk instructor delete: %w", err)
	}
	return nil
}

// awaitVisibility polls until the flushed mutation is observable. Timeouts
// and check failures are logged and counted but never surfaced as errors:
// the return value of the mutating call cannot distinguish confirmed-durable
// from probably-durable.
func (s *Store) awaitVisibility(ctx context.Context, operation, courseID, googleID string, visible persistwait.Predicate) {
	outcome, err := s.waiter.Await(ctx, visible)
	metrics.PersistenceChecks.WithLabelValues(operation, outcome.String()).Inc()

	switch outcome {
	case persistwait.TimedOut:
		metrics.PersistenceTimeouts.WithLabelValues(operation).Inc()
		s.log.Error().Str("operation", operation).Str("courseId", courseID).Str("googleId", googleID).
			Msg("Operation did not persist in time")
		if s.onTimeout != nil {
			s.onTimeout(operation)
		}
	case persistwait.Failed:
		s.log.Error().Err(err).Str("operation", operation).Str("courseId", courseID).Str("googleId", googleID).
			Msg("Persistence check failed")
	}
}

func toAttributesList(records []models.InstructorRecord) []*datatransfer.InstructorAttributes {
	list := make([]*datatransfer.InstructorAttributes, 0, len(records))
	for i := range records {
		list = append(list, datatransfer.NewInstructorAttributes(&records[i]))
	}
	return list
}

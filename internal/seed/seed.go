package seed

import (
	"context"
	"errors"

	"github.com/courseroom/backend/internal/app/datatransfer"
	"github.com/courseroom/backend/internal/app/repositories/instructor"
	"github.com/courseroom/backend/internal/pkg/apperrors"
	"github.com/courseroom/backend/internal/pkg/logger"
)

// sampleInstructors are the development fixtures. They go through the
// store facade so seeding exercises the same path as production writes.
var sampleInstructors = []*datatransfer.InstructorAttributes{
	{GoogleID: "alice.lecturer", CourseID: "demo.cs1101", Email: "alice@example.edu", Name: "Alice Lim"},
	{GoogleID: "bob.tutor", CourseID: "demo.cs1101", Email: "bob@example.edu", Name: "Bob Tan"},
	{GoogleID: "alice.lecturer", CourseID: "demo.cs2103", Email: "alice@example.edu", Name: "Alice Lim"},
}

// Run inserts the development fixtures, skipping any that already exist.
func Run(ctx context.Context, store *instructor.Store) error {
	var created, skipped int

	for _, attrs := range sampleInstructors {
		err := store.CreateInstructor(ctx, attrs)
		switch {
		case err == nil:
			created++
		case errors.Is(err, apperrors.ErrEntityAlreadyExists):
			skipped++
		default:
			return err
		}
	}

	logger.Info().
		Int("created", created).
		Int("skipped", skipped).
		Msg("Seed data applied")

	return nil
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/courseroom/backend/internal/app/datatransfer"
	"github.com/courseroom/backend/internal/app/models/dto"
	"github.com/courseroom/backend/internal/app/repositories/instructor"
	"github.com/courseroom/backend/internal/pkg/apperrors"
)

// InstructorService defines the interface for instructor-related operations
// exposed to the HTTP layer. It shields the data access facade's fail-fast
// caller contract from user input: empty keys and invalid attributes are
// rejected here as recoverable errors before they reach the store.
type InstructorService interface {
	CreateInstructor(ctx context.Context, req *dto.CreateInstructorRequest) (*dto.InstructorResponse, error)
	GetInstructorByGoogleID(ctx context.Context, courseID, googleID string) (*dto.InstructorResponse, error)
	GetInstructorByEmail(ctx context.Context, courseID, email string) (*dto.InstructorResponse, error)
	ListInstructorsForCourse(ctx context.Context, courseID string) ([]*dto.InstructorResponse, error)
	ListInstructorsForGoogleID(ctx context.Context, googleID string) ([]*dto.InstructorResponse, error)
	ListAllInstructors(ctx context.Context) ([]*dto.InstructorResponse, error)
	UpdateInstructor(ctx context.Context, req *dto.UpdateInstructorRequest) (*dto.InstructorResponse, error)
	DeleteInstructor(ctx context.Context, courseID, googleID string) error
	DeleteInstructorsForCourse(ctx context.Context, courseID string) error
	DeleteInstructorsForGoogleID(ctx context.Context, googleID string) error
}

// instructorServiceImpl implements the InstructorService interface
type instructorServiceImpl struct {
	store *instructor.Store
}

// NewInstructorService creates a new instructor service instance
func NewInstructorService(store *instructor.Store) InstructorService {
	return &instructorServiceImpl{store: store}
}

// requireKey rejects empty key parameters as bad requests
func requireKey(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.NewBadRequestError(fmt.Sprintf("%s must not be empty", name))
	}
	return nil
}

// validatedAttributes builds attributes from request fields and rejects
// internally inconsistent ones as validation failures
func validatedAttributes(googleID, courseID, email, name string) (*datatransfer.InstructorAttributes, error) {
	attrs := &datatransfer.InstructorAttributes{
		GoogleID: googleID,
		CourseID: courseID,
		Email:    email,
		Name:     name,
	}
	if !attrs.IsValid() {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("invalid instructor attributes: %s", strings.Join(attrs.InvalidityInfo(), "; ")))
	}
	return attrs, nil
}

// CreateInstructor registers a new instructor role
func (s *instructorServiceImpl) CreateInstructor(ctx context.Context, req *dto.CreateInstructorRequest) (*dto.InstructorResponse, error) {
	attrs, err := validatedAttributes(req.GoogleID, req.CourseID, req.Email, req.Name)
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateInstructor(ctx, attrs); err != nil {
		return nil, err
	}

	return dto.NewInstructorResponse(attrs), nil
}

// GetInstructorByGoogleID retrieves one instructor role by its primary key
func (s *instructorServiceImpl) GetInstructorByGoogleID(ctx context.Context, courseID, googleID string) (*dto.InstructorResponse, error) {
	if err := requireKey("courseId", courseID); err != nil {
		return nil, err
	}
	if err := requireKey("googleId", googleID); err != nil {
		return nil, err
	}

	attrs, err := s.store.GetInstructorForGoogleID(ctx, courseID, googleID)
	if err != nil {
		return nil, fmt.Errorf("error getting instructor: %w", err)
	}
	if attrs == nil {
		return nil, apperrors.ErrEntityNotFound
	}
	return dto.NewInstructorResponse(attrs), nil
}

// GetInstructorByEmail retrieves one instructor role by course and email
func (s *instructorServiceImpl) GetInstructorByEmail(ctx context.Context, courseID, email string) (*dto.InstructorResponse, error) {
	if err := requireKey("courseId", courseID); err != nil {
		return nil, err
	}
	if err := requireKey("email", email); err != nil {
		return nil, err
	}

	attrs, err := s.store.GetInstructorForEmail(ctx, courseID, email)
	if err != nil {
		return nil, fmt.Errorf("error getting instructor: %w", err)
	}
	if attrs == nil {
		return nil, apperrors.ErrEntityNotFound
	}
	return dto.NewInstructorResponse(attrs), nil
}

// ListInstructorsForCourse lists every instructor role in one course
func (s *instructorServiceImpl) ListInstructorsForCourse(ctx context.Context, courseID string) ([]*dto.InstructorResponse, error) {
	if err := requireKey("courseId", courseID); err != nil {
		return nil, err
	}

	list, err := s.store.GetInstructorsForCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing instructors: %w", err)
	}
	return dto.NewInstructorResponseList(list), nil
}

// ListInstructorsForGoogleID lists every role held by one google identity
func (s *instructorServiceImpl) ListInstructorsForGoogleID(ctx context.Context, googleID string) ([]*dto.InstructorResponse, error) {
	if err := requireKey("googleId", googleID); err != nil {
		return nil, err
	}

	list, err := s.store.GetInstructorsForGoogleID(ctx, googleID)
	if err != nil {
		return nil, fmt.Errorf("error listing instructors: %w", err)
	}
	return dto.NewInstructorResponseList(list), nil
}

// ListAllInstructors lists every instructor role in the system. Admin only;
// the underlying scan does not paginate.
func (s *instructorServiceImpl) ListAllInstructors(ctx context.Context) ([]*dto.InstructorResponse, error) {
	list, err := s.store.GetAllInstructors(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing instructors: %w", err)
	}
	return dto.NewInstructorResponseList(list), nil
}

// UpdateInstructor renames an existing instructor role. The store treats a
// missing target as a caller bug, so existence is checked here first and
// reported as a not-found error instead.
func (s *instructorServiceImpl) UpdateInstructor(ctx context.Context, req *dto.UpdateInstructorRequest) (*dto.InstructorResponse, error) {
	attrs, err := validatedAttributes(req.GoogleID, req.CourseID, req.Email, req.Name)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetInstructorForGoogleID(ctx, req.CourseID, req.GoogleID)
	if err != nil {
		return nil, fmt.Errorf("error looking up instructor: %w", err)
	}
	if existing == nil {
		return nil, apperrors.ErrEntityNotFound
	}

	if err := s.store.UpdateInstructor(ctx, attrs); err != nil {
		return nil, err
	}
	return dto.NewInstructorResponse(attrs), nil
}

// DeleteInstructor removes one instructor role; deleting an absent role
// succeeds silently
func (s *instructorServiceImpl) DeleteInstructor(ctx context.Context, courseID, googleID string) error {
	if err := requireKey("courseId", courseID); err != nil {
		return err
	}
	if err := requireKey("googleId", googleID); err != nil {
		return err
	}
	return s.store.DeleteInstructor(ctx, courseID, googleID)
}

// DeleteInstructorsForCourse removes every instructor role in one course
func (s *instructorServiceImpl) DeleteInstructorsForCourse(ctx context.Context, courseID string) error {
	if err := requireKey("courseId", courseID); err != nil {
		return err
	}
	return s.store.DeleteInstructorsForCourse(ctx, courseID)
}

// DeleteInstructorsForGoogleID removes every role held by one google identity
func (s *instructorServiceImpl) DeleteInstructorsForGoogleID(ctx context.Context, googleID string) error {
	if err := requireKey("googleId", googleID); err != nil {
		return err
	}
	return s.store.DeleteInstructorsForGoogleID(ctx, googleID)
}

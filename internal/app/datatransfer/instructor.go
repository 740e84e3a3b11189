// Package datatransfer holds the detached value objects exchanged across the
// data access boundary instead of persistable records.
package datatransfer

import (
	"fmt"

	"github.com/courseroom/backend/internal/app/models"
	"github.com/courseroom/backend/internal/pkg/validation"
)

// InstructorAttributes is the validated, caller-facing form of an
// InstructorRecord. It is always a pure value copy of the stored row,
// never a live view into it.
type InstructorAttributes struct {
	GoogleID string `json:"googleId"`
	CourseID string `json:"courseId"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// NewInstructorAttributes builds a detached snapshot from a stored record
func NewInstructorAttributes(rec *models.InstructorRecord) *InstructorAttributes {
	return &InstructorAttributes{
		GoogleID: rec.GoogleID,
		CourseID: rec.CourseID,
		Email:    rec.Email,
		Name:     rec.Name,
	}
}

// ToRecord converts the attributes into a fresh record ready to persist.
// The surrogate ID is left zero; the store assigns it.
func (a *InstructorAttributes) ToRecord() *models.InstructorRecord {
	return &models.InstructorRecord{
		GoogleID: a.GoogleID,
		CourseID: a.CourseID,
		Email:    a.Email,
		Name:     a.Name,
	}
}

// InvalidityInfo lists the reasons the attributes are not internally
// consistent. An empty list means the object is valid.
func (a *InstructorAttributes) InvalidityInfo() []string {
	var reasons []string

	if !validation.IsValidGoogleID(a.GoogleID) {
		reasons = append(reasons, fmt.Sprintf("invalid google id: %q", a.GoogleID))
	}
	if !validation.IsValidCourseID(a.CourseID) {
		reasons = append(reasons, fmt.Sprintf("invalid course id: %q", a.CourseID))
	}
	if !validation.IsValidEmail(a.Email) {
		reasons = append(reasons, fmt.Sprintf("invalid email: %q", a.Email))
	}
	if !validation.IsValidName(a.Name) {
		reasons = append(reasons, fmt.Sprintf("invalid name: %q", a.Name))
	}

	return reasons
}

// IsValid reports whether the attributes are internally consistent
func (a *InstructorAttributes) IsValid() bool {
	return len(a.InvalidityInfo()) == 0
}

package dto

import (
	"github.com/courseroom/backend/internal/app/datatransfer"
)

// CreateInstructorRequest is the payload for registering an instructor role
type CreateInstructorRequest struct {
	GoogleID string `json:"googleId" binding:"required"`
	CourseID string `json:"courseId" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
}

// UpdateInstructorRequest is the payload for renaming an instructor role.
// GoogleID and CourseID identify the role; only name and email are mutable.
type UpdateInstructorRequest struct {
	GoogleID string `json:"googleId" binding:"required"`
	CourseID string `json:"courseId" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
}

// InstructorResponse is the API representation of an instructor role
type InstructorResponse struct {
	GoogleID string `json:"googleId"`
	CourseID string `json:"courseId"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// NewInstructorResponse converts a detached attributes snapshot to a response
func NewInstructorResponse(attrs *datatransfer.InstructorAttributes) *InstructorResponse {
	return &InstructorResponse{
		GoogleID: attrs.GoogleID,
		CourseID: attrs.CourseID,
		Email:    attrs.Email,
		Name:     attrs.Name,
	}
}

// NewInstructorResponseList converts a list of attribute snapshots
func NewInstructorResponseList(list []*datatransfer.InstructorAttributes) []*InstructorResponse {
	out := make([]*InstructorResponse, 0, len(list))
	for _, attrs := range list {
		out = append(out, NewInstructorResponse(attrs))
	}
	return out
}

// InstructorListResponse wraps a list of instructor roles
type InstructorListResponse struct {
	Instructors []*InstructorResponse `json:"instructors"`
	Count       int                   `json:"count"`
}

package models

// InstructorRecord defines the persisted form of one instructor role
// assignment, based on the 'instructors' table. (courseId, googleId) is the
// logical key for most lookups; its uniqueness is owned by the data access
// facade at create time, not by the schema.
type InstructorRecord struct {
	ID       int64  `json:"id" db:"id"`             // Surrogate key for the stored row
	GoogleID string `json:"googleId" db:"google_id"` // Opaque external identity string, immutable after creation
	CourseID string `json:"courseId" db:"course_id"` // Course this role belongs to, immutable after creation
	Email    string `json:"email" db:"email"`        // Contact address, unique within a course by convention
	Name     string `json:"name" db:"name"`          // Display name
}

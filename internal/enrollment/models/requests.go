package models

import (
	credmodels "haven/internal/credential/models"
	"haven/pkg/domain"
)

// CreateCourseRequest carries the inputs for course creation. The creating
// institution comes from the authentication context.
type CreateCourseRequest struct {
	Title          string
	Description    string
	Capacity       uint32
	PrereqType     *credmodels.CredentialType
	DurationBlocks uint64
}

// EnrollRequest carries the inputs for enrollment. CredentialID is required
// only when the course declares a prerequisite type.
type EnrollRequest struct {
	CourseID     domain.CourseID
	CredentialID *domain.CredentialID
}

package models

import (
	credmodels "haven/internal/credential/models"
	"haven/pkg/domain"
)

// EnrollmentStatus tracks the one-way Active -> Cancelled transition.
type EnrollmentStatus string

const (
	StatusActive    EnrollmentStatus = "active"
	StatusCancelled EnrollmentStatus = "cancelled"
)

// Course is a capacity-bounded offering created by a registered institution.
//
// Open flips one way via close-course. A full course (EnrolledCount ==
// Capacity) is effectively closed without any stored status bit; capacity is
// always compared at enrollment time. StartBlock is strictly the creation
// block +1 and the cancellation window closes when it is reached.
type Course struct {
	ID            domain.CourseID
	Institution   domain.Principal
	Title         string
	Description   string
	Capacity      uint32
	EnrolledCount uint32
	Open          bool
	PrereqType    *credmodels.CredentialType
	StartBlock    domain.BlockHeight
	EndBlock      domain.BlockHeight
}

// AcceptsEnrollments reports open AND not full.
func (c Course) AcceptsEnrollments() bool {
	return c.Open && c.EnrolledCount < c.Capacity
}

// Enrollment records a refugee's seat in a course. CredentialID is set only
// when the course declared a prerequisite and a credential was supplied.
type Enrollment struct {
	ID           domain.EnrollmentID
	Refugee      domain.Principal
	CourseID     domain.CourseID
	CredentialID *domain.CredentialID
	EnrolledAt   domain.BlockHeight
	Status       EnrollmentStatus
}

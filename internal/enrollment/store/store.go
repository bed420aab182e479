package store

import (
	"context"

	"haven/internal/enrollment/models"
	"haven/pkg/domain"
	dErrors "haven/pkg/domain-errors"
)

// Index ceilings for the enrollment store's bounded lists.
const (
	MaxEnrollmentsPerCourse  = 200
	MaxEnrollmentsPerRefugee = 50
)

// Sentinel errors shared by all implementations.
var (
	ErrCourseNotFound     = dErrors.New(dErrors.CodeNotFound, "course not found")
	ErrEnrollmentNotFound = dErrors.New(dErrors.CodeNotFound, "enrollment not found")
)

// Store persists courses, enrollments, and the two bounded indexes.
//
// Error Contract:
// - Find* return the matching sentinel when the id is unknown
// - InsertEnrollment returns CodeCapacityExceeded when either of the two
//   indexes is at its ceiling, without partially writing the other
// - Update* replace the stored record for an existing id
type Store interface {
	InsertCourse(ctx context.Context, c *models.Course) (domain.CourseID, error)
	FindCourse(ctx context.Context, id domain.CourseID) (*models.Course, error)
	UpdateCourse(ctx context.Context, c *models.Course) error

	InsertEnrollment(ctx context.Context, e *models.Enrollment) (domain.EnrollmentID, error)
	FindEnrollment(ctx context.Context, id domain.EnrollmentID) (*models.Enrollment, error)
	UpdateEnrollment(ctx context.Context, e *models.Enrollment) error
	ListByCourse(ctx context.Context, courseID domain.CourseID) ([]*models.Enrollment, error)
	ListByRefugee(ctx context.Context, refugee domain.Principal) ([]*models.Enrollment, error)
}

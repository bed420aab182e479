package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haven/internal/enrollment/models"
	"haven/pkg/domain"
	dErrors "haven/pkg/domain-errors"
)

func newTestCourse(institution domain.Principal) *models.Course {
	return &models.Course{
		Institution: institution,
		Title:       "Intro to Welding",
		Capacity:    5,
		Open:        true,
		StartBlock:  10,
		EndBlock:    100,
	}
}

func TestInMemoryStore_CourseIDsAreMonotonic(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	for want := uint64(0); want < 3; want++ {
		id, err := s.InsertCourse(ctx, newTestCourse("inst-a"))
		require.NoError(t, err)
		assert.Equal(t, domain.CourseID(want), id)
	}
}

func TestInMemoryStore_CoursesAndEnrollmentsShareOneSequence(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	courseID, err := s.InsertCourse(ctx, newTestCourse("inst-a"))
	require.NoError(t, err)
	assert.Equal(t, domain.CourseID(0), courseID)

	for want := uint64(1); want <= 3; want++ {
		id, err := s.InsertEnrollment(ctx, &models.Enrollment{
			Refugee:  domain.Principal(fmt.Sprintf("refugee-%d", want)),
			CourseID: courseID,
			Status:   models.StatusActive,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.EnrollmentID(want), id)
	}

	nextCourse, err := s.InsertCourse(ctx, newTestCourse("inst-a"))
	require.NoError(t, err)
	assert.Equal(t, domain.CourseID(4), nextCourse)
}

func TestInMemoryStore_FindCourse(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	id, err := s.InsertCourse(ctx, newTestCourse("inst-a"))
	require.NoError(t, err)

	got, err := s.FindCourse(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Intro to Welding", got.Title)

	_, err = s.FindCourse(ctx, domain.CourseID(99))
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestInMemoryStore_UpdateCourseDoesNotAliasCaller(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	id, err := s.InsertCourse(ctx, newTestCourse("inst-a"))
	require.NoError(t, err)

	c, err := s.FindCourse(ctx, id)
	require.NoError(t, err)
	c.EnrolledCount = 1
	require.NoError(t, s.UpdateCourse(ctx, c))

	// Mutating the caller's copy after the update must not leak into the store.
	c.EnrolledCount = 42
	got, err := s.FindCourse(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), got.EnrolledCount)
}

func TestInMemoryStore_RefugeeCeiling(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	// One course per enrollment so the course-side ceiling never interferes.
	for i := 0; i < MaxEnrollmentsPerRefugee; i++ {
		courseID, err := s.InsertCourse(ctx, newTestCourse("inst-a"))
		require.NoError(t, err)
		_, err = s.InsertEnrollment(ctx, &models.Enrollment{
			Refugee:  "refugee-1",
			CourseID: courseID,
			Status:   models.StatusActive,
		})
		require.NoError(t, err)
	}

	courseID, err := s.InsertCourse(ctx, newTestCourse("inst-a"))
	require.NoError(t, err)
	_, err = s.InsertEnrollment(ctx, &models.Enrollment{
		Refugee:  "refugee-1",
		CourseID: courseID,
		Status:   models.StatusActive,
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeCapacityExceeded))

	// The rejected insert must not consume an id or touch the course index.
	enrollments, err := s.ListByCourse(ctx, courseID)
	require.NoError(t, err)
	assert.Empty(t, enrollments)

	// 51 courses and 50 enrollments have been created, so the shared
	// sequence hands out 101 next.
	id, err := s.InsertEnrollment(ctx, &models.Enrollment{
		Refugee:  "refugee-2",
		CourseID: courseID,
		Status:   models.StatusActive,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.EnrollmentID(2*MaxEnrollmentsPerRefugee+1), id)
}

func TestInMemoryStore_ListByRefugeeIncludesCancelled(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	courseID, err := s.InsertCourse(ctx, newTestCourse("inst-a"))
	require.NoError(t, err)

	id, err := s.InsertEnrollment(ctx, &models.Enrollment{
		Refugee:  "refugee-1",
		CourseID: courseID,
		Status:   models.StatusActive,
	})
	require.NoError(t, err)

	e, err := s.FindEnrollment(ctx, id)
	require.NoError(t, err)
	e.Status = models.StatusCancelled
	require.NoError(t, s.UpdateEnrollment(ctx, e))

	list, err := s.ListByRefugee(ctx, "refugee-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.StatusCancelled, list[0].Status)
}

func TestInMemoryStore_FindEnrollmentUnknown(t *testing.T) {
	s := NewInMemoryStore()
	_, err := s.FindEnrollment(context.Background(), domain.EnrollmentID(7))
	assert.ErrorIs(t, err, ErrEnrollmentNotFound)
}

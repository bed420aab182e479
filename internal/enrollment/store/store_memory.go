package store

import (
	"context"
	"sync"

	"haven/internal/enrollment/models"
	"haven/pkg/domain"
	dErrors "haven/pkg/domain-errors"
	"haven/pkg/platform/boundedlist"
)

// InMemoryStore keeps the enrollment world state in memory: both primary
// record tables plus the bounded per-course and per-refugee indexes.
type InMemoryStore struct {
	mu sync.RWMutex

	// Courses and enrollments draw ids from one shared sequence.
	nextID uint64

	courses     map[domain.CourseID]*models.Course
	enrollments map[domain.EnrollmentID]*models.Enrollment
	byCourse    map[domain.CourseID]*boundedlist.List[domain.EnrollmentID]
	byRefugee   map[domain.Principal]*boundedlist.List[domain.EnrollmentID]
}

// NewInMemoryStore constructs an empty enrollment store. The id sequence
// starts at 0 and is shared between courses and enrollments.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		courses:     make(map[domain.CourseID]*models.Course),
		enrollments: make(map[domain.EnrollmentID]*models.Enrollment),
		byCourse:    make(map[domain.CourseID]*boundedlist.List[domain.EnrollmentID]),
		byRefugee:   make(map[domain.Principal]*boundedlist.List[domain.EnrollmentID]),
	}
}

// InsertCourse allocates the next course id and stores the record.
func (s *InMemoryStore) InsertCourse(_ context.Context, c *models.Course) (domain.CourseID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := domain.CourseID(s.nextID)
	copyCourse := *c
	copyCourse.ID = id
	s.courses[id] = &copyCourse
	s.nextID++

	return id, nil
}

// FindCourse retrieves a course by id or returns ErrCourseNotFound.
func (s *InMemoryStore) FindCourse(_ context.Context, id domain.CourseID) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.courses[id]
	if !ok {
		return nil, ErrCourseNotFound
	}
	copyCourse := *c
	return &copyCourse, nil
}

// UpdateCourse replaces the stored course record.
func (s *InMemoryStore) UpdateCourse(_ context.Context, c *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[c.ID]; !ok {
		return ErrCourseNotFound
	}
	copyCourse := *c
	s.courses[c.ID] = &copyCourse
	return nil
}

// InsertEnrollment allocates the next enrollment id and appends it to both
// bounded indexes. Both ceilings are checked before either index is touched
// so a capacity failure leaves no partial write.
func (s *InMemoryStore) InsertEnrollment(_ context.Context, e *models.Enrollment) (domain.EnrollmentID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	courseIndex := s.byCourse[e.CourseID]
	if courseIndex.Full() {
		return 0, dErrors.New(dErrors.CodeCapacityExceeded, "course enrollment index full")
	}
	refugeeIndex := s.byRefugee[e.Refugee]
	if refugeeIndex.Full() {
		return 0, dErrors.New(dErrors.CodeCapacityExceeded, "refugee enrollment index full")
	}
	if courseIndex == nil {
		courseIndex = boundedlist.New[domain.EnrollmentID](MaxEnrollmentsPerCourse)
		s.byCourse[e.CourseID] = courseIndex
	}
	if refugeeIndex == nil {
		refugeeIndex = boundedlist.New[domain.EnrollmentID](MaxEnrollmentsPerRefugee)
		s.byRefugee[e.Refugee] = refugeeIndex
	}

	id := domain.EnrollmentID(s.nextID)
	copyEnrollment := *e
	copyEnrollment.ID = id

	s.enrollments[id] = &copyEnrollment
	if err := courseIndex.Append(id); err != nil {
		delete(s.enrollments, id)
		return 0, err
	}
	if err := refugeeIndex.Append(id); err != nil {
		// Unreachable after the Full checks above; kept as a hard invariant.
		delete(s.enrollments, id)
		return 0, err
	}
	s.nextID++

	return id, nil
}

// FindEnrollment retrieves an enrollment by id or returns ErrEnrollmentNotFound.
func (s *InMemoryStore) FindEnrollment(_ context.Context, id domain.EnrollmentID) (*models.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.enrollments[id]
	if !ok {
		return nil, ErrEnrollmentNotFound
	}
	copyEnrollment := *e
	return &copyEnrollment, nil
}

// UpdateEnrollment replaces the stored enrollment record.
func (s *InMemoryStore) UpdateEnrollment(_ context.Context, e *models.Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.enrollments[e.ID]; !ok {
		return ErrEnrollmentNotFound
	}
	copyEnrollment := *e
	s.enrollments[e.ID] = &copyEnrollment
	return nil
}

// ListByCourse returns the course's enrollments in enrollment order.
func (s *InMemoryStore) ListByCourse(_ context.Context, courseID domain.CourseID) ([]*models.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(s.byCourse[courseID].Items()), nil
}

// ListByRefugee returns the refugee's enrollments in enrollment order,
// cancelled ones included.
func (s *InMemoryStore) ListByRefugee(_ context.Context, refugee domain.Principal) ([]*models.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(s.byRefugee[refugee].Items()), nil
}

func (s *InMemoryStore) collect(ids []domain.EnrollmentID) []*models.Enrollment {
	out := make([]*models.Enrollment, 0, len(ids))
	for _, id := range ids {
		if e, ok := s.enrollments[id]; ok {
			copyEnrollment := *e
			out = append(out, &copyEnrollment)
		}
	}
	return out
}

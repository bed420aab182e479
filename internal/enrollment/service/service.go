package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	credmodels "haven/internal/credential/models"
	"haven/internal/enrollment/metrics"
	"haven/internal/enrollment/models"
	"haven/internal/enrollment/store"
	"haven/pkg/blockclock"
	"haven/pkg/domain"
	dErrors "haven/pkg/domain-errors"
	"haven/pkg/platform/serial"
)

// Option configures the enrollment service.
type Option func(*Service)

// Service owns course lifecycle and enrollment. It reaches the credential
// store through CredentialPort for prerequisite checks and the institution
// allow-list through InstitutionPort for course creation. Every mutating
// operation runs inside one serial gate acquisition so checks and writes
// are never interleaved with another transaction.
type Service struct {
	store   store.Store
	clock   blockclock.Source
	gate    *serial.Gate
	metrics *metrics.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer

	mu           sync.RWMutex
	admin        domain.Principal
	credentials  CredentialPort
	institutions InstitutionPort
}

// NewService creates an enrollment service. The admin principal is fixed at
// construction; the credential endpoint may be swapped later via
// SetCredentialPort.
func NewService(st store.Store, credentials CredentialPort, institutions InstitutionPort, clock blockclock.Source, gate *serial.Gate, admin domain.Principal, opts ...Option) *Service {
	svc := &Service{
		store:        st,
		credentials:  credentials,
		institutions: institutions,
		clock:        clock,
		gate:         gate,
		admin:        admin,
		tracer:       otel.Tracer("haven/enrollment"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// WithMetrics configures Prometheus collectors for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger configures a logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// Admin returns the principal allowed to reconfigure endpoint references.
func (s *Service) Admin() domain.Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admin
}

// SetCredentialPort swaps the credential store reference. Restricted to the
// admin principal.
func (s *Service) SetCredentialPort(ctx context.Context, caller domain.Principal, credentials CredentialPort) error {
	return s.gate.Do(ctx, func() error {
		if caller != s.Admin() {
			return dErrors.New(dErrors.CodeUnauthorized, "only the admin can set the credential endpoint")
		}
		if credentials == nil {
			return dErrors.New(dErrors.CodeInvalidInput, "credential endpoint required")
		}
		s.mu.Lock()
		s.credentials = credentials
		s.mu.Unlock()
		return nil
	})
}

func (s *Service) credentialPort() CredentialPort {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credentials
}

// CreateCourse opens a new course for the calling institution. The course
// starts accepting enrollments immediately; its start block is the block
// after creation and its end block follows from the requested duration.
func (s *Service) CreateCourse(ctx context.Context, caller domain.Principal, req models.CreateCourseRequest) (domain.CourseID, error) {
	ctx, span := s.tracer.Start(ctx, "enrollment.create_course")
	defer span.End()

	var id domain.CourseID
	err := s.gate.Do(ctx, func() error {
		if s.institutions == nil {
			return dErrors.New(dErrors.CodeInternal, "institution endpoint not configured")
		}
		registered, err := s.institutions.IsRegisteredInstitution(ctx, caller)
		if err != nil {
			return err
		}
		if !registered {
			return dErrors.New(dErrors.CodeUnauthorized, "caller is not a registered institution")
		}
		if req.Title == "" {
			return dErrors.New(dErrors.CodeInvalidInput, "title required")
		}
		if req.Capacity == 0 {
			return dErrors.New(dErrors.CodeInvalidInput, "capacity must be positive")
		}
		if req.DurationBlocks == 0 {
			return dErrors.New(dErrors.CodeInvalidInput, "duration must be positive")
		}
		if req.PrereqType != nil && !req.PrereqType.IsValid() {
			return dErrors.New(dErrors.CodeInvalidInput, "unknown prerequisite credential type")
		}

		height := blockclock.At(ctx, s.clock)
		course := models.Course{
			Institution: caller,
			Title:       req.Title,
			Description: req.Description,
			Capacity:    req.Capacity,
			Open:        true,
			PrereqType:  req.PrereqType,
			StartBlock:  height + 1,
			EndBlock:    height + domain.BlockHeight(req.DurationBlocks),
		}

		id, err = s.store.InsertCourse(ctx, &course)
		return err
	})
	if err != nil {
		return 0, err
	}

	if s.metrics != nil {
		s.metrics.IncrementCoursesCreated()
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "course created", "course_id", id, "institution", caller)
	}
	return id, nil
}

// Enroll seats the calling refugee in a course. Checks run in a fixed
// order - course exists, course open, seats left, not already enrolled,
// prerequisite satisfied, index ceilings - and the operation aborts with no
// state change on the first failure. A refugee who once enrolled in a course
// can never enroll in it again, cancelled or not.
func (s *Service) Enroll(ctx context.Context, caller domain.Principal, req models.EnrollRequest) (domain.EnrollmentID, error) {
	ctx, span := s.tracer.Start(ctx, "enrollment.enroll")
	defer span.End()

	start := time.Now()
	var id domain.EnrollmentID
	err := s.gate.Do(ctx, func() error {
		course, err := s.store.FindCourse(ctx, req.CourseID)
		if err != nil {
			return err
		}
		if !course.Open {
			return dErrors.New(dErrors.CodeInvalidState, "course is closed")
		}
		if course.EnrolledCount >= course.Capacity {
			return dErrors.New(dErrors.CodeCapacityExceeded, "course is full")
		}

		existing, err := s.store.ListByRefugee(ctx, caller)
		if err != nil {
			return err
		}
		for _, e := range existing {
			if e.CourseID == req.CourseID {
				return dErrors.New(dErrors.CodeAlreadyExists, "refugee already enrolled in this course")
			}
		}

		var credentialID *domain.CredentialID
		if course.PrereqType != nil {
			credentialID, err = s.checkPrerequisite(ctx, caller, *course.PrereqType, req.CredentialID)
			if err != nil {
				return err
			}
		}

		height := blockclock.At(ctx, s.clock)
		id, err = s.store.InsertEnrollment(ctx, &models.Enrollment{
			Refugee:      caller,
			CourseID:     req.CourseID,
			CredentialID: credentialID,
			EnrolledAt:   height,
			Status:       models.StatusActive,
		})
		if err != nil {
			return err
		}

		course.EnrolledCount++
		return s.store.UpdateCourse(ctx, course)
	})
	if err != nil {
		s.recordRejection(err)
		return 0, err
	}

	if s.metrics != nil {
		s.metrics.IncrementEnrollments()
		s.metrics.ObserveEnrollLatency(time.Since(start).Seconds())
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "refugee enrolled",
			"enrollment_id", id,
			"course_id", req.CourseID,
			"refugee", caller,
		)
	}
	return id, nil
}

// checkPrerequisite verifies the supplied credential against the course's
// declared type and returns the id to record on the enrollment.
func (s *Service) checkPrerequisite(ctx context.Context, refugee domain.Principal, want credmodels.CredentialType, credentialID *domain.CredentialID) (*domain.CredentialID, error) {
	if credentialID == nil {
		return nil, dErrors.New(dErrors.CodePrereqNotMet, "course requires a prerequisite credential")
	}
	credentials := s.credentialPort()
	if credentials == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "credential endpoint not configured")
	}

	ok, err := credentials.Verify(ctx, *credentialID, refugee)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.New(dErrors.CodePrereqNotMet, "prerequisite credential not found")
		}
		return nil, err
	}
	if !ok {
		return nil, dErrors.New(dErrors.CodePrereqNotMet, "prerequisite credential is invalid or not owned by the refugee")
	}

	rec, err := credentials.Get(ctx, *credentialID)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.Type != want {
		return nil, dErrors.New(dErrors.CodePrereqNotMet, "prerequisite credential has the wrong type")
	}
	return credentialID, nil
}

// Cancel withdraws an active enrollment before the course starts. The
// enrollee or the course's institution may cancel; the seat is returned to
// the course.
func (s *Service) Cancel(ctx context.Context, caller domain.Principal, id domain.EnrollmentID) error {
	ctx, span := s.tracer.Start(ctx, "enrollment.cancel")
	defer span.End()

	err := s.gate.Do(ctx, func() error {
		enrollment, err := s.store.FindEnrollment(ctx, id)
		if err != nil {
			return err
		}
		course, err := s.store.FindCourse(ctx, enrollment.CourseID)
		if err != nil {
			return err
		}
		if caller != enrollment.Refugee && caller != course.Institution {
			return dErrors.New(dErrors.CodeUnauthorized, "only the enrollee or the course institution can cancel")
		}
		if enrollment.Status == models.StatusCancelled {
			return dErrors.New(dErrors.CodeInvalidState, "enrollment already cancelled")
		}
		if blockclock.At(ctx, s.clock) >= course.StartBlock {
			return dErrors.New(dErrors.CodeInvalidState, "course has already started")
		}

		enrollment.Status = models.StatusCancelled
		if err := s.store.UpdateEnrollment(ctx, enrollment); err != nil {
			return err
		}
		course.EnrolledCount--
		return s.store.UpdateCourse(ctx, course)
	})
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.IncrementCancellations()
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "enrollment cancelled", "enrollment_id", id, "caller", caller)
	}
	return nil
}

// CloseCourse flips the course's one-way open flag. Only the owning
// institution may close; closing twice is an invalid-state error.
func (s *Service) CloseCourse(ctx context.Context, caller domain.Principal, id domain.CourseID) error {
	ctx, span := s.tracer.Start(ctx, "enrollment.close_course")
	defer span.End()

	err := s.gate.Do(ctx, func() error {
		course, err := s.store.FindCourse(ctx, id)
		if err != nil {
			return err
		}
		if caller != course.Institution {
			return dErrors.New(dErrors.CodeUnauthorized, "only the owning institution can close a course")
		}
		if !course.Open {
			return dErrors.New(dErrors.CodeInvalidState, "course already closed")
		}
		course.Open = false
		return s.store.UpdateCourse(ctx, course)
	})
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.IncrementCoursesClosed()
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "course closed", "course_id", id, "institution", caller)
	}
	return nil
}

// GetCourse returns the course record, or nil without error when the id is
// unknown.
func (s *Service) GetCourse(ctx context.Context, id domain.CourseID) (*models.Course, error) {
	course, err := s.store.FindCourse(ctx, id)
	if errors.Is(err, store.ErrCourseNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return course, nil
}

// GetEnrollment returns the enrollment record, or nil without error when the
// id is unknown.
func (s *Service) GetEnrollment(ctx context.Context, id domain.EnrollmentID) (*models.Enrollment, error) {
	enrollment, err := s.store.FindEnrollment(ctx, id)
	if errors.Is(err, store.ErrEnrollmentNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

// ListByCourse returns a course's enrollments in enrollment order.
func (s *Service) ListByCourse(ctx context.Context, id domain.CourseID) ([]*models.Enrollment, error) {
	return s.store.ListByCourse(ctx, id)
}

// ListByRefugee returns a refugee's enrollments in enrollment order,
// cancelled ones included.
func (s *Service) ListByRefugee(ctx context.Context, refugee domain.Principal) ([]*models.Enrollment, error) {
	return s.store.ListByRefugee(ctx, refugee)
}

// IsCourseOpen reports whether the course currently accepts enrollments:
// open AND seats left. Unknown ids answer false, never an error.
func (s *Service) IsCourseOpen(ctx context.Context, id domain.CourseID) (bool, error) {
	course, err := s.store.FindCourse(ctx, id)
	if errors.Is(err, store.ErrCourseNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return course.AcceptsEnrollments(), nil
}

func (s *Service) recordRejection(err error) {
	if s.metrics == nil {
		return
	}
	var dErr *dErrors.Error
	if errors.As(err, &dErr) {
		s.metrics.IncrementRejected(string(dErr.Code))
	}
}

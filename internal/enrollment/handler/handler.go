package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	credmodels "haven/internal/credential/models"
	"haven/internal/enrollment/models"
	"haven/internal/platform/middleware"
	"haven/internal/transport/http/shared"
	respond "haven/internal/transport/http/shared/json"
	"haven/pkg/domain"
	dErrors "haven/pkg/domain-errors"
)

// Service defines the interface for course and enrollment operations.
type Service interface {
	CreateCourse(ctx context.Context, caller domain.Principal, req models.CreateCourseRequest) (domain.CourseID, error)
	CloseCourse(ctx context.Context, caller domain.Principal, id domain.CourseID) error
	GetCourse(ctx context.Context, id domain.CourseID) (*models.Course, error)
	IsCourseOpen(ctx context.Context, id domain.CourseID) (bool, error)
	Enroll(ctx context.Context, caller domain.Principal, req models.EnrollRequest) (domain.EnrollmentID, error)
	Cancel(ctx context.Context, caller domain.Principal, id domain.EnrollmentID) error
	GetEnrollment(ctx context.Context, id domain.EnrollmentID) (*models.Enrollment, error)
	ListByCourse(ctx context.Context, id domain.CourseID) ([]*models.Enrollment, error)
	ListByRefugee(ctx context.Context, refugee domain.Principal) ([]*models.Enrollment, error)
}

// Handler handles course and enrollment endpoints.
type Handler struct {
	logger      *slog.Logger
	enrollments Service
}

// New creates a new enrollment Handler.
func New(enrollments Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:      logger,
		enrollments: enrollments,
	}
}

// Register registers the course and enrollment routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/courses", h.handleCreateCourse)
	r.Get("/courses/{id}", h.handleGetCourse)
	r.Get("/courses/{id}/open", h.handleIsCourseOpen)
	r.Post("/courses/{id}/close", h.handleCloseCourse)
	r.Post("/courses/{id}/enroll", h.handleEnroll)
	r.Get("/courses/{id}/enrollments", h.handleListByCourse)
	r.Get("/enrollments", h.handleListByRefugee)
	r.Get("/enrollments/{id}", h.handleGetEnrollment)
	r.Post("/enrollments/{id}/cancel", h.handleCancel)
}

func (h *Handler) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middleware.GetPrincipal(ctx)

	var body CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.WarnContext(ctx, "failed to decode create course request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	req := models.CreateCourseRequest{
		Title:          body.Title,
		Description:    body.Description,
		Capacity:       body.Capacity,
		DurationBlocks: body.DurationBlocks,
	}
	if body.PrereqType != nil {
		t := credmodels.CredentialType(*body.PrereqType)
		req.PrereqType = &t
	}

	id, err := h.enrollments.CreateCourse(ctx, caller, req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusCreated, CreateCourseResponse{ID: id.String()})
}

func (h *Handler) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseCourseID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	course, err := h.enrollments.GetCourse(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if course == nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "course not found"))
		return
	}

	respond.WriteJSON(w, http.StatusOK, toCourseResponse(course))
}

func (h *Handler) handleIsCourseOpen(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseCourseID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	open, err := h.enrollments.IsCourseOpen(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, CourseOpenResponse{Open: open})
}

func (h *Handler) handleCloseCourse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middleware.GetPrincipal(ctx)

	id, err := domain.ParseCourseID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := h.enrollments.CloseCourse(ctx, caller, id); err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}

func (h *Handler) handleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middleware.GetPrincipal(ctx)

	courseID, err := domain.ParseCourseID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	// The body is optional: courses without prerequisites need no payload.
	var body EnrollRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
			return
		}
	}

	req := models.EnrollRequest{CourseID: courseID}
	if body.CredentialID != nil {
		credentialID, err := domain.ParseCredentialID(*body.CredentialID)
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		req.CredentialID = &credentialID
	}

	id, err := h.enrollments.Enroll(ctx, caller, req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusCreated, EnrollResponse{ID: id.String()})
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	caller := middleware.GetPrincipal(ctx)

	id, err := domain.ParseEnrollmentID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	if err := h.enrollments.Cancel(ctx, caller, id); err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

func (h *Handler) handleGetEnrollment(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseEnrollmentID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	enrollment, err := h.enrollments.GetEnrollment(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if enrollment == nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "enrollment not found"))
		return
	}

	respond.WriteJSON(w, http.StatusOK, toEnrollmentResponse(enrollment))
}

func (h *Handler) handleListByCourse(w http.ResponseWriter, r *http.Request) {
	id, err := domain.ParseCourseID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	enrollments, err := h.enrollments.ListByCourse(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, ListEnrollmentsResponse{Enrollments: toEnrollmentResponses(enrollments)})
}

func (h *Handler) handleListByRefugee(w http.ResponseWriter, r *http.Request) {
	refugee, err := domain.ParsePrincipal(r.URL.Query().Get("refugee"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "refugee query parameter required"))
		return
	}

	enrollments, err := h.enrollments.ListByRefugee(r.Context(), refugee)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, ListEnrollmentsResponse{Enrollments: toEnrollmentResponses(enrollments)})
}

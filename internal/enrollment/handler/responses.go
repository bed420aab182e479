package handler

import (
	"haven/internal/enrollment/models"
)

// CourseResponse is the JSON shape of a course record.
type CourseResponse struct {
	ID            string  `json:"id"`
	Institution   string  `json:"institution"`
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	Capacity      uint32  `json:"capacity"`
	EnrolledCount uint32  `json:"enrolled_count"`
	Open          bool    `json:"open"`
	PrereqType    *string `json:"prereq_type,omitempty"`
	StartBlock    uint64  `json:"start_block"`
	EndBlock      uint64  `json:"end_block"`
}

// EnrollmentResponse is the JSON shape of an enrollment record.
type EnrollmentResponse struct {
	ID           string  `json:"id"`
	Refugee      string  `json:"refugee"`
	CourseID     string  `json:"course_id"`
	CredentialID *string `json:"credential_id,omitempty"`
	EnrolledAt   uint64  `json:"enrolled_at"`
	Status       string  `json:"status"`
}

// CreateCourseResponse is the JSON body returned by POST /courses.
type CreateCourseResponse struct {
	ID string `json:"id"`
}

// EnrollResponse is the JSON body returned by POST /courses/{id}/enroll.
type EnrollResponse struct {
	ID string `json:"id"`
}

// CourseOpenResponse is the JSON body returned by GET /courses/{id}/open.
type CourseOpenResponse struct {
	Open bool `json:"open"`
}

// ListEnrollmentsResponse wraps enrollments in enrollment order.
type ListEnrollmentsResponse struct {
	Enrollments []EnrollmentResponse `json:"enrollments"`
}

func toCourseResponse(c *models.Course) CourseResponse {
	resp := CourseResponse{
		ID:            c.ID.String(),
		Institution:   c.Institution.String(),
		Title:         c.Title,
		Description:   c.Description,
		Capacity:      c.Capacity,
		EnrolledCount: c.EnrolledCount,
		Open:          c.Open,
		StartBlock:    uint64(c.StartBlock),
		EndBlock:      uint64(c.EndBlock),
	}
	if c.PrereqType != nil {
		t := string(*c.PrereqType)
		resp.PrereqType = &t
	}
	return resp
}

func toEnrollmentResponse(e *models.Enrollment) EnrollmentResponse {
	resp := EnrollmentResponse{
		ID:         e.ID.String(),
		Refugee:    e.Refugee.String(),
		CourseID:   e.CourseID.String(),
		EnrolledAt: uint64(e.EnrolledAt),
		Status:     string(e.Status),
	}
	if e.CredentialID != nil {
		id := e.CredentialID.String()
		resp.CredentialID = &id
	}
	return resp
}

func toEnrollmentResponses(enrollments []*models.Enrollment) []EnrollmentResponse {
	out := make([]EnrollmentResponse, 0, len(enrollments))
	for _, e := range enrollments {
		out = append(out, toEnrollmentResponse(e))
	}
	return out
}

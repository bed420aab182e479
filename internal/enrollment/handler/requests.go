package handler

// CreateCourseRequest is the JSON body for POST /courses. The creating
// institution comes from the authentication context, never from the body.
type CreateCourseRequest struct {
	Title          string  `json:"title"`
	Description    string  `json:"description,omitempty"`
	Capacity       uint32  `json:"capacity"`
	PrereqType     *string `json:"prereq_type,omitempty"`
	DurationBlocks uint64  `json:"duration_blocks"`
}

// EnrollRequest is the JSON body for POST /courses/{id}/enroll. The enrolling
// refugee comes from the authentication context.
type EnrollRequest struct {
	CredentialID *string `json:"credential_id,omitempty"`
}

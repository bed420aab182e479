package seeder

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/blake2b"

	credmodels "haven/internal/credential/models"
	credservice "haven/internal/credential/service"
	enrollmodels "haven/internal/enrollment/models"
	enrollservice "haven/internal/enrollment/service"
	proofmodels "haven/internal/proof/models"
	proofservice "haven/internal/proof/service"
	"haven/pkg/domain"
)

// Demo principals created by the seeder.
const (
	DemoVerifier    = domain.Principal("unhcr-field-office")
	DemoInstitution = domain.Principal("haven-institute")
	DemoRefugee     = domain.Principal("refugee-demo")
)

// Seeder populates the in-memory stores with demo data.
type Seeder struct {
	proofs      *proofservice.Service
	credentials *credservice.Service
	enrollments *enrollservice.Service
	logger      *slog.Logger
}

// New creates a new seeder.
func New(proofs *proofservice.Service, credentials *credservice.Service, enrollments *enrollservice.Service, logger *slog.Logger) *Seeder {
	return &Seeder{
		proofs:      proofs,
		credentials: credentials,
		enrollments: enrollments,
		logger:      logger,
	}
}

// SeedAll walks a full demo lifecycle: verifier and institution registration,
// one proof, one credential backed by it, and one open course with the demo
// refugee enrolled.
func (s *Seeder) SeedAll(ctx context.Context) error {
	s.logger.Info("seeding demo data...")

	if err := s.proofs.RegisterVerifier(ctx, s.proofs.Admin(), DemoVerifier); err != nil {
		return fmt.Errorf("failed to seed verifier: %w", err)
	}
	if err := s.credentials.RegisterInstitution(ctx, s.credentials.RegistryPrincipal(), DemoInstitution); err != nil {
		return fmt.Errorf("failed to seed institution: %w", err)
	}

	proofID, err := s.proofs.Issue(ctx, DemoVerifier, proofmodels.IssueRequest{
		Owner: DemoRefugee,
		Hash:  demoHash("attestation:secondary-education:" + DemoRefugee.String()),
		Type:  proofmodels.ProofTypeEducation,
	})
	if err != nil {
		return fmt.Errorf("failed to seed proof: %w", err)
	}

	credentialID, err := s.credentials.Issue(ctx, DemoInstitution, credmodels.IssueRequest{
		Refugee:      DemoRefugee,
		ProofID:      proofID,
		Type:         credmodels.CredentialTypeEducation,
		MetadataHash: demoHash("credential-metadata:secondary-school-diploma"),
		Title:        "Secondary School Diploma",
		Description:  "Completed upper secondary education",
	})
	if err != nil {
		return fmt.Errorf("failed to seed credential: %w", err)
	}

	prereq := credmodels.CredentialTypeEducation
	courseID, err := s.enrollments.CreateCourse(ctx, DemoInstitution, enrollmodels.CreateCourseRequest{
		Title:          "Vocational Carpentry",
		Description:    "Twelve-week carpentry program",
		Capacity:       25,
		PrereqType:     &prereq,
		DurationBlocks: 100_000,
	})
	if err != nil {
		return fmt.Errorf("failed to seed course: %w", err)
	}

	enrollmentID, err := s.enrollments.Enroll(ctx, DemoRefugee, enrollmodels.EnrollRequest{
		CourseID:     courseID,
		CredentialID: &credentialID,
	})
	if err != nil {
		return fmt.Errorf("failed to seed enrollment: %w", err)
	}

	s.logger.Info("demo data seeded",
		"proof_id", proofID,
		"credential_id", credentialID,
		"course_id", courseID,
		"enrollment_id", enrollmentID,
	)
	return nil
}

// demoHash derives a deterministic content hash for seed records.
func demoHash(input string) domain.Hash {
	return domain.Hash(blake2b.Sum256([]byte(input)))
}

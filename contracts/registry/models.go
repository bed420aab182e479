package registry

// ContractVersion identifies the schema for principal-registry responses
// shared between the gateway and the external vetting registry.
const ContractVersion = "v0.1.0"

// Role names the capability a principal is vetted for.
type Role string

const (
	RoleVerifier    Role = "verifier"
	RoleInstitution Role = "institution"
)

// StatusResponse is the registry's answer to a vetting lookup.
type StatusResponse struct {
	Principal  string `json:"principal"`
	Role       Role   `json:"role"`
	Registered bool   `json:"registered"`
}

// Package registry talks to the external principal-vetting registry. The
// core stores never implement vetting; they only ask "is this principal a
// registered verifier/institution?" before admitting it to an allow-list.
package registry

import (
	"context"

	"haven/pkg/domain"
)

// Client answers the two capability checks the core consumes.
type Client interface {
	IsRegisteredVerifier(ctx context.Context, p domain.Principal) (bool, error)
	IsRegisteredInstitution(ctx context.Context, p domain.Principal) (bool, error)
}

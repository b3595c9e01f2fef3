package analyzer

import (
	"errors"
	"fmt"

	"github.com/aeo-snapshot/aeo-cli/internal/model"
)

// CredentialError reports a provider whose API credential is not
// configured. It is raised before any network call is attempted, so
// callers can distinguish configuration problems from transport
// failures.
type CredentialError struct {
	Provider model.Provider
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("%s: api key is not set", e.Provider)
}

// IsCredentialError reports whether the error chain contains a
// CredentialError.
func IsCredentialError(err error) bool {
	var ce *CredentialError
	return errors.As(err, &ce)
}

package registry

import (
	"os"

	"github.com/doeshing/vox-go/internal/domain"
)

// credentialPresent checks whether the backend's credential env value is
// non-empty. Backends declaring no env var are treated as satisfiable.
func credentialPresent(def domain.BackendDefinition) bool {
	if def.AuthEnvVar == "" {
		return true
	}
	return os.Getenv(def.AuthEnvVar) != ""
}

package instance

import (
	"os"

	"github.com/exclusivefashions/storefront/pkg/env"
)

// GetID returns the process instance identifier used in startup logs: the
// configured id, the platform dyno name, then the hostname.
func GetID() string {
	if id := env.Get("STOREFRONT_INSTANCE_ID", env.Get("DYNO", "")); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}

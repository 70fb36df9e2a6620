package constants

import (
	"os"
	"strings"
)

// DefaultPluginImageRepository is the plugin image used when nothing else is configured.
const DefaultPluginImageRepository = "openshift.io/ocp-secrets-management:latest"

// DefaultPluginImage returns the plugin image used when a config does not set spec.plugin.image.
// PLUGIN_IMAGE overrides the built-in default.
func DefaultPluginImage() string {
	if image := strings.TrimSpace(os.Getenv(EnvPluginImage)); image != "" {
		return image
	}
	return DefaultPluginImageRepository
}

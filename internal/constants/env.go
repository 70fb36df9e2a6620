package constants

// EnvPluginImage overrides the built-in default plugin image.
const EnvPluginImage = "PLUGIN_IMAGE"

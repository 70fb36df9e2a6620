package constants

// Mount paths inside the plugin container.
const (
	PathPluginCert = "/var/cert"
	PathNginxConf  = "/etc/nginx/nginx.conf"
)

// DefaultVolumeMode is the file mode of projected Secret and ConfigMap volumes (0644).
const DefaultVolumeMode = int32(420)

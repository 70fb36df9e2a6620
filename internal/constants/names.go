package constants

// Fixed names of the plugin workload.
const (
	PluginNamespace = "openshift-secrets-management"
	PluginName      = "ocp-secrets-management"

	// PluginResourceName names the ServiceAccount, Service and Deployment.
	PluginResourceName = PluginName + SuffixPlugin
	// NginxConfigMapName names the ConfigMap holding the proxy configuration.
	NginxConfigMapName = PluginName + SuffixNginxConf
	// PluginCertSecretName is the serving certificate Secret issued for the Service.
	PluginCertSecretName = PluginName + SuffixPluginCert

	ConsolePluginDisplayName = "OCP Secrets Management"
	ConsolePluginBasePath    = "/"
)

// Resource name suffixes used for the plugin workload.
const (
	SuffixPlugin     = "-plugin"
	SuffixNginxConf  = "-nginx-conf"
	SuffixPluginCert = "-plugin-cert"
)

// Suffixes of the default ClusterRoles, appended to spec.rbac.rolePrefix.
const (
	SuffixRoleView   = "-view"
	SuffixRoleDelete = "-delete"
	SuffixRoleAdmin  = "-admin"
)

// Plugin container, port and volume names.
const (
	ContainerNamePlugin = "plugin"
	PortNameHTTPS       = "https"
	PortPlugin          = 9443

	VolumePluginCert = "plugin-cert"
	VolumeNginxConf  = "nginx-conf"

	NginxConfigKey = "nginx.conf"
)

// Controller names used for metrics and the controller-runtime builder.
const (
	ControllerNameSecretsManagementConfig = "secretsmanagementconfig"
)

package constants

import "k8s.io/apimachinery/pkg/runtime/schema"

// ConsolePluginGVK is the OpenShift console registration kind. It is handled
// as unstructured so the operator does not depend on the OpenShift API types.
var ConsolePluginGVK = schema.GroupVersionKind{
	Group:   "console.openshift.io",
	Version: "v1",
	Kind:    "ConsolePlugin",
}

// CustomResourceDefinition names of the peer operators the console integrates with.
const (
	CRDCertManagerCertificates           = "certificates.cert-manager.io"
	CRDExternalSecrets                   = "externalsecrets.external-secrets.io"
	CRDSecretsStoreSecretProviderClasses = "secretproviderclasses.secrets-store.csi.x-k8s.io"
)

// API groups of the peer operators.
const (
	APIGroupCertManager     = "cert-manager.io"
	APIGroupExternalSecrets = "external-secrets.io"
	APIGroupSecretsStoreCSI = "secrets-store.csi.x-k8s.io"
)

package constants

const (
	// AnnotationServingCertSecretName asks the service CA operator to issue a
	// serving certificate for the Service into the named Secret.
	AnnotationServingCertSecretName = "service.alpha.openshift.io/serving-cert-secret-name"

	// AnnotationConfigHash records the hash of the proxy configuration on the pod template.
	AnnotationConfigHash = "secrets-management.openshift.io/config-hash"
)

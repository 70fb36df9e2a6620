package constants

// Common Kubernetes label keys used by the operator.
const (
	LabelAppName      = "app.kubernetes.io/name"
	LabelAppPartOf    = "app.kubernetes.io/part-of"
	LabelAppManagedBy = "app.kubernetes.io/managed-by"
)

// Common label values used by the operator.
const (
	LabelValueAppPartOf    = "ocp-secrets-management"
	LabelValueAppManagedBy = "secrets-management-operator"
)

// PluginLabels returns the labels stamped on every resource the operator owns.
func PluginLabels() map[string]string {
	return map[string]string{
		LabelAppName:      PluginName,
		LabelAppPartOf:    LabelValueAppPartOf,
		LabelAppManagedBy: LabelValueAppManagedBy,
	}
}

// PluginSelectorLabels returns the labels used to select plugin pods.
func PluginSelectorLabels() map[string]string {
	return map[string]string{
		LabelAppName: PluginName,
	}
}

// PluginPodLabels returns the labels on the plugin pod template.
func PluginPodLabels() map[string]string {
	return map[string]string{
		LabelAppName:   PluginName,
		LabelAppPartOf: LabelValueAppPartOf,
	}
}

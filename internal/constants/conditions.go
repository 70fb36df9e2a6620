package constants

// Condition reasons used on SecretsManagementConfig conditions.
const (
	ReasonRolesCreated         = "RolesCreated"
	ReasonDeploymentReady      = "DeploymentReady"
	ReasonConsolePluginCreated = "ConsolePluginCreated"

	// ReasonReconcileFailed marks the condition of the stage that failed.
	ReasonReconcileFailed = "ReconcileFailed"
)

// Event reasons recorded on the SecretsManagementConfig.
const (
	EventReasonReady           = "Ready"
	EventReasonReconcileFailed = "ReconcileFailed"
	EventReasonCleanupFailed   = "CleanupFailed"
	EventReasonFinalized       = "Finalized"
)

/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// SecretsManagementConfigFinalizer gates deletion of a SecretsManagementConfig
	// until the plugin workload, console registration and default roles are cleaned up.
	SecretsManagementConfigFinalizer = "secrets-management.openshift.io/finalizer"

	// DefaultRolePrefix is used for the default ClusterRoles when spec.rbac.rolePrefix is empty.
	DefaultRolePrefix = "secrets-management"

	// DefaultPluginReplicas is used when spec.plugin.replicas is unset.
	DefaultPluginReplicas int32 = 2
)

// FeatureConfig toggles a console feature. It is read by the console plugin only.
type FeatureConfig struct {
	// Enabled turns the feature on in the console.
	// +kubebuilder:default=true
	// +optional
	Enabled *bool `json:"enabled,omitempty"`
	// CheckRBAC makes the console check the user's permissions before offering the feature.
	// +kubebuilder:default=true
	// +optional
	CheckRBAC *bool `json:"checkRBAC,omitempty"`
}

// FeaturesConfig groups the per-feature console toggles.
type FeaturesConfig struct {
	// +kubebuilder:default={}
	// +optional
	Delete FeatureConfig `json:"delete,omitempty"`
	// +kubebuilder:default={}
	// +optional
	Create FeatureConfig `json:"create,omitempty"`
	// +kubebuilder:default={}
	// +optional
	Edit FeatureConfig `json:"edit,omitempty"`
}

// RBACConfig controls the default ClusterRoles managed by the operator.
type RBACConfig struct {
	// CreateDefaultRoles creates the view, delete and admin ClusterRoles.
	// Unset means true. Turning it off later leaves previously created roles in place.
	// +kubebuilder:default=true
	// +optional
	CreateDefaultRoles *bool `json:"createDefaultRoles,omitempty"`
	// RolePrefix is the name prefix for the default ClusterRoles.
	// +kubebuilder:default="secrets-management"
	// +optional
	RolePrefix string `json:"rolePrefix,omitempty"`
}

// DefaultRolesEnabled reports whether the default ClusterRoles should be created.
func (c RBACConfig) DefaultRolesEnabled() bool {
	return c.CreateDefaultRoles == nil || *c.CreateDefaultRoles
}

// ResourceRequirements holds CPU and memory quantities as strings.
type ResourceRequirements struct {
	// +optional
	CPU string `json:"cpu,omitempty"`
	// +optional
	Memory string `json:"memory,omitempty"`
}

// ResourceConfig holds requests and limits for the plugin container.
type ResourceConfig struct {
	// +optional
	Requests ResourceRequirements `json:"requests,omitempty"`
	// +optional
	Limits ResourceRequirements `json:"limits,omitempty"`
}

// PluginConfig configures the console plugin workload.
type PluginConfig struct {
	// Image is the plugin container image. Defaults to the operator's configured plugin image.
	// +optional
	Image string `json:"image,omitempty"`
	// ImagePullPolicy for the plugin container.
	// +kubebuilder:validation:Enum=Always;IfNotPresent;Never
	// +kubebuilder:default="IfNotPresent"
	// +optional
	ImagePullPolicy string `json:"imagePullPolicy,omitempty"`
	// Replicas is the number of plugin pods.
	// +kubebuilder:default=2
	// +kubebuilder:validation:Minimum=1
	// +optional
	Replicas int32 `json:"replicas,omitempty"`
	// Resources overrides the default requests and limits of the plugin container.
	// +optional
	Resources ResourceConfig `json:"resources,omitempty"`
}

// OperatorConfig enables the console views for one peer operator.
type OperatorConfig struct {
	// +kubebuilder:default=true
	// +optional
	Enabled *bool `json:"enabled,omitempty"`
}

// OperatorsConfig lists the peer operators the console can show resources for.
type OperatorsConfig struct {
	// +kubebuilder:default={}
	// +optional
	CertManager OperatorConfig `json:"certManager,omitempty"`
	// +kubebuilder:default={}
	// +optional
	ExternalSecrets OperatorConfig `json:"externalSecrets,omitempty"`
	// +kubebuilder:default={}
	// +optional
	SecretsStoreCSI OperatorConfig `json:"secretsStoreCSI,omitempty"`
}

// SecretsManagementConfigSpec defines the desired state of SecretsManagementConfig.
type SecretsManagementConfigSpec struct {
	// +kubebuilder:default={}
	// +optional
	Features FeaturesConfig `json:"features,omitempty"`
	// +kubebuilder:default={}
	// +optional
	RBAC RBACConfig `json:"rbac,omitempty"`
	// +kubebuilder:default={}
	// +optional
	Plugin PluginConfig `json:"plugin,omitempty"`
	// +kubebuilder:default={}
	// +optional
	Operators OperatorsConfig `json:"operators,omitempty"`
}

// ClusterRoleStatus records a ClusterRole created by the operator.
type ClusterRoleStatus struct {
	Name string `json:"name,omitempty"`
	// Operations lists the console operations the role grants.
	// +optional
	Operations []string `json:"operations,omitempty"`
	// Created is when the role was first created. It is kept stable across reconciles.
	// +optional
	Created metav1.Time `json:"created,omitempty"`
}

// RBACStatus reports the default roles.
type RBACStatus struct {
	// +optional
	ClusterRoles []ClusterRoleStatus `json:"clusterRoles,omitempty"`
}

// PluginStatus reports the plugin workload.
type PluginStatus struct {
	// +optional
	DeploymentName string `json:"deploymentName,omitempty"`
	// +optional
	ServiceName string `json:"serviceName,omitempty"`
	// +optional
	ConsolePluginName string `json:"consolePluginName,omitempty"`
	// +optional
	AvailableReplicas int32 `json:"availableReplicas,omitempty"`
	// Ready is true when at least one plugin replica is available.
	// +optional
	Ready bool `json:"ready,omitempty"`
}

// DetectedOperator reports whether a peer operator's API is installed.
type DetectedOperator struct {
	// +optional
	Installed bool `json:"installed,omitempty"`
	// Version is the first served version of the operator's CRD.
	// +optional
	Version string `json:"version,omitempty"`
}

// DetectedOperatorsStatus reports the peer operators found in the cluster.
type DetectedOperatorsStatus struct {
	// +optional
	CertManager DetectedOperator `json:"certManager,omitempty"`
	// +optional
	ExternalSecrets DetectedOperator `json:"externalSecrets,omitempty"`
	// +optional
	SecretsStoreCSI DetectedOperator `json:"secretsStoreCSI,omitempty"`
}

// ConfigPhase is the outcome of the last reconcile.
// +kubebuilder:validation:Enum=Pending;Deploying;Ready;Degraded;Error
type ConfigPhase string

const (
	ConfigPhasePending   ConfigPhase = "Pending"
	ConfigPhaseDeploying ConfigPhase = "Deploying"
	ConfigPhaseReady     ConfigPhase = "Ready"
	// ConfigPhaseDegraded is reserved; the controller does not set it today.
	ConfigPhaseDegraded ConfigPhase = "Degraded"
	ConfigPhaseError    ConfigPhase = "Error"
)

// ConditionType names a SecretsManagementConfig condition.
type ConditionType string

const (
	// ConditionPluginDeployed reports the plugin Deployment was written.
	ConditionPluginDeployed ConditionType = "PluginDeployed"
	// ConditionRBACConfigured reports the default ClusterRoles were written.
	ConditionRBACConfigured ConditionType = "RBACConfigured"
	// ConditionConsolePluginRegistered reports the ConsolePlugin registration was written.
	ConditionConsolePluginRegistered ConditionType = "ConsolePluginRegistered"
)

// Condition is a single observation of the SecretsManagementConfig state.
type Condition struct {
	Type ConditionType `json:"type"`
	// +kubebuilder:validation:Enum=True;False;Unknown
	Status metav1.ConditionStatus `json:"status"`
	// +optional
	Reason string `json:"reason,omitempty"`
	// +optional
	Message string `json:"message,omitempty"`
	// +optional
	LastTransitionTime metav1.Time `json:"lastTransitionTime,omitempty"`
}

// SecretsManagementConfigStatus defines the observed state of SecretsManagementConfig.
type SecretsManagementConfigStatus struct {
	// +optional
	Phase ConfigPhase `json:"phase,omitempty"`
	// ObservedGeneration is the generation last reconciled successfully.
	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`
	// +optional
	RBAC RBACStatus `json:"rbac,omitempty"`
	// +optional
	Plugin PluginStatus `json:"plugin,omitempty"`
	// +optional
	DetectedOperators DetectedOperatorsStatus `json:"detectedOperators,omitempty"`
	// +optional
	Conditions []Condition `json:"conditions,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:scope=Cluster,shortName=smc
// +kubebuilder:printcolumn:name="Phase",type=string,JSONPath=`.status.phase`
// +kubebuilder:printcolumn:name="Plugin Ready",type=boolean,JSONPath=`.status.plugin.ready`
// +kubebuilder:printcolumn:name="cert-manager",type=boolean,JSONPath=`.status.detectedOperators.certManager.installed`
// +kubebuilder:printcolumn:name="ESO",type=boolean,JSONPath=`.status.detectedOperators.externalSecrets.installed`
// +kubebuilder:printcolumn:name="SSCSI",type=boolean,JSONPath=`.status.detectedOperators.secretsStoreCSI.installed`
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`

// SecretsManagementConfig configures the secrets management console plugin
// and the default RBAC that goes with it.
type SecretsManagementConfig struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	// +kubebuilder:default={}
	Spec   SecretsManagementConfigSpec   `json:"spec,omitempty"`
	Status SecretsManagementConfigStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// SecretsManagementConfigList contains a list of SecretsManagementConfig.
type SecretsManagementConfigList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []SecretsManagementConfig `json:"items"`
}

func init() {
	SchemeBuilder.Register(&SecretsManagementConfig{}, &SecretsManagementConfigList{})
}

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

package secretsmanagementconfig

import (
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/tools/record"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// SecretsManagementConfigReconciler reconciles a SecretsManagementConfig object.
type SecretsManagementConfigReconciler struct {
	client.Client
	// APIReader reads CustomResourceDefinitions directly from the API server;
	// they are not cached by the manager. Falls back to Client when nil.
	APIReader client.Reader
	Scheme    *runtime.Scheme
	Recorder  record.EventRecorder
	// DefaultPluginImage is used when spec.plugin.image is empty.
	DefaultPluginImage string
	// MaxConcurrentReconciles defaults to 1.
	MaxConcurrentReconciles int
}

// +kubebuilder:rbac:groups=secrets-management.openshift.io,resources=secretsmanagementconfigs,verbs=get;list;watch;update;patch
// +kubebuilder:rbac:groups=secrets-management.openshift.io,resources=secretsmanagementconfigs/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=secrets-management.openshift.io,resources=secretsmanagementconfigs/finalizers,verbs=update
// +kubebuilder:rbac:groups="",resources=namespaces,verbs=get;list;watch;create
// +kubebuilder:rbac:groups="",resources=serviceaccounts;services;configmaps,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=apps,resources=deployments,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=rbac.authorization.k8s.io,resources=clusterroles,verbs=get;list;watch;create;update;patch;delete;escalate;bind
// +kubebuilder:rbac:groups=console.openshift.io,resources=consoleplugins,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=apiextensions.k8s.io,resources=customresourcedefinitions,verbs=get;list;watch
// +kubebuilder:rbac:groups="",resources=events,verbs=create;patch

func (r *SecretsManagementConfigReconciler) reader() client.Reader {
	if r.APIReader != nil {
		return r.APIReader
	}
	return r.Client
}

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

package controller

import (
	appsv1 "k8s.io/api/apps/v1"
	"k8s.io/apimachinery/pkg/api/equality"
	"sigs.k8s.io/controller-runtime/pkg/event"
	"sigs.k8s.io/controller-runtime/pkg/predicate"

	secretsv1alpha1 "github.com/openshift/ocp-secrets-management-operator/api/v1alpha1"
)

// SecretsManagementConfigPredicate filters SecretsManagementConfig events to
// only reconcile on meaningful changes.
//
// The predicate allows reconciliation when:
//   - The resource is created or deleted
//   - The Spec changes (detected via Generation change)
//   - DeletionTimestamp changes (triggers deletion handling)
//   - Finalizers change
//   - Metadata labels or annotations change
//
// Status-only updates are filtered out; the controller writes status itself
// and would otherwise wake up for its own writes.
func SecretsManagementConfigPredicate() predicate.Predicate {
	return predicate.Funcs{
		CreateFunc: func(e event.CreateEvent) bool {
			return true
		},
		DeleteFunc: func(e event.DeleteEvent) bool {
			return true
		},
		UpdateFunc: func(e event.UpdateEvent) bool {
			oldConfig, ok := e.ObjectOld.(*secretsv1alpha1.SecretsManagementConfig)
			if !ok {
				return true
			}
			newConfig, ok := e.ObjectNew.(*secretsv1alpha1.SecretsManagementConfig)
			if !ok {
				return true
			}

			if oldConfig.Generation != newConfig.Generation {
				return true
			}
			if !oldConfig.DeletionTimestamp.Equal(newConfig.DeletionTimestamp) {
				return true
			}
			if !equality.Semantic.DeepEqual(oldConfig.Finalizers, newConfig.Finalizers) {
				return true
			}
			if !equality.Semantic.DeepEqual(oldConfig.Labels, newConfig.Labels) {
				return true
			}
			return !equality.Semantic.DeepEqual(oldConfig.Annotations, newConfig.Annotations)
		},
		GenericFunc: func(e event.GenericEvent) bool {
			return true
		},
	}
}

// PluginDeploymentPredicate filters plugin Deployment update events to spec
// changes and changes in available replicas, which feed status.plugin.
func PluginDeploymentPredicate() predicate.Predicate {
	return predicate.Funcs{
		CreateFunc: func(e event.CreateEvent) bool {
			return true
		},
		DeleteFunc: func(e event.DeleteEvent) bool {
			return true
		},
		UpdateFunc: func(e event.UpdateEvent) bool {
			oldDeploy, ok := e.ObjectOld.(*appsv1.Deployment)
			if !ok {
				return true
			}
			newDeploy, ok := e.ObjectNew.(*appsv1.Deployment)
			if !ok {
				return true
			}

			if oldDeploy.Generation != newDeploy.Generation {
				return true
			}
			return oldDeploy.Status.AvailableReplicas != newDeploy.Status.AvailableReplicas
		},
		GenericFunc: func(e event.GenericEvent) bool {
			return true
		},
	}
}

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
	"time"

	"golang.org/x/time/rate"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/util/workqueue"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/builder"
	"sigs.k8s.io/controller-runtime/pkg/controller"

	secretsv1alpha1 "github.com/openshift/ocp-secrets-management-operator/api/v1alpha1"
	"github.com/openshift/ocp-secrets-management-operator/internal/constants"
	controllermetrics "github.com/openshift/ocp-secrets-management-operator/internal/controller"
)

// SetupWithManager sets up the controller with the Manager.
//
// Namespaced plugin resources carry a controller reference to their
// SecretsManagementConfig, so Owns() watches re-drive it when they drift.
// ClusterRoles and the ConsolePlugin are cluster-scoped and not owned; drift
// there is repaired on the periodic requeue.
func (r *SecretsManagementConfigReconciler) SetupWithManager(mgr ctrl.Manager) error {
	maxConcurrent := r.MaxConcurrentReconciles
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	return ctrl.NewControllerManagedBy(mgr).
		For(&secretsv1alpha1.SecretsManagementConfig{},
			builder.WithPredicates(controllermetrics.SecretsManagementConfigPredicate())).
		Owns(&appsv1.Deployment{},
			builder.WithPredicates(controllermetrics.PluginDeploymentPredicate())).
		Owns(&corev1.Service{}).
		Owns(&corev1.ServiceAccount{}).
		Owns(&corev1.ConfigMap{}).
		WithOptions(controller.Options{
			MaxConcurrentReconciles: maxConcurrent,
			RateLimiter:             newRateLimiter(),
		}).
		Named(constants.ControllerNameSecretsManagementConfig).
		Complete(r)
}

// newRateLimiter combines per-item exponential backoff with an overall token
// bucket.
func newRateLimiter() workqueue.TypedRateLimiter[ctrl.Request] {
	return workqueue.NewTypedMaxOfRateLimiter(
		workqueue.NewTypedItemExponentialFailureRateLimiter[ctrl.Request](1*time.Second, 60*time.Second),
		&workqueue.TypedBucketRateLimiter[ctrl.Request]{Limiter: rate.NewLimiter(rate.Limit(10), 100)},
	)
}

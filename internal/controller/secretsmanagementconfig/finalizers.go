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
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	secretsv1alpha1 "github.com/openshift/ocp-secrets-management-operator/api/v1alpha1"
	"github.com/openshift/ocp-secrets-management-operator/internal/logging"
)

// ensureFinalizer adds the finalizer to config and persists it. It does
// nothing when the finalizer is already present.
//
// Finalizer changes go out as a merge patch carrying only metadata.finalizers,
// never as an Update of the whole object.
func (r *SecretsManagementConfigReconciler) ensureFinalizer(ctx context.Context, logger logr.Logger, config *secretsv1alpha1.SecretsManagementConfig) error {
	if controllerutil.ContainsFinalizer(config, secretsv1alpha1.SecretsManagementConfigFinalizer) {
		return nil
	}

	original := config.DeepCopy()
	controllerutil.AddFinalizer(config, secretsv1alpha1.SecretsManagementConfigFinalizer)
	if err := r.Patch(ctx, config, client.MergeFrom(original)); err != nil {
		return fmt.Errorf("failed to add finalizer to SecretsManagementConfig %s: %w", config.Name, err)
	}
	logging.LogAuditEvent(logger, logging.EventFinalizerAdded, map[string]string{
		"config":    config.Name,
		"finalizer": secretsv1alpha1.SecretsManagementConfigFinalizer,
	})
	return nil
}

// releaseFinalizer removes the finalizer from config and persists it, which
// lets the API server complete the deletion.
func (r *SecretsManagementConfigReconciler) releaseFinalizer(ctx context.Context, logger logr.Logger, config *secretsv1alpha1.SecretsManagementConfig) error {
	if !controllerutil.ContainsFinalizer(config, secretsv1alpha1.SecretsManagementConfigFinalizer) {
		return nil
	}

	original := config.DeepCopy()
	controllerutil.RemoveFinalizer(config, secretsv1alpha1.SecretsManagementConfigFinalizer)
	if err := r.Patch(ctx, config, client.MergeFrom(original)); err != nil {
		return fmt.Errorf("failed to remove finalizer from SecretsManagementConfig %s: %w", config.Name, err)
	}
	logging.LogAuditEvent(logger, logging.EventFinalizerRemoved, map[string]string{
		"config":    config.Name,
		"finalizer": secretsv1alpha1.SecretsManagementConfigFinalizer,
	})
	return nil
}

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
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	secretsv1alpha1 "github.com/openshift/ocp-secrets-management-operator/api/v1alpha1"
	"github.com/openshift/ocp-secrets-management-operator/internal/constants"
	controllermetrics "github.com/openshift/ocp-secrets-management-operator/internal/controller"
	inframanager "github.com/openshift/ocp-secrets-management-operator/internal/infra"
	rbacmanager "github.com/openshift/ocp-secrets-management-operator/internal/rbac"
)

// handleDeletion removes everything the operator created for config and then
// releases the finalizer.
//
// Cleanup is best effort: every step runs even if an earlier one failed, and
// failures are logged and reported as an event only. The finalizer is
// released regardless so a broken cleanup cannot leave the object stuck. Only
// a failure to release the finalizer is returned.
func (r *SecretsManagementConfigReconciler) handleDeletion(ctx context.Context, logger logr.Logger, config *secretsv1alpha1.SecretsManagementConfig) error {
	logger.Info("SecretsManagementConfig is marked for deletion; cleaning up")

	infra := inframanager.NewManager(r.Client, r.Scheme, r.DefaultPluginImage)
	roles := rbacmanager.NewManager(r.Client)

	steps := []struct {
		name string
		run  func() error
	}{
		{stageConsolePlugin, func() error { return infra.CleanupConsolePlugin(ctx, logger) }},
		{stagePlugin, func() error { return infra.CleanupPlugin(ctx, logger) }},
		{stageRBAC, func() error { return roles.Cleanup(ctx, logger, config) }},
	}

	var errs []error
	for _, step := range steps {
		if err := step.run(); err != nil {
			logger.Error(err, "Cleanup step failed; continuing", "stage", step.name)
			errs = append(errs, fmt.Errorf("%s: %w", step.name, err))
		}
	}
	if cleanupErr := errors.Join(errs...); cleanupErr != nil {
		r.recordEvent(config, corev1.EventTypeWarning, constants.EventReasonCleanupFailed,
			"Cleanup was incomplete: %v", cleanupErr)
	}

	controllermetrics.NewConfigMetrics(config.Name).Clear()

	latest := &secretsv1alpha1.SecretsManagementConfig{}
	if err := r.Get(ctx, client.ObjectKeyFromObject(config), latest); err != nil {
		if apierrors.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to re-fetch SecretsManagementConfig %s: %w", config.Name, err)
	}
	if !controllerutil.ContainsFinalizer(latest, secretsv1alpha1.SecretsManagementConfigFinalizer) {
		return nil
	}

	if err := r.releaseFinalizer(ctx, logger, latest); err != nil {
		return err
	}
	r.recordEvent(latest, corev1.EventTypeNormal, constants.EventReasonFinalized, "Cleanup finished; finalizer removed")
	return nil
}

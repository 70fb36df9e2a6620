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
	"sigs.k8s.io/controller-runtime/pkg/client"

	secretsv1alpha1 "github.com/openshift/ocp-secrets-management-operator/api/v1alpha1"
	"github.com/openshift/ocp-secrets-management-operator/internal/constants"
	controllermetrics "github.com/openshift/ocp-secrets-management-operator/internal/controller"
	"github.com/openshift/ocp-secrets-management-operator/internal/status"
)

// persistStatus writes config.Status as a merge patch against base. base is
// the object as it was before this reconcile changed its status.
func (r *SecretsManagementConfigReconciler) persistStatus(ctx context.Context, config, base *secretsv1alpha1.SecretsManagementConfig) error {
	if err := r.Status().Patch(ctx, config, client.MergeFrom(base)); err != nil {
		return fmt.Errorf("failed to update status of SecretsManagementConfig %s: %w", config.Name, err)
	}
	return nil
}

// failStage marks the stage's condition False, moves the phase to Error and
// persists status. The stage error is always returned so the request is
// retried with backoff; a status write failure is joined to it.
func (r *SecretsManagementConfigReconciler) failStage(ctx context.Context, logger logr.Logger, config, base *secretsv1alpha1.SecretsManagementConfig, st stage, stageErr error) error {
	logger.Error(stageErr, "Reconcile stage failed", "stage", st.name)

	status.False(&config.Status.Conditions, st.condition, constants.ReasonReconcileFailed, stageErr.Error())
	config.Status.Phase = secretsv1alpha1.ConfigPhaseError
	controllermetrics.NewConfigMetrics(config.Name).SetPhase(secretsv1alpha1.ConfigPhaseError)
	r.recordEvent(config, corev1.EventTypeWarning, constants.EventReasonReconcileFailed,
		"Failed to reconcile %s: %v", st.name, stageErr)

	if err := r.persistStatus(ctx, config, base); err != nil {
		logger.Error(err, "Failed to record Error phase", "stage", st.name)
		return errors.Join(stageErr, err)
	}
	return stageErr
}

func (r *SecretsManagementConfigReconciler) recordEvent(config *secretsv1alpha1.SecretsManagementConfig, eventType, reason, messageFmt string, args ...interface{}) {
	if r.Recorder == nil {
		return
	}
	r.Recorder.Eventf(config, eventType, reason, messageFmt, args...)
}

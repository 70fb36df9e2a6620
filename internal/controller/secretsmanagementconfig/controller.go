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
	"time"

	"github.com/go-logr/logr"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"

	secretsv1alpha1 "github.com/openshift/ocp-secrets-management-operator/api/v1alpha1"
	"github.com/openshift/ocp-secrets-management-operator/internal/constants"
	controllermetrics "github.com/openshift/ocp-secrets-management-operator/internal/controller"
	"github.com/openshift/ocp-secrets-management-operator/internal/detection"
	operatorerrors "github.com/openshift/ocp-secrets-management-operator/internal/errors"
	inframanager "github.com/openshift/ocp-secrets-management-operator/internal/infra"
	rbacmanager "github.com/openshift/ocp-secrets-management-operator/internal/rbac"
)

// stage is one synchronizer of the reconcile sequence. condition is set False
// when the stage fails.
type stage struct {
	name      string
	condition secretsv1alpha1.ConditionType
	run       func(ctx context.Context, logger logr.Logger, config *secretsv1alpha1.SecretsManagementConfig) error
}

func (r *SecretsManagementConfigReconciler) stages() []stage {
	infra := inframanager.NewManager(r.Client, r.Scheme, r.DefaultPluginImage)
	roles := rbacmanager.NewManager(r.Client)

	return []stage{
		{
			name:      stageNamespace,
			condition: secretsv1alpha1.ConditionPluginDeployed,
			run: func(ctx context.Context, logger logr.Logger, _ *secretsv1alpha1.SecretsManagementConfig) error {
				return infra.EnsureNamespace(ctx, logger)
			},
		},
		{name: stageRBAC, condition: secretsv1alpha1.ConditionRBACConfigured, run: roles.Reconcile},
		{name: stagePlugin, condition: secretsv1alpha1.ConditionPluginDeployed, run: infra.Reconcile},
		{name: stageConsolePlugin, condition: secretsv1alpha1.ConditionConsolePluginRegistered, run: infra.EnsureConsolePlugin},
	}
}

// Reconcile is part of the main Kubernetes reconciliation loop which aims to
// move the current state of the cluster closer to the desired state.
//
// A pass registers the finalizer, runs the namespace, RBAC, plugin and console
// registration stages in order, refreshes peer operator detection and marks
// the object Ready. The first failing stage moves the object to Error and the
// request is retried with backoff. Successful passes are repeated every
// constants.RequeueDetection to keep detection results current.
func (r *SecretsManagementConfigReconciler) Reconcile(ctx context.Context, req ctrl.Request) (result ctrl.Result, reconcileErr error) {
	reconcileMetrics := controllermetrics.NewReconcileMetrics(req.Name, constants.ControllerNameSecretsManagementConfig)
	startTime := time.Now()
	defer func() {
		reconcileMetrics.ObserveDuration(time.Since(startTime).Seconds())
		if reconcileErr != nil {
			reconcileMetrics.IncrementError(operatorerrors.Reason(reconcileErr))
		}
	}()

	logger := log.FromContext(ctx).WithValues(
		"smc", req.Name,
		"controller", constants.ControllerNameSecretsManagementConfig,
		"reconcile_id", time.Now().UnixNano(),
	)

	config := &secretsv1alpha1.SecretsManagementConfig{}
	if err := r.Get(ctx, req.NamespacedName, config); err != nil {
		if apierrors.IsNotFound(err) {
			logger.V(1).Info("SecretsManagementConfig not found; assuming it was deleted")
			return ctrl.Result{}, nil
		}
		return ctrl.Result{}, fmt.Errorf("failed to get SecretsManagementConfig %s: %w", req.Name, err)
	}

	if !config.DeletionTimestamp.IsZero() {
		return ctrl.Result{}, r.handleDeletion(ctx, logger, config)
	}

	if err := r.ensureFinalizer(ctx, logger, config); err != nil {
		return ctrl.Result{}, err
	}

	base := config.DeepCopy()
	configMetrics := controllermetrics.NewConfigMetrics(config.Name)

	if config.Status.Phase == "" || config.Status.Phase == secretsv1alpha1.ConfigPhasePending {
		config.Status.Phase = secretsv1alpha1.ConfigPhaseDeploying
		if err := r.persistStatus(ctx, config, base); err != nil {
			return ctrl.Result{}, err
		}
		configMetrics.SetPhase(secretsv1alpha1.ConfigPhaseDeploying)
	}

	for _, st := range r.stages() {
		if err := st.run(ctx, logger.WithValues("stage", st.name), config); err != nil {
			return ctrl.Result{}, r.failStage(ctx, logger, config, base, st, err)
		}
	}

	if err := detection.NewDetector(r.reader()).Detect(ctx, config); err != nil {
		logger.Error(err, "Peer operator detection failed; affected operators are reported as not installed")
	}
	detection.Each(config.Status.DetectedOperators, func(id string, detected secretsv1alpha1.DetectedOperator) {
		configMetrics.SetOperatorInstalled(id, detected.Installed)
	})

	wasReady := base.Status.Phase == secretsv1alpha1.ConfigPhaseReady
	config.Status.Phase = secretsv1alpha1.ConfigPhaseReady
	config.Status.ObservedGeneration = config.Generation
	if err := r.persistStatus(ctx, config, base); err != nil {
		return ctrl.Result{}, err
	}

	configMetrics.SetPhase(secretsv1alpha1.ConfigPhaseReady)
	configMetrics.SetPluginAvailableReplicas(config.Status.Plugin.AvailableReplicas)
	if !wasReady {
		r.recordEvent(config, corev1.EventTypeNormal, constants.EventReasonReady,
			"Console plugin %s is deployed and registered", constants.PluginName)
	}

	logger.Info("Reconciled SecretsManagementConfig", "generation", config.Generation)
	return ctrl.Result{RequeueAfter: constants.RequeueDetection}, nil
}

package infra

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/labels"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	secretsv1alpha1 "github.com/openshift/ocp-secrets-management-operator/api/v1alpha1"
	"github.com/openshift/ocp-secrets-management-operator/internal/constants"
	"github.com/openshift/ocp-secrets-management-operator/internal/logging"
	"github.com/openshift/ocp-secrets-management-operator/internal/status"
)

// EnsureConsolePlugin registers the plugin with the console. An existing
// ConsolePlugin only has its spec and the operator's labels replaced; every
// other field, including resourceVersion and foreign metadata, is kept.
//
// ConsolePlugin is cluster-scoped and carries no owner reference.
func (m *Manager) EnsureConsolePlugin(ctx context.Context, logger logr.Logger, config *secretsv1alpha1.SecretsManagementConfig) error {
	desired := BuildConsolePlugin()

	cp := &unstructured.Unstructured{}
	cp.SetGroupVersionKind(desired.GroupVersionKind())
	cp.SetName(desired.GetName())

	op, err := controllerutil.CreateOrUpdate(ctx, m.client, cp, func() error {
		cp.SetLabels(labels.Merge(cp.GetLabels(), desired.GetLabels()))
		cp.Object["spec"] = desired.Object["spec"]
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to reconcile ConsolePlugin %s: %w", constants.PluginName, err)
	}
	logOperation(logger, op, "ConsolePlugin", constants.PluginName)
	if op != controllerutil.OperationResultNone {
		logging.LogAuditEvent(logger, logging.EventConsolePluginWritten, map[string]string{
			"console_plugin": constants.PluginName,
			"operation":      string(op),
		})
	}

	status.True(&config.Status.Conditions, secretsv1alpha1.ConditionConsolePluginRegistered,
		constants.ReasonConsolePluginCreated, "ConsolePlugin is registered with the console")
	return nil
}

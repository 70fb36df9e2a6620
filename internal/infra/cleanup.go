package infra

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/openshift/ocp-secrets-management-operator/internal/constants"
	operatorerrors "github.com/openshift/ocp-secrets-management-operator/internal/errors"
)

// CleanupConsolePlugin deletes the ConsolePlugin registration. A missing
// object or a cluster without the ConsolePlugin API counts as success.
func (m *Manager) CleanupConsolePlugin(ctx context.Context, logger logr.Logger) error {
	cp := &unstructured.Unstructured{}
	cp.SetGroupVersionKind(constants.ConsolePluginGVK)
	cp.SetName(constants.PluginName)

	return m.deleteIfExists(ctx, logger, "ConsolePlugin", cp)
}

// CleanupPlugin deletes the plugin Deployment, Service, ServiceAccount and
// ConfigMap. Each deletion is attempted even if an earlier one fails; the
// returned error joins the failures. The Namespace is left in place.
//
// It is safe to call CleanupPlugin multiple times.
func (m *Manager) CleanupPlugin(ctx context.Context, logger logr.Logger) error {
	objectMeta := func(name string) metav1.ObjectMeta {
		return metav1.ObjectMeta{Name: name, Namespace: constants.PluginNamespace}
	}

	steps := []struct {
		kind string
		obj  client.Object
	}{
		{"Deployment", &appsv1.Deployment{ObjectMeta: objectMeta(constants.PluginResourceName)}},
		{"Service", &corev1.Service{ObjectMeta: objectMeta(constants.PluginResourceName)}},
		{"ServiceAccount", &corev1.ServiceAccount{ObjectMeta: objectMeta(constants.PluginResourceName)}},
		{"ConfigMap", &corev1.ConfigMap{ObjectMeta: objectMeta(constants.NginxConfigMapName)}},
	}

	var errs []error
	for _, step := range steps {
		if err := m.deleteIfExists(ctx, logger, step.kind, step.obj); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Manager) deleteIfExists(ctx context.Context, logger logr.Logger, kind string, obj client.Object) error {
	if err := m.client.Delete(ctx, obj); err != nil {
		if apierrors.IsNotFound(err) || operatorerrors.IsCRDMissingError(err) {
			logger.V(1).Info(kind+" already absent", "name", obj.GetName())
			return nil
		}
		logger.Error(err, "Failed to delete "+kind, "name", obj.GetName())
		return fmt.Errorf("failed to delete %s %s: %w", kind, client.ObjectKeyFromObject(obj), err)
	}
	logger.Info("Deleted "+kind, "name", obj.GetName())
	return nil
}

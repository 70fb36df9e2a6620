package infra

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	secretsv1alpha1 "github.com/openshift/ocp-secrets-management-operator/api/v1alpha1"
	"github.com/openshift/ocp-secrets-management-operator/internal/constants"
)

// Manager reconciles the console plugin workload and its console registration
// for a SecretsManagementConfig.
type Manager struct {
	client       client.Client
	scheme       *runtime.Scheme
	defaultImage string
}

// NewManager constructs a Manager that uses the provided Kubernetes client.
// The scheme is used to set controller references on namespaced resources so
// changes to them re-trigger reconciliation. defaultImage is the plugin image
// used when a config does not set one; empty selects constants.DefaultPluginImage.
func NewManager(c client.Client, scheme *runtime.Scheme, defaultImage string) *Manager {
	if defaultImage == "" {
		defaultImage = constants.DefaultPluginImage()
	}
	return &Manager{
		client:       c,
		scheme:       scheme,
		defaultImage: defaultImage,
	}
}

// EnsureNamespace creates the plugin Namespace if it does not exist. An
// existing Namespace is never modified.
func (m *Manager) EnsureNamespace(ctx context.Context, logger logr.Logger) error {
	ns := &corev1.Namespace{}
	err := m.client.Get(ctx, types.NamespacedName{Name: constants.PluginNamespace}, ns)
	if err == nil {
		return nil
	}
	if !apierrors.IsNotFound(err) {
		return fmt.Errorf("failed to get Namespace %s: %w", constants.PluginNamespace, err)
	}

	logger.Info("Namespace not found; creating", "namespace", constants.PluginNamespace)
	if err := m.client.Create(ctx, BuildNamespace()); err != nil && !apierrors.IsAlreadyExists(err) {
		return fmt.Errorf("failed to create Namespace %s: %w", constants.PluginNamespace, err)
	}
	return nil
}

// Reconcile ensures the plugin ServiceAccount, Service, nginx ConfigMap and
// Deployment, in that order, and records the Deployment in config.Status.Plugin.
func (m *Manager) Reconcile(ctx context.Context, logger logr.Logger, config *secretsv1alpha1.SecretsManagementConfig) error {
	if err := m.ensureServiceAccount(ctx, logger, config); err != nil {
		return err
	}
	if err := m.ensureService(ctx, logger, config); err != nil {
		return err
	}
	if err := m.ensureNginxConfigMap(ctx, logger, config); err != nil {
		return err
	}
	return m.ensureDeployment(ctx, logger, config)
}

// setOwner marks config as the controller of a namespaced plugin resource.
func (m *Manager) setOwner(config *secretsv1alpha1.SecretsManagementConfig, obj client.Object) error {
	if m.scheme == nil {
		return nil
	}
	if err := controllerutil.SetControllerReference(config, obj, m.scheme); err != nil {
		return fmt.Errorf("failed to set owner reference on %s/%s: %w", obj.GetNamespace(), obj.GetName(), err)
	}
	return nil
}

package infra

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	secretsv1alpha1 "github.com/openshift/ocp-secrets-management-operator/api/v1alpha1"
	"github.com/openshift/ocp-secrets-management-operator/internal/constants"
	"github.com/openshift/ocp-secrets-management-operator/internal/status"
)

// ensureServiceAccount creates the plugin ServiceAccount if it does not exist.
func (m *Manager) ensureServiceAccount(ctx context.Context, logger logr.Logger, config *secretsv1alpha1.SecretsManagementConfig) error {
	desired := BuildServiceAccount()

	existing := &corev1.ServiceAccount{}
	err := m.client.Get(ctx, types.NamespacedName{Namespace: desired.Namespace, Name: desired.Name}, existing)
	if err == nil {
		return nil
	}
	if !apierrors.IsNotFound(err) {
		return fmt.Errorf("failed to get ServiceAccount %s/%s: %w", desired.Namespace, desired.Name, err)
	}

	if err := m.setOwner(config, desired); err != nil {
		return err
	}

	logger.Info("ServiceAccount not found; creating", "serviceaccount", desired.Name)
	if err := m.client.Create(ctx, desired); err != nil && !apierrors.IsAlreadyExists(err) {
		return fmt.Errorf("failed to create ServiceAccount %s/%s: %w", desired.Namespace, desired.Name, err)
	}
	return nil
}

// ensureService creates or updates the plugin Service. Only labels,
// annotations, ports and selector are written; cluster-assigned fields such
// as clusterIP are left alone.
func (m *Manager) ensureService(ctx context.Context, logger logr.Logger, config *secretsv1alpha1.SecretsManagementConfig) error {
	desired := BuildService()
	svc := &corev1.Service{}
	svc.Name = desired.Name
	svc.Namespace = desired.Namespace

	op, err := controllerutil.CreateOrUpdate(ctx, m.client, svc, func() error {
		svc.Labels = labels.Merge(svc.Labels, desired.Labels)
		svc.Annotations = labels.Merge(svc.Annotations, desired.Annotations)
		svc.Spec.Ports = desired.Spec.Ports
		svc.Spec.Selector = desired.Spec.Selector
		return m.setOwner(config, svc)
	})
	if err != nil {
		return fmt.Errorf("failed to reconcile Service %s/%s: %w", desired.Namespace, desired.Name, err)
	}
	logOperation(logger, op, "Service", desired.Name)
	return nil
}

// ensureNginxConfigMap creates or updates the ConfigMap holding the proxy configuration.
func (m *Manager) ensureNginxConfigMap(ctx context.Context, logger logr.Logger, config *secretsv1alpha1.SecretsManagementConfig) error {
	desired := BuildNginxConfigMap()
	cm := &corev1.ConfigMap{}
	cm.Name = desired.Name
	cm.Namespace = desired.Namespace

	op, err := controllerutil.CreateOrUpdate(ctx, m.client, cm, func() error {
		cm.Labels = labels.Merge(cm.Labels, desired.Labels)
		cm.Data = desired.Data
		return m.setOwner(config, cm)
	})
	if err != nil {
		return fmt.Errorf("failed to reconcile ConfigMap %s/%s: %w", desired.Namespace, desired.Name, err)
	}
	logOperation(logger, op, "ConfigMap", desired.Name)
	return nil
}

// ensureDeployment creates or updates the plugin Deployment and refreshes
// config.Status.Plugin from the written object. The desired Deployment is
// built before any write so an invalid spec leaves the live Deployment untouched.
func (m *Manager) ensureDeployment(ctx context.Context, logger logr.Logger, config *secretsv1alpha1.SecretsManagementConfig) error {
	desired, err := BuildDeployment(config, m.defaultImage)
	if err != nil {
		return err
	}

	deploy := &appsv1.Deployment{}
	deploy.Name = desired.Name
	deploy.Namespace = desired.Namespace

	op, err := controllerutil.CreateOrUpdate(ctx, m.client, deploy, func() error {
		mutateDeployment(deploy, desired)
		return m.setOwner(config, deploy)
	})
	if err != nil {
		return fmt.Errorf("failed to reconcile Deployment %s/%s: %w", desired.Namespace, desired.Name, err)
	}
	logOperation(logger, op, "Deployment", desired.Name)

	available := deploy.Status.AvailableReplicas
	config.Status.Plugin = secretsv1alpha1.PluginStatus{
		DeploymentName:    deploy.Name,
		ServiceName:       constants.PluginResourceName,
		ConsolePluginName: constants.PluginName,
		AvailableReplicas: available,
		Ready:             available > 0,
	}
	status.True(&config.Status.Conditions, secretsv1alpha1.ConditionPluginDeployed,
		constants.ReasonDeploymentReady, "Plugin deployment is ready")

	return nil
}

// mutateDeployment writes the fields of desired the operator owns onto deploy.
// Fields defaulted by the API server are left alone, and template labels and
// annotations written by others (for example a rollout restart) survive.
func mutateDeployment(deploy, desired *appsv1.Deployment) {
	deploy.Labels = labels.Merge(deploy.Labels, desired.Labels)
	deploy.Spec.Replicas = desired.Spec.Replicas
	// The selector is immutable once the Deployment exists.
	if deploy.Spec.Selector == nil {
		deploy.Spec.Selector = desired.Spec.Selector
	}

	template := &deploy.Spec.Template
	template.Labels = labels.Merge(template.Labels, desired.Spec.Template.Labels)
	template.Annotations = labels.Merge(template.Annotations, desired.Spec.Template.Annotations)

	want := desired.Spec.Template.Spec
	template.Spec.ServiceAccountName = want.ServiceAccountName
	template.Spec.SecurityContext = want.SecurityContext
	template.Spec.Volumes = want.Volumes

	containers := make([]corev1.Container, 0, len(want.Containers))
	for _, wantContainer := range want.Containers {
		container := wantContainer
		for _, live := range template.Spec.Containers {
			if live.Name != wantContainer.Name {
				continue
			}
			container = live
			container.Image = wantContainer.Image
			container.ImagePullPolicy = wantContainer.ImagePullPolicy
			container.Ports = wantContainer.Ports
			container.Resources = wantContainer.Resources
			container.SecurityContext = wantContainer.SecurityContext
			container.VolumeMounts = wantContainer.VolumeMounts
			break
		}
		containers = append(containers, container)
	}
	template.Spec.Containers = containers
}

func logOperation(logger logr.Logger, op controllerutil.OperationResult, kind, name string) {
	switch op {
	case controllerutil.OperationResultCreated:
		logger.Info("Created "+kind, "name", name)
	case controllerutil.OperationResultUpdated:
		logger.Info("Updated "+kind, "name", name)
	default:
		logger.V(1).Info(kind+" up to date", "name", name)
	}
}

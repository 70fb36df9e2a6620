package rbac

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/go-logr/logr"
	rbacv1 "k8s.io/api/rbac/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	secretsv1alpha1 "github.com/openshift/ocp-secrets-management-operator/api/v1alpha1"
	"github.com/openshift/ocp-secrets-management-operator/internal/constants"
	"github.com/openshift/ocp-secrets-management-operator/internal/logging"
	"github.com/openshift/ocp-secrets-management-operator/internal/status"
)

// Manager reconciles the default ClusterRoles for a SecretsManagementConfig.
type Manager struct {
	client client.Client
	now    func() metav1.Time
}

// NewManager constructs a Manager that uses the provided Kubernetes client.
func NewManager(c client.Client) *Manager {
	return &Manager{
		client: c,
		now:    metav1.Now,
	}
}

// Reconcile creates or updates the view, delete and admin ClusterRoles and
// records them in config.Status.RBAC. It does nothing when
// spec.rbac.createDefaultRoles is false; roles created earlier are left in place.
//
// Only rules and the operator's labels are written on update.
func (m *Manager) Reconcile(ctx context.Context, logger logr.Logger, config *secretsv1alpha1.SecretsManagementConfig) error {
	if !config.Spec.RBAC.DefaultRolesEnabled() {
		logger.V(1).Info("Default ClusterRoles disabled; leaving any existing roles in place")
		return nil
	}

	prefix := RolePrefix(config)

	recorded := make(map[string]metav1.Time, len(config.Status.RBAC.ClusterRoles))
	for _, r := range config.Status.RBAC.ClusterRoles {
		recorded[r.Name] = r.Created
	}

	statuses := make([]secretsv1alpha1.ClusterRoleStatus, 0, len(defaultRoles))
	for i, desired := range BuildClusterRoles(prefix) {
		role := &rbacv1.ClusterRole{ObjectMeta: metav1.ObjectMeta{Name: desired.Name}}

		op, err := controllerutil.CreateOrUpdate(ctx, m.client, role, func() error {
			role.Labels = labels.Merge(role.Labels, desired.Labels)
			role.Rules = desired.Rules
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to reconcile ClusterRole %s: %w", desired.Name, err)
		}
		if op != controllerutil.OperationResultNone {
			logging.LogAuditEvent(logger, logging.EventClusterRoleReconciled, map[string]string{
				"cluster_role": desired.Name,
				"operation":    string(op),
			})
		}

		operations := slices.Clone(defaultRoles[i].operations)

		statuses = append(statuses, secretsv1alpha1.ClusterRoleStatus{
			Name:       desired.Name,
			Operations: operations,
			Created:    m.createdAt(recorded, role),
		})
	}

	config.Status.RBAC.ClusterRoles = statuses
	status.True(&config.Status.Conditions, secretsv1alpha1.ConditionRBACConfigured,
		constants.ReasonRolesCreated, fmt.Sprintf("Created %d ClusterRoles", len(statuses)))

	return nil
}

// createdAt resolves the Created timestamp of a role: the value already in
// status, then the live object's creation timestamp, then now.
func (m *Manager) createdAt(recorded map[string]metav1.Time, live *rbacv1.ClusterRole) metav1.Time {
	if t, ok := recorded[live.Name]; ok && !t.IsZero() {
		return t
	}
	if !live.CreationTimestamp.IsZero() {
		return live.CreationTimestamp
	}
	return m.now()
}

// Cleanup deletes the default ClusterRoles for the current prefix and any
// role recorded in status under an earlier prefix. Missing roles are skipped.
// Every role is attempted; the returned error joins the individual failures.
func (m *Manager) Cleanup(ctx context.Context, logger logr.Logger, config *secretsv1alpha1.SecretsManagementConfig) error {
	names := RoleNames(RolePrefix(config))
	for _, r := range config.Status.RBAC.ClusterRoles {
		if !slices.Contains(names, r.Name) {
			names = append(names, r.Name)
		}
	}

	var errs []error
	for _, name := range names {
		role := &rbacv1.ClusterRole{ObjectMeta: metav1.ObjectMeta{Name: name}}
		if err := m.client.Delete(ctx, role); err != nil {
			if apierrors.IsNotFound(err) {
				continue
			}
			logger.Error(err, "Failed to delete ClusterRole", "cluster_role", name)
			errs = append(errs, fmt.Errorf("failed to delete ClusterRole %s: %w", name, err))
			continue
		}
		logger.Info("Deleted ClusterRole", "cluster_role", name)
	}

	return errors.Join(errs...)
}

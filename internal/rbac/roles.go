package rbac

import (
	rbacv1 "k8s.io/api/rbac/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	secretsv1alpha1 "github.com/openshift/ocp-secrets-management-operator/api/v1alpha1"
	"github.com/openshift/ocp-secrets-management-operator/internal/constants"
)

var (
	certManagerResources     = []string{"certificates", "issuers", "clusterissuers"}
	externalSecretsResources = []string{"externalsecrets", "clusterexternalsecrets", "secretstores", "clustersecretstores", "pushsecrets"}
	secretsStoreResources    = []string{"secretproviderclasses", "secretproviderclasspodstatuses"}

	// Pod statuses are written by the CSI driver and are not deletable from the console.
	secretsStoreDeletableResources = []string{"secretproviderclasses"}

	viewVerbs   = []string{"get", "list", "watch"}
	deleteVerbs = []string{"delete"}
	adminVerbs  = []string{rbacv1.VerbAll}
)

// roleSpec describes one of the default ClusterRoles.
type roleSpec struct {
	suffix     string
	operations []string
	rules      func() []rbacv1.PolicyRule
}

var defaultRoles = []roleSpec{
	{suffix: constants.SuffixRoleView, operations: []string{"view"}, rules: viewRules},
	{suffix: constants.SuffixRoleDelete, operations: []string{"delete"}, rules: deleteRules},
	{suffix: constants.SuffixRoleAdmin, operations: []string{"view", "delete", "create", "edit"}, rules: adminRules},
}

func viewRules() []rbacv1.PolicyRule {
	return newPolicyRulesBuilder().
		Group(constants.APIGroupCertManager).Resources(certManagerResources...).Verbs(viewVerbs...).
		Group(constants.APIGroupExternalSecrets).Resources(externalSecretsResources...).Verbs(viewVerbs...).
		Group(constants.APIGroupSecretsStoreCSI).Resources(secretsStoreResources...).Verbs(viewVerbs...).
		Rules()
}

func deleteRules() []rbacv1.PolicyRule {
	return newPolicyRulesBuilder().
		Group(constants.APIGroupCertManager).Resources(certManagerResources...).Verbs(deleteVerbs...).
		Group(constants.APIGroupExternalSecrets).Resources(externalSecretsResources...).Verbs(deleteVerbs...).
		Group(constants.APIGroupSecretsStoreCSI).Resources(secretsStoreDeletableResources...).Verbs(deleteVerbs...).
		Rules()
}

func adminRules() []rbacv1.PolicyRule {
	return newPolicyRulesBuilder().
		Group(constants.APIGroupCertManager).Resources(certManagerResources...).Verbs(adminVerbs...).
		Group(constants.APIGroupExternalSecrets).Resources(externalSecretsResources...).Verbs(adminVerbs...).
		Group(constants.APIGroupSecretsStoreCSI).Resources(secretsStoreResources...).Verbs(adminVerbs...).
		Rules()
}

// RolePrefix returns the configured role prefix or the default.
func RolePrefix(config *secretsv1alpha1.SecretsManagementConfig) string {
	if config == nil || config.Spec.RBAC.RolePrefix == "" {
		return secretsv1alpha1.DefaultRolePrefix
	}
	return config.Spec.RBAC.RolePrefix
}

// RoleNames returns the view, delete and admin role names for prefix, in that order.
func RoleNames(prefix string) []string {
	names := make([]string, 0, len(defaultRoles))
	for _, r := range defaultRoles {
		names = append(names, prefix+r.suffix)
	}
	return names
}

// BuildClusterRoles returns the desired view, delete and admin ClusterRoles for
// prefix, in the order of defaultRoles.
func BuildClusterRoles(prefix string) []*rbacv1.ClusterRole {
	roles := make([]*rbacv1.ClusterRole, 0, len(defaultRoles))
	for _, r := range defaultRoles {
		roles = append(roles, buildClusterRole(prefix, r))
	}
	return roles
}

func buildClusterRole(prefix string, spec roleSpec) *rbacv1.ClusterRole {
	return &rbacv1.ClusterRole{
		ObjectMeta: metav1.ObjectMeta{
			Name:   prefix + spec.suffix,
			Labels: constants.PluginLabels(),
		},
		Rules: spec.rules(),
	}
}

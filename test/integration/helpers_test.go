//go:build integration
// +build integration

package integration

import (
	"testing"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/tools/record"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"

	secretsv1alpha1 "github.com/openshift/ocp-secrets-management-operator/api/v1alpha1"
	smccontroller "github.com/openshift/ocp-secrets-management-operator/internal/controller/secretsmanagementconfig"
)

const testPluginImage = "registry.example.com/secrets/plugin:v1"

func newReconciler() *smccontroller.SecretsManagementConfigReconciler {
	return &smccontroller.SecretsManagementConfigReconciler{
		Client:             k8sClient,
		APIReader:          k8sClient,
		Scheme:             k8sScheme,
		Recorder:           record.NewFakeRecorder(100),
		DefaultPluginImage: testPluginImage,
	}
}

func reconcileConfig(t *testing.T, r *smccontroller.SecretsManagementConfigReconciler, name string) ctrl.Result {
	t.Helper()

	result, err := r.Reconcile(ctx, ctrl.Request{NamespacedName: types.NamespacedName{Name: name}})
	if err != nil {
		t.Fatalf("Reconcile(%s) error: %v", name, err)
	}
	return result
}

func getConfig(t *testing.T, name string) *secretsv1alpha1.SecretsManagementConfig {
	t.Helper()

	config := &secretsv1alpha1.SecretsManagementConfig{}
	if err := k8sClient.Get(ctx, types.NamespacedName{Name: name}, config); err != nil {
		t.Fatalf("get SecretsManagementConfig %s: %v", name, err)
	}
	return config
}

func requireGone(t *testing.T, key types.NamespacedName, obj client.Object) {
	t.Helper()

	err := k8sClient.Get(ctx, key, obj)
	if err == nil {
		t.Fatalf("expected %T %s to be deleted", obj, key)
	}
	if !apierrors.IsNotFound(err) {
		t.Fatalf("get %T %s: %v", obj, key, err)
	}
}

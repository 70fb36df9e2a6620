package infra

import (
	"context"
	"errors"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
	"sigs.k8s.io/controller-runtime/pkg/client/interceptor"

	secretsv1alpha1 "github.com/openshift/ocp-secrets-management-operator/api/v1alpha1"
	"github.com/openshift/ocp-secrets-management-operator/internal/constants"
	operatorerrors "github.com/openshift/ocp-secrets-management-operator/internal/errors"
	"github.com/openshift/ocp-secrets-management-operator/internal/status"
)

func newTestScheme(t *testing.T) *runtime.Scheme {
	t.Helper()
	scheme := runtime.NewScheme()
	require.NoError(t, clientgoscheme.AddToScheme(scheme))
	require.NoError(t, secretsv1alpha1.AddToScheme(scheme))
	return scheme
}

func newTestConfig() *secretsv1alpha1.SecretsManagementConfig {
	return &secretsv1alpha1.SecretsManagementConfig{
		ObjectMeta: metav1.ObjectMeta{
			Name:       "cluster",
			UID:        types.UID("11111111-2222-3333-4444-555555555555"),
			Generation: 1,
		},
	}
}

func pluginKey(name string) types.NamespacedName {
	return types.NamespacedName{Namespace: constants.PluginNamespace, Name: name}
}

func TestEnsureNamespace_CreatesWhenMissing(t *testing.T) {
	scheme := newTestScheme(t)
	c := fake.NewClientBuilder().WithScheme(scheme).Build()
	m := NewManager(c, scheme, testDefaultImage)

	require.NoError(t, m.EnsureNamespace(context.Background(), logr.Discard()))

	ns := &corev1.Namespace{}
	require.NoError(t, c.Get(context.Background(), types.NamespacedName{Name: constants.PluginNamespace}, ns))
	assert.Equal(t, constants.PluginLabels(), ns.Labels)
}

func TestEnsureNamespace_LeavesExistingNamespaceAlone(t *testing.T) {
	scheme := newTestScheme(t)
	existing := &corev1.Namespace{ObjectMeta: metav1.ObjectMeta{
		Name:   constants.PluginNamespace,
		Labels: map[string]string{"team": "security"},
	}}
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(existing).Build()
	m := NewManager(c, scheme, testDefaultImage)

	require.NoError(t, m.EnsureNamespace(context.Background(), logr.Discard()))

	ns := &corev1.Namespace{}
	require.NoError(t, c.Get(context.Background(), types.NamespacedName{Name: constants.PluginNamespace}, ns))
	assert.Equal(t, map[string]string{"team": "security"}, ns.Labels)
}

func TestNewManager_EmptyImageUsesProcessDefault(t *testing.T) {
	t.Setenv(constants.EnvPluginImage, "registry.example.com/override:v2")
	m := NewManager(nil, nil, "")
	assert.Equal(t, "registry.example.com/override:v2", m.defaultImage)
}

func TestReconcile_CreatesPluginWorkload(t *testing.T) {
	ctx := context.Background()
	scheme := newTestScheme(t)
	c := fake.NewClientBuilder().WithScheme(scheme).Build()
	m := NewManager(c, scheme, testDefaultImage)
	config := newTestConfig()

	require.NoError(t, m.Reconcile(ctx, logr.Discard(), config))

	sa := &corev1.ServiceAccount{}
	require.NoError(t, c.Get(ctx, pluginKey(constants.PluginResourceName), sa))
	assertControlledBy(t, sa, config)

	svc := &corev1.Service{}
	require.NoError(t, c.Get(ctx, pluginKey(constants.PluginResourceName), svc))
	assert.Equal(t, constants.PluginCertSecretName, svc.Annotations[constants.AnnotationServingCertSecretName])
	assertControlledBy(t, svc, config)

	cm := &corev1.ConfigMap{}
	require.NoError(t, c.Get(ctx, pluginKey(constants.NginxConfigMapName), cm))
	assert.Equal(t, nginxConf, cm.Data[constants.NginxConfigKey])
	assertControlledBy(t, cm, config)

	deploy := &appsv1.Deployment{}
	require.NoError(t, c.Get(ctx, pluginKey(constants.PluginResourceName), deploy))
	assert.Equal(t, testDefaultImage, deploy.Spec.Template.Spec.Containers[0].Image)
	assertControlledBy(t, deploy, config)

	assert.Equal(t, secretsv1alpha1.PluginStatus{
		DeploymentName:    constants.PluginResourceName,
		ServiceName:       constants.PluginResourceName,
		ConsolePluginName: constants.PluginName,
	}, config.Status.Plugin)

	cond := status.Get(config.Status.Conditions, secretsv1alpha1.ConditionPluginDeployed)
	require.NotNil(t, cond)
	assert.Equal(t, metav1.ConditionTrue, cond.Status)
	assert.Equal(t, constants.ReasonDeploymentReady, cond.Reason)
	assert.Equal(t, "Plugin deployment is ready", cond.Message)
}

func TestReconcile_ReportsAvailableReplicas(t *testing.T) {
	ctx := context.Background()
	scheme := newTestScheme(t)
	existing := &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: constants.PluginResourceName, Namespace: constants.PluginNamespace},
		Status:     appsv1.DeploymentStatus{AvailableReplicas: 2},
	}
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(existing).Build()
	m := NewManager(c, scheme, testDefaultImage)
	config := newTestConfig()

	require.NoError(t, m.Reconcile(ctx, logr.Discard(), config))

	assert.Equal(t, int32(2), config.Status.Plugin.AvailableReplicas)
	assert.True(t, config.Status.Plugin.Ready)
}

func TestReconcile_UpdatesServiceWithoutDroppingForeignFields(t *testing.T) {
	ctx := context.Background()
	scheme := newTestScheme(t)
	existing := &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{
			Name:        constants.PluginResourceName,
			Namespace:   constants.PluginNamespace,
			Labels:      map[string]string{"extra": "kept"},
			Annotations: map[string]string{"service.alpha.openshift.io/serving-cert-signed-by": "ca"},
		},
		Spec: corev1.ServiceSpec{
			ClusterIP: "172.30.10.20",
			Ports:     []corev1.ServicePort{{Name: "http", Port: 8080}},
		},
	}
	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(existing).Build()
	m := NewManager(c, scheme, testDefaultImage)

	require.NoError(t, m.Reconcile(ctx, logr.Discard(), newTestConfig()))

	svc := &corev1.Service{}
	require.NoError(t, c.Get(ctx, pluginKey(constants.PluginResourceName), svc))
	assert.Equal(t, "172.30.10.20", svc.Spec.ClusterIP)
	assert.Equal(t, "kept", svc.Labels["extra"])
	assert.Equal(t, constants.PluginName, svc.Labels[constants.LabelAppName])
	assert.Equal(t, "ca", svc.Annotations["service.alpha.openshift.io/serving-cert-signed-by"])
	assert.Equal(t, constants.PluginCertSecretName, svc.Annotations[constants.AnnotationServingCertSecretName])
	require.Len(t, svc.Spec.Ports, 1)
	assert.Equal(t, int32(constants.PortPlugin), svc.Spec.Ports[0].Port)
}

func TestReconcile_RestoresDriftedDeployment(t *testing.T) {
	ctx := context.Background()
	scheme := newTestScheme(t)
	c := fake.NewClientBuilder().WithScheme(scheme).Build()
	m := NewManager(c, scheme, testDefaultImage)
	config := newTestConfig()
	require.NoError(t, m.Reconcile(ctx, logr.Discard(), config))

	deploy := &appsv1.Deployment{}
	require.NoError(t, c.Get(ctx, pluginKey(constants.PluginResourceName), deploy))
	deploy.Spec.Template.Spec.Containers[0].Image = "registry.example.com/tampered:v0"
	deploy.Spec.Template.Annotations["kubectl.kubernetes.io/restartedAt"] = "2026-01-01T00:00:00Z"
	require.NoError(t, c.Update(ctx, deploy))

	require.NoError(t, m.Reconcile(ctx, logr.Discard(), config))

	require.NoError(t, c.Get(ctx, pluginKey(constants.PluginResourceName), deploy))
	assert.Equal(t, testDefaultImage, deploy.Spec.Template.Spec.Containers[0].Image)
	assert.Equal(t, "2026-01-01T00:00:00Z", deploy.Spec.Template.Annotations["kubectl.kubernetes.io/restartedAt"])
	assert.NotEmpty(t, deploy.Spec.Template.Annotations[constants.AnnotationConfigHash])
}

func TestReconcile_KeepsServerDefaultedDeploymentFields(t *testing.T) {
	ctx := context.Background()
	scheme := newTestScheme(t)
	c := fake.NewClientBuilder().WithScheme(scheme).Build()
	m := NewManager(c, scheme, testDefaultImage)
	config := newTestConfig()
	require.NoError(t, m.Reconcile(ctx, logr.Discard(), config))

	// Fill in what the API server defaults on a real cluster.
	deploy := &appsv1.Deployment{}
	require.NoError(t, c.Get(ctx, pluginKey(constants.PluginResourceName), deploy))
	deploy.Spec.Strategy = appsv1.DeploymentStrategy{Type: appsv1.RollingUpdateDeploymentStrategyType}
	deploy.Spec.RevisionHistoryLimit = ptr.To[int32](10)
	deploy.Spec.ProgressDeadlineSeconds = ptr.To[int32](600)
	deploy.Spec.Template.Spec.DNSPolicy = corev1.DNSClusterFirst
	deploy.Spec.Template.Spec.RestartPolicy = corev1.RestartPolicyAlways
	deploy.Spec.Template.Spec.SchedulerName = corev1.DefaultSchedulerName
	deploy.Spec.Template.Spec.TerminationGracePeriodSeconds = ptr.To[int64](30)
	deploy.Spec.Template.Spec.Containers[0].TerminationMessagePath = corev1.TerminationMessagePathDefault
	deploy.Spec.Template.Spec.Containers[0].TerminationMessagePolicy = corev1.TerminationMessageReadFile
	require.NoError(t, c.Update(ctx, deploy))
	defaulted := deploy.ResourceVersion

	require.NoError(t, m.Reconcile(ctx, logr.Discard(), config))

	after := &appsv1.Deployment{}
	require.NoError(t, c.Get(ctx, pluginKey(constants.PluginResourceName), after))
	assert.Equal(t, defaulted, after.ResourceVersion, "an unchanged Deployment must not be rewritten")
	assert.Equal(t, appsv1.RollingUpdateDeploymentStrategyType, after.Spec.Strategy.Type)
	assert.Equal(t, ptr.To[int32](10), after.Spec.RevisionHistoryLimit)
	assert.Equal(t, corev1.DNSClusterFirst, after.Spec.Template.Spec.DNSPolicy)
	assert.Equal(t, corev1.TerminationMessagePathDefault, after.Spec.Template.Spec.Containers[0].TerminationMessagePath)

	// A real change still goes through and keeps the defaulted fields.
	config.Spec.Plugin.Replicas = 3
	require.NoError(t, m.Reconcile(ctx, logr.Discard(), config))
	require.NoError(t, c.Get(ctx, pluginKey(constants.PluginResourceName), after))
	assert.Equal(t, ptr.To[int32](3), after.Spec.Replicas)
	assert.Equal(t, corev1.TerminationMessagePathDefault, after.Spec.Template.Spec.Containers[0].TerminationMessagePath)
	assert.Equal(t, corev1.DNSClusterFirst, after.Spec.Template.Spec.DNSPolicy)
}

func TestReconcile_InvalidQuantityCreatesNoDeployment(t *testing.T) {
	ctx := context.Background()
	scheme := newTestScheme(t)
	c := fake.NewClientBuilder().WithScheme(scheme).Build()
	m := NewManager(c, scheme, testDefaultImage)
	config := newTestConfig()
	config.Spec.Plugin.Resources.Limits.Memory = "not-a-number"

	err := m.Reconcile(ctx, logr.Discard(), config)
	require.Error(t, err)
	assert.True(t, operatorerrors.IsPermanent(err))
	assert.Contains(t, err.Error(), "spec.plugin.resources.limits.memory")

	err = c.Get(ctx, pluginKey(constants.PluginResourceName), &appsv1.Deployment{})
	assert.True(t, apierrors.IsNotFound(err))
	assert.Nil(t, status.Get(config.Status.Conditions, secretsv1alpha1.ConditionPluginDeployed))
}

func TestEnsureConsolePlugin_CreatesRegistration(t *testing.T) {
	ctx := context.Background()
	scheme := newTestScheme(t)
	c := fake.NewClientBuilder().WithScheme(scheme).Build()
	m := NewManager(c, scheme, testDefaultImage)
	config := newTestConfig()

	require.NoError(t, m.EnsureConsolePlugin(ctx, logr.Discard(), config))

	cp := getConsolePlugin(t, c)
	assert.Equal(t, constants.PluginLabels(), cp.GetLabels())
	assert.Empty(t, cp.GetOwnerReferences())

	port, found, err := unstructured.NestedInt64(cp.Object, "spec", "backend", "service", "port")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(constants.PortPlugin), port)
	assert.Equal(t, BuildConsolePlugin().Object["spec"], cp.Object["spec"])

	assert.True(t, status.IsTrue(config.Status.Conditions, secretsv1alpha1.ConditionConsolePluginRegistered))
}

func TestEnsureConsolePlugin_ReplacesSpecAndKeepsForeignMetadata(t *testing.T) {
	ctx := context.Background()
	scheme := newTestScheme(t)

	existing := &unstructured.Unstructured{}
	existing.SetGroupVersionKind(constants.ConsolePluginGVK)
	existing.SetName(constants.PluginName)
	existing.SetLabels(map[string]string{"extra": "kept"})
	existing.SetAnnotations(map[string]string{"console.openshift.io/note": "kept"})
	existing.Object["spec"] = map[string]interface{}{"displayName": "Stale"}

	c := fake.NewClientBuilder().WithScheme(scheme).WithObjects(existing).Build()
	m := NewManager(c, scheme, testDefaultImage)

	require.NoError(t, m.EnsureConsolePlugin(ctx, logr.Discard(), newTestConfig()))

	cp := getConsolePlugin(t, c)
	assert.Equal(t, "kept", cp.GetLabels()["extra"])
	assert.Equal(t, constants.LabelValueAppManagedBy, cp.GetLabels()[constants.LabelAppManagedBy])
	assert.Equal(t, "kept", cp.GetAnnotations()["console.openshift.io/note"])

	displayName, _, err := unstructured.NestedString(cp.Object, "spec", "displayName")
	require.NoError(t, err)
	assert.Equal(t, constants.ConsolePluginDisplayName, displayName)
}

func TestCleanup_RemovesPluginResources(t *testing.T) {
	ctx := context.Background()
	scheme := newTestScheme(t)
	c := fake.NewClientBuilder().WithScheme(scheme).Build()
	m := NewManager(c, scheme, testDefaultImage)
	config := newTestConfig()

	require.NoError(t, m.EnsureNamespace(ctx, logr.Discard()))
	require.NoError(t, m.Reconcile(ctx, logr.Discard(), config))
	require.NoError(t, m.EnsureConsolePlugin(ctx, logr.Discard(), config))

	require.NoError(t, m.CleanupConsolePlugin(ctx, logr.Discard()))
	require.NoError(t, m.CleanupPlugin(ctx, logr.Discard()))

	cp := &unstructured.Unstructured{}
	cp.SetGroupVersionKind(constants.ConsolePluginGVK)
	assert.True(t, apierrors.IsNotFound(c.Get(ctx, types.NamespacedName{Name: constants.PluginName}, cp)))

	for _, obj := range []client.Object{&appsv1.Deployment{}, &corev1.Service{}, &corev1.ServiceAccount{}} {
		err := c.Get(ctx, pluginKey(constants.PluginResourceName), obj)
		assert.True(t, apierrors.IsNotFound(err), "%T should be gone", obj)
	}
	assert.True(t, apierrors.IsNotFound(c.Get(ctx, pluginKey(constants.NginxConfigMapName), &corev1.ConfigMap{})))

	// The namespace is kept.
	require.NoError(t, c.Get(ctx, types.NamespacedName{Name: constants.PluginNamespace}, &corev1.Namespace{}))

	// Nothing left to delete is still success.
	require.NoError(t, m.CleanupConsolePlugin(ctx, logr.Discard()))
	require.NoError(t, m.CleanupPlugin(ctx, logr.Discard()))
}

func TestCleanupPlugin_ContinuesPastFailures(t *testing.T) {
	ctx := context.Background()
	scheme := newTestScheme(t)
	boom := errors.New("etcd unavailable")

	c := fake.NewClientBuilder().WithScheme(scheme).WithInterceptorFuncs(interceptor.Funcs{
		Delete: func(ctx context.Context, c client.WithWatch, obj client.Object, opts ...client.DeleteOption) error {
			if _, ok := obj.(*corev1.Service); ok {
				return boom
			}
			return c.Delete(ctx, obj, opts...)
		},
	}).Build()
	m := NewManager(c, scheme, testDefaultImage)
	require.NoError(t, m.Reconcile(ctx, logr.Discard(), newTestConfig()))

	err := m.CleanupPlugin(ctx, logr.Discard())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	assert.True(t, apierrors.IsNotFound(c.Get(ctx, pluginKey(constants.PluginResourceName), &appsv1.Deployment{})))
	assert.True(t, apierrors.IsNotFound(c.Get(ctx, pluginKey(constants.PluginResourceName), &corev1.ServiceAccount{})))
	assert.True(t, apierrors.IsNotFound(c.Get(ctx, pluginKey(constants.NginxConfigMapName), &corev1.ConfigMap{})))
	require.NoError(t, c.Get(ctx, pluginKey(constants.PluginResourceName), &corev1.Service{}))
}

func getConsolePlugin(t *testing.T, c client.Client) *unstructured.Unstructured {
	t.Helper()
	cp := &unstructured.Unstructured{}
	cp.SetGroupVersionKind(constants.ConsolePluginGVK)
	require.NoError(t, c.Get(context.Background(), types.NamespacedName{Name: constants.PluginName}, cp))
	return cp
}

func assertControlledBy(t *testing.T, obj metav1.Object, owner *secretsv1alpha1.SecretsManagementConfig) {
	t.Helper()
	ref := metav1.GetControllerOf(obj)
	require.NotNil(t, ref, "%s has no controller reference", obj.GetName())
	assert.Equal(t, owner.UID, ref.UID)
	assert.Equal(t, "SecretsManagementConfig", ref.Kind)
}

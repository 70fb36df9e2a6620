package infra

import (
	"fmt"

	"github.com/google/go-containerregistry/pkg/name"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/utils/ptr"

	secretsv1alpha1 "github.com/openshift/ocp-secrets-management-operator/api/v1alpha1"
	"github.com/openshift/ocp-secrets-management-operator/internal/constants"
	operatorerrors "github.com/openshift/ocp-secrets-management-operator/internal/errors"
	"github.com/openshift/ocp-secrets-management-operator/internal/revision"
)

// Default plugin container resources.
var (
	defaultRequestCPU    = resource.MustParse("10m")
	defaultRequestMemory = resource.MustParse("50Mi")
	defaultLimitCPU      = resource.MustParse("100m")
	defaultLimitMemory   = resource.MustParse("128Mi")
)

// BuildNamespace returns the plugin Namespace.
func BuildNamespace() *corev1.Namespace {
	return &corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{
			Name:   constants.PluginNamespace,
			Labels: constants.PluginLabels(),
		},
	}
}

// BuildServiceAccount returns the ServiceAccount the plugin pods run as.
func BuildServiceAccount() *corev1.ServiceAccount {
	return &corev1.ServiceAccount{
		ObjectMeta: metav1.ObjectMeta{
			Name:      constants.PluginResourceName,
			Namespace: constants.PluginNamespace,
			Labels:    constants.PluginLabels(),
		},
	}
}

// BuildService returns the plugin Service. The serving-cert annotation makes
// the service CA issue the TLS Secret mounted by the Deployment.
func BuildService() *corev1.Service {
	return &corev1.Service{
		ObjectMeta: metav1.ObjectMeta{
			Name:      constants.PluginResourceName,
			Namespace: constants.PluginNamespace,
			Labels:    constants.PluginLabels(),
			Annotations: map[string]string{
				constants.AnnotationServingCertSecretName: constants.PluginCertSecretName,
			},
		},
		Spec: corev1.ServiceSpec{
			Selector: constants.PluginSelectorLabels(),
			Ports: []corev1.ServicePort{
				{
					Name:       constants.PortNameHTTPS,
					Port:       constants.PortPlugin,
					TargetPort: intstr.FromInt32(constants.PortPlugin),
					Protocol:   corev1.ProtocolTCP,
				},
			},
		},
	}
}

// BuildNginxConfigMap returns the ConfigMap holding the proxy configuration.
func BuildNginxConfigMap() *corev1.ConfigMap {
	return &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:      constants.NginxConfigMapName,
			Namespace: constants.PluginNamespace,
			Labels:    constants.PluginLabels(),
		},
		Data: map[string]string{
			constants.NginxConfigKey: nginxConf,
		},
	}
}

// BuildDeployment returns the plugin Deployment for config. defaultImage is
// used when spec.plugin.image is empty.
//
// A malformed image reference or resource quantity is returned as a permanent
// configuration error naming the offending field.
func BuildDeployment(config *secretsv1alpha1.SecretsManagementConfig, defaultImage string) (*appsv1.Deployment, error) {
	plugin := config.Spec.Plugin

	image := plugin.Image
	if image == "" {
		image = defaultImage
	}
	if _, err := name.ParseReference(image); err != nil {
		return nil, operatorerrors.WrapPermanentConfig(fmt.Errorf("spec.plugin.image: invalid image reference %q: %w", image, err))
	}

	replicas := plugin.Replicas
	if replicas == 0 {
		replicas = secretsv1alpha1.DefaultPluginReplicas
	}

	resources, err := pluginResources(plugin.Resources)
	if err != nil {
		return nil, operatorerrors.WrapPermanentConfig(err)
	}

	podAnnotations := map[string]string{
		constants.AnnotationConfigHash: revision.ConfigRevision(BuildNginxConfigMap().Data),
	}

	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{
			Name:      constants.PluginResourceName,
			Namespace: constants.PluginNamespace,
			Labels:    constants.PluginLabels(),
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To(replicas),
			Selector: &metav1.LabelSelector{
				MatchLabels: constants.PluginSelectorLabels(),
			},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels:      constants.PluginPodLabels(),
					Annotations: podAnnotations,
				},
				Spec: corev1.PodSpec{
					ServiceAccountName: constants.PluginResourceName,
					SecurityContext: &corev1.PodSecurityContext{
						RunAsNonRoot: ptr.To(true),
						SeccompProfile: &corev1.SeccompProfile{
							Type: corev1.SeccompProfileTypeRuntimeDefault,
						},
					},
					Containers: []corev1.Container{
						{
							Name:            constants.ContainerNamePlugin,
							Image:           image,
							ImagePullPolicy: pullPolicy(plugin.ImagePullPolicy),
							Ports: []corev1.ContainerPort{
								{
									ContainerPort: constants.PortPlugin,
									Protocol:      corev1.ProtocolTCP,
								},
							},
							Resources: resources,
							SecurityContext: &corev1.SecurityContext{
								AllowPrivilegeEscalation: ptr.To(false),
								Capabilities: &corev1.Capabilities{
									Drop: []corev1.Capability{"ALL"},
								},
							},
							VolumeMounts: []corev1.VolumeMount{
								{
									Name:      constants.VolumePluginCert,
									MountPath: constants.PathPluginCert,
									ReadOnly:  true,
								},
								{
									Name:      constants.VolumeNginxConf,
									MountPath: constants.PathNginxConf,
									SubPath:   constants.NginxConfigKey,
									ReadOnly:  true,
								},
							},
						},
					},
					Volumes: []corev1.Volume{
						{
							Name: constants.VolumePluginCert,
							VolumeSource: corev1.VolumeSource{
								Secret: &corev1.SecretVolumeSource{
									SecretName:  constants.PluginCertSecretName,
									DefaultMode: ptr.To(constants.DefaultVolumeMode),
								},
							},
						},
						{
							Name: constants.VolumeNginxConf,
							VolumeSource: corev1.VolumeSource{
								ConfigMap: &corev1.ConfigMapVolumeSource{
									LocalObjectReference: corev1.LocalObjectReference{
										Name: constants.NginxConfigMapName,
									},
									DefaultMode: ptr.To(constants.DefaultVolumeMode),
								},
							},
						},
					},
				},
			},
		},
	}, nil
}

func pullPolicy(policy string) corev1.PullPolicy {
	switch corev1.PullPolicy(policy) {
	case corev1.PullAlways:
		return corev1.PullAlways
	case corev1.PullNever:
		return corev1.PullNever
	default:
		return corev1.PullIfNotPresent
	}
}

// pluginResources overlays the configured quantities on the defaults. Each
// field is optional; a present field must parse as a quantity.
func pluginResources(cfg secretsv1alpha1.ResourceConfig) (corev1.ResourceRequirements, error) {
	resources := corev1.ResourceRequirements{
		Requests: corev1.ResourceList{
			corev1.ResourceCPU:    defaultRequestCPU.DeepCopy(),
			corev1.ResourceMemory: defaultRequestMemory.DeepCopy(),
		},
		Limits: corev1.ResourceList{
			corev1.ResourceCPU:    defaultLimitCPU.DeepCopy(),
			corev1.ResourceMemory: defaultLimitMemory.DeepCopy(),
		},
	}

	overrides := []struct {
		field string
		value string
		list  corev1.ResourceList
		name  corev1.ResourceName
	}{
		{"spec.plugin.resources.requests.cpu", cfg.Requests.CPU, resources.Requests, corev1.ResourceCPU},
		{"spec.plugin.resources.requests.memory", cfg.Requests.Memory, resources.Requests, corev1.ResourceMemory},
		{"spec.plugin.resources.limits.cpu", cfg.Limits.CPU, resources.Limits, corev1.ResourceCPU},
		{"spec.plugin.resources.limits.memory", cfg.Limits.Memory, resources.Limits, corev1.ResourceMemory},
	}

	for _, o := range overrides {
		if o.value == "" {
			continue
		}
		q, err := resource.ParseQuantity(o.value)
		if err != nil {
			return corev1.ResourceRequirements{}, fmt.Errorf("%s: invalid quantity %q: %w", o.field, o.value, err)
		}
		o.list[o.name] = q
	}

	return resources, nil
}

// BuildConsolePlugin returns the ConsolePlugin registration pointing the
// console at the plugin Service.
func BuildConsolePlugin() *unstructured.Unstructured {
	u := &unstructured.Unstructured{}
	u.SetGroupVersionKind(constants.ConsolePluginGVK)
	u.SetName(constants.PluginName)
	u.SetLabels(constants.PluginLabels())
	u.Object["spec"] = consolePluginSpec()
	return u
}

func consolePluginSpec() map[string]interface{} {
	return map[string]interface{}{
		"displayName": constants.ConsolePluginDisplayName,
		"backend": map[string]interface{}{
			"type": "Service",
			"service": map[string]interface{}{
				"name":      constants.PluginResourceName,
				"namespace": constants.PluginNamespace,
				// unstructured content only accepts int64 numbers
				"port":     int64(constants.PortPlugin),
				"basePath": constants.ConsolePluginBasePath,
			},
		},
	}
}

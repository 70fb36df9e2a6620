package infra

import (
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/util/intstr"

	secretsv1alpha1 "github.com/openshift/ocp-secrets-management-operator/api/v1alpha1"
	"github.com/openshift/ocp-secrets-management-operator/internal/constants"
	operatorerrors "github.com/openshift/ocp-secrets-management-operator/internal/errors"
	"github.com/openshift/ocp-secrets-management-operator/internal/revision"
)

const testDefaultImage = "registry.example.com/secrets/plugin:v1"

var _ = Describe("Plugin builders", func() {
	var config *secretsv1alpha1.SecretsManagementConfig

	BeforeEach(func() {
		config = &secretsv1alpha1.SecretsManagementConfig{}
		config.Name = "cluster"
	})

	Describe("BuildNamespace", func() {
		It("labels the plugin namespace", func() {
			ns := BuildNamespace()
			Expect(ns.Name).To(Equal("openshift-secrets-management"))
			Expect(ns.Labels).To(Equal(constants.PluginLabels()))
		})
	})

	Describe("BuildService", func() {
		It("exposes the plugin over https and requests a serving certificate", func() {
			svc := BuildService()
			Expect(svc.Name).To(Equal("ocp-secrets-management-plugin"))
			Expect(svc.Namespace).To(Equal(constants.PluginNamespace))
			Expect(svc.Annotations).To(HaveKeyWithValue(
				"service.alpha.openshift.io/serving-cert-secret-name", "ocp-secrets-management-plugin-cert"))
			Expect(svc.Spec.Selector).To(Equal(map[string]string{"app.kubernetes.io/name": "ocp-secrets-management"}))
			Expect(svc.Spec.Ports).To(ConsistOf(corev1.ServicePort{
				Name:       "https",
				Port:       9443,
				TargetPort: intstr.FromInt32(9443),
				Protocol:   corev1.ProtocolTCP,
			}))
		})
	})

	Describe("BuildNginxConfigMap", func() {
		It("carries the proxy configuration verbatim", func() {
			cm := BuildNginxConfigMap()
			Expect(cm.Name).To(Equal("ocp-secrets-management-nginx-conf"))
			Expect(cm.Data).To(HaveLen(1))

			conf := cm.Data["nginx.conf"]
			Expect(conf).To(Equal(nginxConf))
			Expect(conf).To(HavePrefix("\nerror_log /dev/stdout info;\nevents {}\n"))
			Expect(conf).To(HaveSuffix("    }\n  }\n}\n"))
			Expect(conf).To(ContainSubstring("    listen 9443 ssl;\n"))
			Expect(conf).To(ContainSubstring("      alias /usr/share/nginx/html/plugin-manifest.json;\n"))
			Expect(conf).To(ContainSubstring("      return 200 'OK';\n"))
			Expect(strings.Contains(conf, "\t")).To(BeFalse())
		})
	})

	Describe("BuildDeployment", func() {
		It("applies defaults to an empty plugin spec", func() {
			deploy, err := BuildDeployment(config, testDefaultImage)
			Expect(err).NotTo(HaveOccurred())

			Expect(deploy.Name).To(Equal(constants.PluginResourceName))
			Expect(deploy.Namespace).To(Equal(constants.PluginNamespace))
			Expect(*deploy.Spec.Replicas).To(Equal(int32(2)))
			Expect(deploy.Spec.Selector.MatchLabels).To(Equal(constants.PluginSelectorLabels()))
			Expect(deploy.Spec.Template.Labels).To(Equal(map[string]string{
				"app.kubernetes.io/name":    "ocp-secrets-management",
				"app.kubernetes.io/part-of": "ocp-secrets-management",
			}))

			pod := deploy.Spec.Template.Spec
			Expect(pod.ServiceAccountName).To(Equal(constants.PluginResourceName))
			Expect(*pod.SecurityContext.RunAsNonRoot).To(BeTrue())
			Expect(pod.SecurityContext.SeccompProfile.Type).To(Equal(corev1.SeccompProfileTypeRuntimeDefault))

			Expect(pod.Containers).To(HaveLen(1))
			c := pod.Containers[0]
			Expect(c.Name).To(Equal("plugin"))
			Expect(c.Image).To(Equal(testDefaultImage))
			Expect(c.ImagePullPolicy).To(Equal(corev1.PullIfNotPresent))
			Expect(c.Ports).To(ConsistOf(corev1.ContainerPort{ContainerPort: 9443, Protocol: corev1.ProtocolTCP}))
			Expect(*c.SecurityContext.AllowPrivilegeEscalation).To(BeFalse())
			Expect(c.SecurityContext.Capabilities.Drop).To(ConsistOf(corev1.Capability("ALL")))

			Expect(c.Resources.Requests.Cpu().Equal(resource.MustParse("10m"))).To(BeTrue())
			Expect(c.Resources.Requests.Memory().Equal(resource.MustParse("50Mi"))).To(BeTrue())
			Expect(c.Resources.Limits.Cpu().Equal(resource.MustParse("100m"))).To(BeTrue())
			Expect(c.Resources.Limits.Memory().Equal(resource.MustParse("128Mi"))).To(BeTrue())

			Expect(c.VolumeMounts).To(HaveLen(2))
			Expect(c.VolumeMounts[0].MountPath).To(Equal("/var/cert"))
			Expect(c.VolumeMounts[0].ReadOnly).To(BeTrue())
			Expect(c.VolumeMounts[1].MountPath).To(Equal("/etc/nginx/nginx.conf"))
			Expect(c.VolumeMounts[1].SubPath).To(Equal("nginx.conf"))

			Expect(pod.Volumes).To(HaveLen(2))
			Expect(pod.Volumes[0].Secret.SecretName).To(Equal(constants.PluginCertSecretName))
			Expect(*pod.Volumes[0].Secret.DefaultMode).To(Equal(int32(420)))
			Expect(pod.Volumes[1].ConfigMap.Name).To(Equal(constants.NginxConfigMapName))
			Expect(*pod.Volumes[1].ConfigMap.DefaultMode).To(Equal(int32(420)))
		})

		It("honours the configured image, pull policy, replicas and resources", func() {
			config.Spec.Plugin = secretsv1alpha1.PluginConfig{
				Image:           "quay.io/example/plugin@sha256:" + strings.Repeat("a", 64),
				ImagePullPolicy: "Always",
				Replicas:        3,
				Resources: secretsv1alpha1.ResourceConfig{
					Requests: secretsv1alpha1.ResourceRequirements{CPU: "20m"},
					Limits:   secretsv1alpha1.ResourceRequirements{Memory: "256Mi"},
				},
			}

			deploy, err := BuildDeployment(config, testDefaultImage)
			Expect(err).NotTo(HaveOccurred())

			Expect(*deploy.Spec.Replicas).To(Equal(int32(3)))
			c := deploy.Spec.Template.Spec.Containers[0]
			Expect(c.Image).To(Equal(config.Spec.Plugin.Image))
			Expect(c.ImagePullPolicy).To(Equal(corev1.PullAlways))
			Expect(c.Resources.Requests.Cpu().Equal(resource.MustParse("20m"))).To(BeTrue())
			Expect(c.Resources.Requests.Memory().Equal(resource.MustParse("50Mi"))).To(BeTrue())
			Expect(c.Resources.Limits.Cpu().Equal(resource.MustParse("100m"))).To(BeTrue())
			Expect(c.Resources.Limits.Memory().Equal(resource.MustParse("256Mi"))).To(BeTrue())
		})

		It("falls back to IfNotPresent for an unknown pull policy", func() {
			config.Spec.Plugin.ImagePullPolicy = "Sometimes"
			deploy, err := BuildDeployment(config, testDefaultImage)
			Expect(err).NotTo(HaveOccurred())
			Expect(deploy.Spec.Template.Spec.Containers[0].ImagePullPolicy).To(Equal(corev1.PullIfNotPresent))
		})

		It("stamps the proxy configuration hash on the pod template", func() {
			deploy, err := BuildDeployment(config, testDefaultImage)
			Expect(err).NotTo(HaveOccurred())
			Expect(deploy.Spec.Template.Annotations).To(HaveKeyWithValue(
				constants.AnnotationConfigHash, revision.ConfigRevision(BuildNginxConfigMap().Data)))
		})

		DescribeTable("rejects unparsable quantities",
			func(field string, set func(*secretsv1alpha1.ResourceConfig)) {
				set(&config.Spec.Plugin.Resources)

				deploy, err := BuildDeployment(config, testDefaultImage)
				Expect(deploy).To(BeNil())
				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring(field))
				Expect(errors.Is(err, operatorerrors.ErrPermanentConfig)).To(BeTrue())
			},
			Entry("requests.cpu", "spec.plugin.resources.requests.cpu",
				func(r *secretsv1alpha1.ResourceConfig) { r.Requests.CPU = "not-a-number" }),
			Entry("requests.memory", "spec.plugin.resources.requests.memory",
				func(r *secretsv1alpha1.ResourceConfig) { r.Requests.Memory = "not-a-number" }),
			Entry("limits.cpu", "spec.plugin.resources.limits.cpu",
				func(r *secretsv1alpha1.ResourceConfig) { r.Limits.CPU = "not-a-number" }),
			Entry("limits.memory", "spec.plugin.resources.limits.memory",
				func(r *secretsv1alpha1.ResourceConfig) { r.Limits.Memory = "not-a-number" }),
		)

		It("rejects a malformed image reference", func() {
			config.Spec.Plugin.Image = "Invalid Image::"
			_, err := BuildDeployment(config, testDefaultImage)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("spec.plugin.image"))
			Expect(errors.Is(err, operatorerrors.ErrPermanentConfig)).To(BeTrue())
		})
	})

	Describe("BuildConsolePlugin", func() {
		It("points the console at the plugin Service", func() {
			cp := BuildConsolePlugin()
			Expect(cp.GroupVersionKind()).To(Equal(constants.ConsolePluginGVK))
			Expect(cp.GetName()).To(Equal("ocp-secrets-management"))
			Expect(cp.GetLabels()).To(Equal(constants.PluginLabels()))

			displayName, _, err := unstructured.NestedString(cp.Object, "spec", "displayName")
			Expect(err).NotTo(HaveOccurred())
			Expect(displayName).To(Equal("OCP Secrets Management"))

			service, found, err := unstructured.NestedMap(cp.Object, "spec", "backend", "service")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeTrue())
			Expect(service).To(Equal(map[string]interface{}{
				"name":      "ocp-secrets-management-plugin",
				"namespace": "openshift-secrets-management",
				"port":      int64(9443),
				"basePath":  "/",
			}))

			backendType, _, _ := unstructured.NestedString(cp.Object, "spec", "backend", "type")
			Expect(backendType).To(Equal("Service"))
		})
	})
})

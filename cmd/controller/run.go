/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package controller

import (
	"crypto/tls"
	"errors"
	"flag"
	"fmt"
	"strings"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	rbacv1 "k8s.io/api/rbac/v1"
	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/cache"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/controller-runtime/pkg/metrics/filters"
	metricsserver "sigs.k8s.io/controller-runtime/pkg/metrics/server"

	secretsv1alpha1 "github.com/openshift/ocp-secrets-management-operator/api/v1alpha1"
	"github.com/openshift/ocp-secrets-management-operator/internal/constants"
	smccontroller "github.com/openshift/ocp-secrets-management-operator/internal/controller/secretsmanagementconfig"
)

const leaderElectionID = "secrets-management-operator.secrets-management.openshift.io"

var (
	scheme   = runtime.NewScheme()
	setupLog = ctrl.Log.WithName("setup")
)

func init() {
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	utilruntime.Must(apiextensionsv1.AddToScheme(scheme))
	utilruntime.Must(secretsv1alpha1.AddToScheme(scheme))
}

// options holds the command-line configuration of the controller manager.
type options struct {
	metricsAddr             string
	metricsCertPath         string
	metricsCertName         string
	metricsCertKey          string
	probeAddr               string
	enableLeaderElection    bool
	secureMetrics           bool
	enableHTTP2             bool
	pluginImage             string
	maxConcurrentReconciles int
	zapOptions              zap.Options
}

func parseOptions(args []string) (*options, error) {
	opts := &options{
		zapOptions: zap.Options{
			Development: true,
		},
	}

	fs := flag.NewFlagSet("controller", flag.ContinueOnError)
	fs.StringVar(&opts.metricsAddr, "metrics-bind-address", ":8443", "The address the metrics endpoint binds to.")
	fs.StringVar(&opts.probeAddr, "health-probe-bind-address", ":8081", "The address the probe endpoint binds to.")
	fs.BoolVar(&opts.enableLeaderElection, "leader-elect", false,
		"Enable leader election for controller manager. "+
			"Enabling this will ensure there is only one active controller manager.")
	fs.BoolVar(&opts.secureMetrics, "metrics-secure", true,
		"If set, the metrics endpoint is served securely via HTTPS. Use --metrics-secure=false to use HTTP instead.")
	fs.StringVar(&opts.metricsCertPath, "metrics-cert-path", "",
		"The directory that contains the metrics server certificate.")
	fs.StringVar(&opts.metricsCertName, "metrics-cert-name", "tls.crt", "The name of the metrics server certificate file.")
	fs.StringVar(&opts.metricsCertKey, "metrics-cert-key", "tls.key", "The name of the metrics server key file.")
	fs.BoolVar(&opts.enableHTTP2, "enable-http2", false,
		"If set, HTTP/2 will be enabled for the metrics server")
	fs.StringVar(&opts.pluginImage, "plugin-image", constants.DefaultPluginImage(),
		"Console plugin image used when a SecretsManagementConfig does not set spec.plugin.image. "+
			"Defaults to $"+constants.EnvPluginImage+" or the built-in image.")
	fs.IntVar(&opts.maxConcurrentReconciles, "max-concurrent-reconciles", 1,
		"Maximum number of SecretsManagementConfig objects reconciled in parallel.")
	opts.zapOptions.BindFlags(fs)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts.pluginImage = strings.TrimSpace(opts.pluginImage)
	if opts.pluginImage == "" {
		return nil, errors.New("--plugin-image must not be empty")
	}
	if opts.maxConcurrentReconciles < 1 {
		return nil, fmt.Errorf("--max-concurrent-reconciles must be at least 1, got %d", opts.maxConcurrentReconciles)
	}
	return opts, nil
}

func (o *options) metricsServerOptions() metricsserver.Options {
	var tlsOpts []func(*tls.Config)

	// if the enable-http2 flag is false (the default), http/2 should be disabled
	// due to its vulnerabilities. More specifically, disabling http/2 will
	// prevent from being vulnerable to the HTTP/2 Stream Cancellation and
	// Rapid Reset CVEs. For more information see:
	// - https://github.com/advisories/GHSA-qppj-fm5r-hxr3
	// - https://github.com/advisories/GHSA-4374-p667-p6c8
	if !o.enableHTTP2 {
		tlsOpts = append(tlsOpts, func(c *tls.Config) {
			setupLog.Info("disabling http/2")
			c.NextProtos = []string{"http/1.1"}
		})
	}

	metricsServerOptions := metricsserver.Options{
		BindAddress:   o.metricsAddr,
		SecureServing: o.secureMetrics,
		TLSOpts:       tlsOpts,
	}

	if o.secureMetrics {
		// FilterProvider is used to protect the metrics endpoint with authn/authz.
		metricsServerOptions.FilterProvider = filters.WithAuthenticationAndAuthorization
	}

	if len(o.metricsCertPath) > 0 {
		setupLog.Info("Initializing metrics certificate watcher using provided certificates",
			"metrics-cert-path", o.metricsCertPath, "metrics-cert-name", o.metricsCertName, "metrics-cert-key", o.metricsCertKey)

		metricsServerOptions.CertDir = o.metricsCertPath
		metricsServerOptions.CertName = o.metricsCertName
		metricsServerOptions.KeyName = o.metricsCertKey
	}

	return metricsServerOptions
}

// managerOptions builds the manager configuration.
//
// The namespaced plugin resources only ever live in the plugin namespace, so
// their informers are restricted to it. Namespaces and ClusterRoles are read
// directly: the operator touches a handful of named objects and has no reason
// to hold every one of them in memory. CustomResourceDefinitions are read
// through the manager's API reader and never cached.
func (o *options) managerOptions() ctrl.Options {
	pluginNamespaceOnly := cache.ByObject{
		Namespaces: map[string]cache.Config{constants.PluginNamespace: {}},
	}

	return ctrl.Options{
		Scheme:                 scheme,
		Metrics:                o.metricsServerOptions(),
		HealthProbeBindAddress: o.probeAddr,
		LeaderElection:         o.enableLeaderElection,
		LeaderElectionID:       leaderElectionID,
		Cache: cache.Options{
			ByObject: map[client.Object]cache.ByObject{
				&appsv1.Deployment{}:     pluginNamespaceOnly,
				&corev1.Service{}:        pluginNamespaceOnly,
				&corev1.ServiceAccount{}: pluginNamespaceOnly,
				&corev1.ConfigMap{}:      pluginNamespaceOnly,
			},
		},
		Client: client.Options{
			Cache: &client.CacheOptions{
				DisableFor: []client.Object{
					&corev1.Namespace{},
					&rbacv1.ClusterRole{},
					&apiextensionsv1.CustomResourceDefinition{},
				},
			},
		},
	}
}

// Run starts the SecretsManagementConfig controller manager.
// The controller deploys the secrets management console plugin, registers it
// with the OpenShift console and maintains the default ClusterRoles.
func Run(args []string) error {
	opts, err := parseOptions(args)
	if err != nil {
		return fmt.Errorf("invalid controller flags: %w", err)
	}

	ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts.zapOptions)))

	mgr, err := ctrl.NewManager(ctrl.GetConfigOrDie(), opts.managerOptions())
	if err != nil {
		return fmt.Errorf("unable to start manager: %w", err)
	}

	setupLog.Info("Using console plugin image", "image", opts.pluginImage)

	if err := (&smccontroller.SecretsManagementConfigReconciler{
		Client:                  mgr.GetClient(),
		APIReader:               mgr.GetAPIReader(),
		Scheme:                  mgr.GetScheme(),
		Recorder:                mgr.GetEventRecorderFor(constants.ControllerNameSecretsManagementConfig),
		DefaultPluginImage:      opts.pluginImage,
		MaxConcurrentReconciles: opts.maxConcurrentReconciles,
	}).SetupWithManager(mgr); err != nil {
		return fmt.Errorf("unable to create controller %s: %w", constants.ControllerNameSecretsManagementConfig, err)
	}

	if err := mgr.AddHealthzCheck("healthz", healthz.Ping); err != nil {
		return fmt.Errorf("unable to set up health check: %w", err)
	}
	if err := mgr.AddReadyzCheck("readyz", healthz.Ping); err != nil {
		return fmt.Errorf("unable to set up ready check: %w", err)
	}

	setupLog.Info("starting controller manager")
	if err := mgr.Start(ctrl.SetupSignalHandler()); err != nil {
		return fmt.Errorf("problem running manager: %w", err)
	}
	return nil
}

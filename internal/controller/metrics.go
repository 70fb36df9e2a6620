package controller

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"

	secretsv1alpha1 "github.com/openshift/ocp-secrets-management-operator/api/v1alpha1"
)

const metricsNamespace = "secrets_management"

var (
	reconcileDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "reconcile_duration_seconds",
			Help:      "Duration of reconciliation loops in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"name", "controller"},
	)

	reconcileErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "reconcile_errors_total",
			Help:      "Total number of reconciliation errors",
		},
		[]string{"name", "controller", "reason"},
	)

	configPhaseGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "config_phase",
			Help:      "Current phase of a SecretsManagementConfig (1 = active phase)",
		},
		[]string{"name", "phase"},
	)

	pluginAvailableReplicasGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "plugin_available_replicas",
			Help:      "Number of available console plugin replicas",
		},
		[]string{"name"},
	)

	operatorInstalledGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "operator_installed",
			Help:      "Whether a peer secrets operator was detected (1 = installed)",
		},
		[]string{"name", "operator"},
	)
)

var configPhases = []secretsv1alpha1.ConfigPhase{
	secretsv1alpha1.ConfigPhasePending,
	secretsv1alpha1.ConfigPhaseDeploying,
	secretsv1alpha1.ConfigPhaseReady,
	secretsv1alpha1.ConfigPhaseDegraded,
	secretsv1alpha1.ConfigPhaseError,
}

func init() {
	metrics.Registry.MustRegister(
		reconcileDurationHistogram,
		reconcileErrorsTotal,
		configPhaseGauge,
		pluginAvailableReplicasGauge,
		operatorInstalledGauge,
	)
}

// ReconcileMetrics provides helpers to record reconcile-level metrics for a
// specific controller and SecretsManagementConfig.
type ReconcileMetrics struct {
	name       string
	controller string
}

// NewReconcileMetrics creates a new ReconcileMetrics instance.
func NewReconcileMetrics(name, controller string) *ReconcileMetrics {
	return &ReconcileMetrics{
		name:       name,
		controller: controller,
	}
}

// ObserveDuration records the duration of a reconcile loop in seconds.
func (m *ReconcileMetrics) ObserveDuration(durationSeconds float64) {
	reconcileDurationHistogram.
		WithLabelValues(m.name, m.controller).
		Observe(durationSeconds)
}

// IncrementError increments the reconcile error counter with the given reason.
// Reason values should be low-cardinality strings (see internal/errors.Reason).
func (m *ReconcileMetrics) IncrementError(reason string) {
	reconcileErrorsTotal.
		WithLabelValues(m.name, m.controller, reason).
		Inc()
}

// ConfigMetrics records per-object state metrics for a SecretsManagementConfig.
type ConfigMetrics struct {
	name string
}

// NewConfigMetrics creates a new ConfigMetrics instance.
func NewConfigMetrics(name string) *ConfigMetrics {
	return &ConfigMetrics{name: name}
}

// SetPhase sets the gauge for phase to 1 and every other phase to 0.
func (m *ConfigMetrics) SetPhase(phase secretsv1alpha1.ConfigPhase) {
	for _, p := range configPhases {
		value := 0.0
		if p == phase {
			value = 1.0
		}
		configPhaseGauge.WithLabelValues(m.name, string(p)).Set(value)
	}
}

// SetPluginAvailableReplicas records the available replicas of the plugin Deployment.
func (m *ConfigMetrics) SetPluginAvailableReplicas(available int32) {
	pluginAvailableReplicasGauge.WithLabelValues(m.name).Set(float64(available))
}

// SetOperatorInstalled records whether the peer operator identified by id was detected.
func (m *ConfigMetrics) SetOperatorInstalled(id string, installed bool) {
	value := 0.0
	if installed {
		value = 1.0
	}
	operatorInstalledGauge.WithLabelValues(m.name, id).Set(value)
}

// Clear removes all per-object series. It is called during finalization so
// deleted objects leave no stale series behind.
func (m *ConfigMetrics) Clear() {
	labels := prometheus.Labels{"name": m.name}
	configPhaseGauge.DeletePartialMatch(labels)
	pluginAvailableReplicasGauge.DeletePartialMatch(labels)
	operatorInstalledGauge.DeletePartialMatch(labels)
}

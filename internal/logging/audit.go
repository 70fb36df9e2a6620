package logging

import (
	"sort"

	"github.com/go-logr/logr"
)

// Audit event types emitted by the operator.
const (
	EventFinalizerAdded        = "FinalizerAdded"
	EventFinalizerRemoved      = "FinalizerRemoved"
	EventClusterRoleReconciled = "ClusterRoleReconciled"
	EventConsolePluginWritten  = "ConsolePluginWritten"
)

// LogAuditEvent logs a structured audit event for operator actions.
// Audit events are tagged with "audit=true" for filtering in log aggregation
// systems. Fields are emitted in key order.
func LogAuditEvent(logger logr.Logger, eventType string, fields map[string]string) {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	kv := make([]any, 0, 4+2*len(keys))
	kv = append(kv, "audit", "true", "event_type", eventType)
	for _, key := range keys {
		kv = append(kv, key, fields[key])
	}
	logger.WithValues(kv...).Info("Operator audit event")
}

package status

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	secretsv1alpha1 "github.com/openshift/ocp-secrets-management-operator/api/v1alpha1"
)

// Set adds or updates a condition in the condition slice.
//
// An existing condition of the same type keeps its position. It is only
// rewritten, with a fresh LastTransitionTime, when its status changes; an
// unchanged status leaves the entry untouched, including reason and message.
// A missing condition is appended.
func Set(conditions *[]secretsv1alpha1.Condition, conditionType secretsv1alpha1.ConditionType, status metav1.ConditionStatus, reason, message string) {
	setAt(conditions, conditionType, status, reason, message, metav1.Now())
}

func setAt(conditions *[]secretsv1alpha1.Condition, conditionType secretsv1alpha1.ConditionType, status metav1.ConditionStatus, reason, message string, now metav1.Time) {
	if conditions == nil {
		return
	}

	for i := range *conditions {
		existing := &(*conditions)[i]
		if existing.Type != conditionType {
			continue
		}
		if existing.Status == status {
			return
		}
		*existing = secretsv1alpha1.Condition{
			Type:               conditionType,
			Status:             status,
			Reason:             reason,
			Message:            message,
			LastTransitionTime: now,
		}
		return
	}

	*conditions = append(*conditions, secretsv1alpha1.Condition{
		Type:               conditionType,
		Status:             status,
		Reason:             reason,
		Message:            message,
		LastTransitionTime: now,
	})
}

// True sets a condition to True status.
func True(conditions *[]secretsv1alpha1.Condition, conditionType secretsv1alpha1.ConditionType, reason, message string) {
	Set(conditions, conditionType, metav1.ConditionTrue, reason, message)
}

// False sets a condition to False status.
func False(conditions *[]secretsv1alpha1.Condition, conditionType secretsv1alpha1.ConditionType, reason, message string) {
	Set(conditions, conditionType, metav1.ConditionFalse, reason, message)
}

// Get returns the condition with the given type, or nil if not found.
func Get(conditions []secretsv1alpha1.Condition, conditionType secretsv1alpha1.ConditionType) *secretsv1alpha1.Condition {
	for i := range conditions {
		if conditions[i].Type == conditionType {
			return &conditions[i]
		}
	}
	return nil
}

// IsTrue returns true if the condition with the given type has Status=True.
func IsTrue(conditions []secretsv1alpha1.Condition, conditionType secretsv1alpha1.ConditionType) bool {
	c := Get(conditions, conditionType)
	return c != nil && c.Status == metav1.ConditionTrue
}

// Package detection records which peer secrets operators are installed by
// looking up their CustomResourceDefinitions.
package detection

import (
	"context"
	"errors"
	"fmt"

	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	secretsv1alpha1 "github.com/openshift/ocp-secrets-management-operator/api/v1alpha1"
	"github.com/openshift/ocp-secrets-management-operator/internal/constants"
	operatorerrors "github.com/openshift/ocp-secrets-management-operator/internal/errors"
)

// Peer operator identifiers, used as metric labels.
const (
	OperatorCertManager     = "certManager"
	OperatorExternalSecrets = "externalSecrets"
	OperatorSecretsStoreCSI = "secretsStoreCSI"
)

type peerOperator struct {
	id      string
	crdName string
	field   func(*secretsv1alpha1.DetectedOperatorsStatus) *secretsv1alpha1.DetectedOperator
}

var peerOperators = []peerOperator{
	{
		id:      OperatorCertManager,
		crdName: constants.CRDCertManagerCertificates,
		field: func(s *secretsv1alpha1.DetectedOperatorsStatus) *secretsv1alpha1.DetectedOperator {
			return &s.CertManager
		},
	},
	{
		id:      OperatorExternalSecrets,
		crdName: constants.CRDExternalSecrets,
		field: func(s *secretsv1alpha1.DetectedOperatorsStatus) *secretsv1alpha1.DetectedOperator {
			return &s.ExternalSecrets
		},
	},
	{
		id:      OperatorSecretsStoreCSI,
		crdName: constants.CRDSecretsStoreSecretProviderClasses,
		field: func(s *secretsv1alpha1.DetectedOperatorsStatus) *secretsv1alpha1.DetectedOperator {
			return &s.SecretsStoreCSI
		},
	},
}

// Detector looks up peer operator CRDs.
type Detector struct {
	reader client.Reader
}

// NewDetector returns a Detector reading through r. CRDs are not cached by the
// manager, so r is normally the manager's API reader.
func NewDetector(r client.Reader) *Detector {
	return &Detector{reader: r}
}

// Detect updates config.Status.DetectedOperators. An operator is installed
// only when its CRD lookup succeeds; a missing CRD or a failed lookup both
// record it as not installed. Lookup failures other than a missing CRD are
// returned, joined with the others, once all operators have been checked.
func (d *Detector) Detect(ctx context.Context, config *secretsv1alpha1.SecretsManagementConfig) error {
	var errs []error
	for _, op := range peerOperators {
		detected, err := d.detect(ctx, op.crdName)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to detect %s (%s): %w", op.id, op.crdName, err))
		}
		*op.field(&config.Status.DetectedOperators) = detected
	}
	return errors.Join(errs...)
}

func (d *Detector) detect(ctx context.Context, crdName string) (secretsv1alpha1.DetectedOperator, error) {
	crd := &apiextensionsv1.CustomResourceDefinition{}
	if err := d.reader.Get(ctx, types.NamespacedName{Name: crdName}, crd); err != nil {
		if apierrors.IsNotFound(err) || operatorerrors.IsCRDMissingError(err) {
			return secretsv1alpha1.DetectedOperator{}, nil
		}
		return secretsv1alpha1.DetectedOperator{}, err
	}

	return secretsv1alpha1.DetectedOperator{
		Installed: true,
		Version:   ServedVersion(crd),
	}, nil
}

// ServedVersion returns the first served version of crd in declared order,
// or "" when no version is served.
func ServedVersion(crd *apiextensionsv1.CustomResourceDefinition) string {
	for _, v := range crd.Spec.Versions {
		if v.Served {
			return v.Name
		}
	}
	return ""
}

// Each calls fn for every peer operator with its recorded status.
func Each(s secretsv1alpha1.DetectedOperatorsStatus, fn func(id string, detected secretsv1alpha1.DetectedOperator)) {
	for _, op := range peerOperators {
		fn(op.id, *op.field(&s))
	}
}

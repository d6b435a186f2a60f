package job

import (
	"errors"
	"fmt"
	"strings"

	"printfloor/internal/pkg/errs"
)

// ErrQCRequiresQCCheck is the cause attached when a QC result is recorded outside QC_CHECK.
var ErrQCRequiresQCCheck = errors.New("qc result can only be recorded in QC_CHECK")

// QCResult is the outcome of a quality inspection.
type QCResult string

const (
	QCPass        QCResult = "pass"
	QCConditional QCResult = "conditional"
	QCFail        QCResult = "fail"
)

func ParseQCResult(s string) (QCResult, error) {
	r := QCResult(strings.ToLower(strings.TrimSpace(s)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r QCResult) Validate() error {
	switch r {
	case QCPass, QCConditional, QCFail:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("qcResult", fmt.Errorf("%q is not pass, conditional or fail", string(r)))
	}
}

// Passed reports whether the job may continue to packaging.
func (r QCResult) Passed() bool {
	return r == QCPass || r == QCConditional
}

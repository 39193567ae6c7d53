package sensor

import (
	"errors"
	"fmt"
)

// Vendor status codes as returned by the native SDK
const (
	StatusOK            = 0
	StatusAlreadyInit   = 1
	StatusInitLib       = -1
	StatusInit          = -2
	StatusNoDevice      = -3
	StatusNotSupported  = -4
	StatusInvalidParam  = -5
	StatusOpen          = -6
	StatusInvalidHandle = -7
	StatusCapture       = -8
	StatusExtract       = -9
	StatusAbort         = -10
	StatusNoMemory      = -11
	StatusBusy          = -12
	StatusAddFinger     = -13
	StatusDelFinger     = -14
	StatusFail          = -17
	StatusCancel        = -18
	StatusVerify        = -20
	StatusMerge         = -22
	StatusNotOpened     = -23
	StatusNotInit       = -24
	StatusAlreadyOpen   = -25
	StatusTimeout       = -28
)

// StatusError carries a non-OK vendor status and the primitive that produced it
type StatusError struct {
	Op   string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s failed (ret=%d)", e.Op, e.Code)
}

// Status builds a *StatusError, or nil when code is StatusOK
func Status(op string, code int) error {
	if code == StatusOK {
		return nil
	}
	return &StatusError{Op: op, Code: code}
}

// CodeOf extracts the vendor status from err. nil maps to StatusOK and
// foreign errors map to StatusFail
func CodeOf(err error) int {
	if err == nil {
		return StatusOK
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return StatusFail
}

package engine

import (
	"fmt"
	"runtime/debug"

	"mdcheck/internal/checks"
	"mdcheck/internal/model"
)

// DefectError records a check that returned an error or panicked on one
// object. A defect never counts as "no issues".
type DefectError struct {
	CheckID string
	Object  string
	Err     error
	// Stack is set when the check panicked.
	Stack []byte
}

func (e *DefectError) Error() string {
	if e.Stack != nil {
		return fmt.Sprintf("check %s panicked on %s: %v", e.CheckID, e.Object, e.Err)
	}
	return fmt.Sprintf("check %s failed on %s: %v", e.CheckID, e.Object, e.Err)
}

func (e *DefectError) Unwrap() error { return e.Err }

// message is the text shown on the ERROR result.
func (e *DefectError) message() string {
	if e.Stack != nil {
		return fmt.Sprintf("Check panicked: %v", e.Err)
	}
	return fmt.Sprintf("Check failed: %v", e.Err)
}

// invoke runs c on obj, converting a returned error or a panic into a
// DefectError.
func invoke(c checks.Check, obj model.Object, acceptor checks.ResultAcceptor, params checks.Parameters) (defect *DefectError) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("%v", r)
			}
			defect = &DefectError{CheckID: c.ID(), Object: obj.FQN(), Err: err, Stack: debug.Stack()}
		}
	}()

	if err := c.Check(obj, acceptor, params); err != nil {
		return &DefectError{CheckID: c.ID(), Object: obj.FQN(), Err: err}
	}
	return nil
}

package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/dop251/goja"
)

// ErrEvaluationTimeout is returned when submitted code exceeds its execution
// budget. The evaluator reports it as a failed evaluation, not a server error.
var ErrEvaluationTimeout = errors.New("execution budget exceeded")

// jsSandbox executes untrusted submitted code in an embedded interpreter with
// a hard wall-clock budget and no ambient I/O or network capability. goja
// exposes nothing beyond the ECMAScript builtins unless values are injected,
// so the submission can only compute over what the evaluator passes in.
type jsSandbox struct {
	vm     *goja.Runtime
	budget time.Duration
}

// newJSSandbox loads the submitted source, applying the budget to top-level
// execution as well so an infinite loop outside any function cannot hang the
// evaluation path.
func newJSSandbox(userCode string, budget time.Duration) (*jsSandbox, error) {
	s := &jsSandbox{vm: goja.New(), budget: budget}
	if _, err := s.guarded(func() (goja.Value, error) {
		return s.vm.RunString(userCode)
	}); err != nil {
		return nil, err
	}
	return s, nil
}

// guarded runs f with the interrupt timer armed
func (s *jsSandbox) guarded(f func() (goja.Value, error)) (goja.Value, error) {
	timer := time.AfterFunc(s.budget, func() {
		s.vm.Interrupt(ErrEvaluationTimeout)
	})
	defer timer.Stop()
	defer s.vm.ClearInterrupt()

	v, err := f()
	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			return nil, ErrEvaluationTimeout
		}
		return nil, err
	}
	return v, nil
}

// Call invokes a function defined by the submission and exports its result
func (s *jsSandbox) Call(name string, args ...any) (any, error) {
	fn, ok := goja.AssertFunction(s.vm.Get(name))
	if !ok {
		return nil, fmt.Errorf("function %q is not defined", name)
	}

	jsArgs := make([]goja.Value, len(args))
	for i, a := range args {
		jsArgs[i] = s.vm.ToValue(a)
	}

	v, err := s.guarded(func() (goja.Value, error) {
		return fn(goja.Undefined(), jsArgs...)
	})
	if err != nil {
		return nil, err
	}
	return v.Export(), nil
}

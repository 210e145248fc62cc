package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"vibecode/models"
)

// ErrProblemNotFound is returned when a problem identifier does not resolve
// in the catalog
var ErrProblemNotFound = errors.New("problem not found")

var evaluationBudget = 3 * time.Second

// SetEvaluationBudget sets the per-invocation wall-clock budget for submitted
// code
func SetEvaluationBudget(d time.Duration) {
	evaluationBudget = d
}

// EvaluateSolution decides pass/fail for one submission against one problem,
// branching by task type. It reads catalog data and the submitted code only;
// problem definitions are never mutated.
func EvaluateSolution(problemID string, taskType models.TaskType, userCode string) (*models.EvaluationResult, error) {
	problem, ok := GetProblem(problemID)
	if !ok {
		return nil, ErrProblemNotFound
	}

	switch taskType {
	case models.TaskTypeDebugging:
		spec, ok := problem.Eval.(*models.DebuggingSpec)
		if !ok {
			return unsupportedResult(taskType), nil
		}
		return evaluateDebugging(spec, userCode), nil

	case models.TaskTypeDSA:
		spec, ok := problem.Eval.(*models.AlgorithmSpec)
		if !ok {
			return unsupportedResult(taskType), nil
		}
		return evaluateAlgorithm(spec, userCode), nil

	case models.TaskTypeDocumentation:
		spec, ok := problem.Eval.(*models.DocumentationSpec)
		if !ok {
			return unsupportedResult(taskType), nil
		}
		return evaluateDocumentation(spec, userCode), nil

	default:
		return unsupportedResult(taskType), nil
	}
}

func unsupportedResult(taskType models.TaskType) *models.EvaluationResult {
	return &models.EvaluationResult{
		Passed:   false,
		Feedback: fmt.Sprintf("Unsupported task type: %s", taskType),
	}
}

// evaluateDebugging runs every test case in catalog order against the
// submission's entry function and stops at the first mismatch
func evaluateDebugging(spec *models.DebuggingSpec, userCode string) *models.EvaluationResult {
	sandbox, err := newJSSandbox(userCode, evaluationBudget)
	if err != nil {
		return &models.EvaluationResult{Passed: false, Feedback: fmt.Sprintf("Tests failed: %v", err)}
	}

	for _, tc := range spec.TestCases {
		args := make([]any, len(spec.ArgOrder))
		for i, name := range spec.ArgOrder {
			args[i] = tc.Input[name]
		}

		got, err := sandbox.Call(spec.EntryFunction, args...)
		if err != nil {
			if errors.Is(err, ErrEvaluationTimeout) {
				return &models.EvaluationResult{
					Passed:   false,
					Feedback: fmt.Sprintf("Test Case %d failed: execution budget exceeded", tc.ID),
				}
			}
			return &models.EvaluationResult{
				Passed:   false,
				Feedback: fmt.Sprintf("Test Case %d failed: %v", tc.ID, err),
			}
		}

		if !valuesEqual(got, tc.ExpectedOutput) {
			return &models.EvaluationResult{
				Passed: false,
				Feedback: fmt.Sprintf("Test Case %d failed: Input (%s) Expected %v, Got %v",
					tc.ID, formatInput(tc.Input), tc.ExpectedOutput, got),
			}
		}
	}

	return &models.EvaluationResult{Passed: true, Feedback: "All tests passed! Great job debugging."}
}

// evaluateAlgorithm loads the submission and hands a bound callable to the
// problem's assertion handler
func evaluateAlgorithm(spec *models.AlgorithmSpec, userCode string) *models.EvaluationResult {
	sandbox, err := newJSSandbox(userCode, evaluationBudget)
	if err != nil {
		return &models.EvaluationResult{Passed: false, Feedback: fmt.Sprintf("Tests failed: %v", err)}
	}

	passed, feedback := spec.Handler(func(args ...any) (any, error) {
		return sandbox.Call(spec.FunctionName, args...)
	})
	return &models.EvaluationResult{Passed: passed, Feedback: feedback}
}

// formatInput renders a test input deterministically (JSON sorts map keys)
func formatInput(input map[string]any) string {
	data, err := json.Marshal(input)
	if err != nil {
		return fmt.Sprintf("%v", input)
	}
	return string(data)
}

// valuesEqual is the strict-equality comparison used on test outputs, with
// numeric widening so int64 results from the interpreter match expectations
// declared as ints or floats
func valuesEqual(got, want any) bool {
	gf, gok := asFloat(got)
	wf, wok := asFloat(want)
	if gok && wok {
		return gf == wf
	}
	return reflect.DeepEqual(got, want)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

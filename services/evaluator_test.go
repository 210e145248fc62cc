package services

import (
	"strings"
	"testing"
	"time"

	"vibecode/models"
)

const fixedPriceCode = `
function calculateDiscount(price, discountPercentage) {
  if (discountPercentage > 100) {
    return price;
  }
  const discountAmount = price * (discountPercentage / 100);
  return price - discountAmount;
}

function applyTax(amount, taxRate) {
  return amount + (amount * taxRate);
}

function getTotalPrice(itemPrice, discount, tax) {
  let finalPrice = calculateDiscount(itemPrice, discount);
  finalPrice = applyTax(finalPrice, tax);
  return finalPrice;
}
`

func TestDebuggingEvaluationPasses(t *testing.T) {
	result, err := EvaluateSolution("price-calculation", models.TaskTypeDebugging, fixedPriceCode)
	if err != nil {
		t.Fatalf("EvaluateSolution failed: %v", err)
	}
	if !result.Passed {
		t.Errorf("Expected fixed code to pass, got feedback: %s", result.Feedback)
	}
}

func TestDebuggingEvaluationStopsAtFirstFailure(t *testing.T) {
	// Starter code fails test case 0 (tax added as flat amount) and would
	// also fail later cases; only the first may be reported.
	problem, _ := GetProblem("price-calculation")
	result, err := EvaluateSolution("price-calculation", models.TaskTypeDebugging, problem.StarterCode)
	if err != nil {
		t.Fatalf("EvaluateSolution failed: %v", err)
	}
	if result.Passed {
		t.Fatal("Expected buggy starter code to fail")
	}
	if !strings.Contains(result.Feedback, "Test Case 0") {
		t.Errorf("Expected feedback to name test case 0, got: %s", result.Feedback)
	}
	if strings.Contains(result.Feedback, "Test Case 1") || strings.Contains(result.Feedback, "Test Case 2") {
		t.Errorf("Expected feedback to stop at the first failing case, got: %s", result.Feedback)
	}
}

func TestDebuggingEvaluationNamesExpectedAndActual(t *testing.T) {
	code := `
function getTotalPrice(itemPrice, discount, tax) {
  return 0;
}
`
	result, err := EvaluateSolution("price-calculation", models.TaskTypeDebugging, code)
	if err != nil {
		t.Fatalf("EvaluateSolution failed: %v", err)
	}
	if result.Passed {
		t.Fatal("Expected constant implementation to fail")
	}
	for _, want := range []string{"Test Case 0", "itemPrice", "94.5", "0"} {
		if !strings.Contains(result.Feedback, want) {
			t.Errorf("Expected feedback to contain %q, got: %s", want, result.Feedback)
		}
	}
}

func TestDebuggingEvaluationTimesOut(t *testing.T) {
	SetEvaluationBudget(100 * time.Millisecond)
	defer SetEvaluationBudget(3 * time.Second)

	code := `function getTotalPrice(itemPrice, discount, tax) { while (true) {} }`
	result, err := EvaluateSolution("price-calculation", models.TaskTypeDebugging, code)
	if err != nil {
		t.Fatalf("EvaluateSolution failed: %v", err)
	}
	if result.Passed {
		t.Fatal("Expected infinite loop to fail")
	}
	if !strings.Contains(result.Feedback, "execution budget exceeded") {
		t.Errorf("Expected timeout feedback, got: %s", result.Feedback)
	}
}

func TestDebuggingDiscountOverHundredPercent(t *testing.T) {
	// Discount over 100% must not apply, tax still applies: 200 * 1.10 = 220
	code := `
function getTotalPrice(itemPrice, discount, tax) {
  let price = itemPrice;
  if (discount <= 100) {
    price = price - price * (discount / 100);
  }
  return price + price * tax;
}
`
	result, err := EvaluateSolution("price-calculation", models.TaskTypeDebugging, code)
	if err != nil {
		t.Fatalf("EvaluateSolution failed: %v", err)
	}
	if !result.Passed {
		t.Errorf("Expected edge-case-aware code to pass, got feedback: %s", result.Feedback)
	}
}

func TestDocumentationEvaluationPasses(t *testing.T) {
	code := `
/**
 * Capitalizes the first letter of a string.
 * @param {string} str the input string
 * @returns {string} the capitalized string
 */
function capitalizeFirstLetter(str) {
  return str.charAt(0).toUpperCase() + str.slice(1);
}

/**
 * Reverses a string.
 * @param {string} str the input string
 * @returns {string} the reversed string
 * @throws {Error} when the input is not a string
 */
function reverseString(str) {
  return str.split('').reverse().join('');
}

/**
 * Reports whether a string is a palindrome.
 * @param {string} str the input string
 * @returns {boolean} true when str is a palindrome
 */
function isPalindrome(str) {
  return true;
}
`
	readme := `
# String Utilities

A module of string helpers.

## Installation

npm install

## Usage

capitalizeFirstLetter("hello")
`
	submission := code + ReadmeDelimiter + readme
	result, err := EvaluateSolution("undocumented-module", models.TaskTypeDocumentation, submission)
	if err != nil {
		t.Fatalf("EvaluateSolution failed: %v", err)
	}
	if !result.Passed {
		t.Errorf("Expected documented submission to pass, got feedback: %s", result.Feedback)
	}
}

func TestDocumentationEvaluationCollectsEveryFailure(t *testing.T) {
	// Two functions each missing a tag: both must be reported in one pass
	code := `
/**
 * @param {string} str
 */
function capitalizeFirstLetter(str) {
  return str;
}

/**
 * @param {string} str
 * @returns {string}
 * @throws {Error}
 */
function reverseString(str) {
  return str;
}

/**
 * @param {string} str
 */
function isPalindrome(str) {
  return true;
}
`
	readme := `
# String Utilities

## Installation

## Usage
`
	submission := code + ReadmeDelimiter + readme
	result, err := EvaluateSolution("undocumented-module", models.TaskTypeDocumentation, submission)
	if err != nil {
		t.Fatalf("EvaluateSolution failed: %v", err)
	}
	if result.Passed {
		t.Fatal("Expected submission with missing tags to fail")
	}
	if !strings.Contains(result.Feedback, "capitalizeFirstLetter") {
		t.Errorf("Expected feedback to mention capitalizeFirstLetter, got: %s", result.Feedback)
	}
	if !strings.Contains(result.Feedback, "isPalindrome") {
		t.Errorf("Expected feedback to mention isPalindrome, got: %s", result.Feedback)
	}
}

func TestDocumentationEvaluationMissingReadmeSections(t *testing.T) {
	// No delimiter at all: readme part is empty, every section is missing
	result, err := EvaluateSolution("undocumented-module", models.TaskTypeDocumentation, "function f() {}")
	if err != nil {
		t.Fatalf("EvaluateSolution failed: %v", err)
	}
	if result.Passed {
		t.Fatal("Expected bare submission to fail")
	}
	if !strings.Contains(result.Feedback, "## Installation") || !strings.Contains(result.Feedback, "## Usage") {
		t.Errorf("Expected feedback to list missing README sections, got: %s", result.Feedback)
	}
}

func TestAlgorithmEvaluation(t *testing.T) {
	good := `
function twoSum(nums, target) {
  for (let i = 0; i < nums.length; i++) {
    for (let j = i + 1; j < nums.length; j++) {
      if (nums[i] + nums[j] === target) {
        return [i, j];
      }
    }
  }
  return [];
}
`
	result, err := EvaluateSolution("two-sum", models.TaskTypeDSA, good)
	if err != nil {
		t.Fatalf("EvaluateSolution failed: %v", err)
	}
	if !result.Passed {
		t.Errorf("Expected correct twoSum to pass, got feedback: %s", result.Feedback)
	}

	bad := `function twoSum(nums, target) { return [0, 0]; }`
	result, err = EvaluateSolution("two-sum", models.TaskTypeDSA, bad)
	if err != nil {
		t.Fatalf("EvaluateSolution failed: %v", err)
	}
	if result.Passed {
		t.Error("Expected incorrect twoSum to fail")
	}
}

func TestEvaluationUnknownProblem(t *testing.T) {
	_, err := EvaluateSolution("no-such-problem", models.TaskTypeDebugging, "function f() {}")
	if err != ErrProblemNotFound {
		t.Errorf("Expected ErrProblemNotFound, got: %v", err)
	}
}

func TestEvaluationUnsupportedTaskType(t *testing.T) {
	result, err := EvaluateSolution("create-api", models.TaskTypeAPICreation, "const app = 1;")
	if err != nil {
		t.Fatalf("EvaluateSolution failed: %v", err)
	}
	if result.Passed {
		t.Error("Expected unsupported task type to return a non-passing result")
	}
	if !strings.Contains(result.Feedback, "Unsupported task type") {
		t.Errorf("Expected unsupported-task-type feedback, got: %s", result.Feedback)
	}
}

func TestEvaluationMismatchedTaskType(t *testing.T) {
	// Asking for debugging evaluation on a documentation problem has no
	// registered checker for that combination
	result, err := EvaluateSolution("undocumented-module", models.TaskTypeDebugging, "function f() {}")
	if err != nil {
		t.Fatalf("EvaluateSolution failed: %v", err)
	}
	if result.Passed {
		t.Error("Expected mismatched task type to return a non-passing result")
	}
}

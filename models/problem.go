package models

// TaskType categorizes a problem and selects which checker applies to it.
type TaskType string

const (
	TaskTypeDSA           TaskType = "dsa"
	TaskTypeDebugging     TaskType = "debugging"
	TaskTypeDocumentation TaskType = "documentation"
	TaskTypeAPICreation   TaskType = "api-creation"
	TaskTypeRefactoring   TaskType = "refactoring"
)

// Example illustrates expected behavior on the problem page
type Example struct {
	ID          int    `bson:"id" json:"id"`
	InputText   string `bson:"inputText" json:"inputText"`
	OutputText  string `bson:"outputText" json:"outputText"`
	Explanation string `bson:"explanation,omitempty" json:"explanation,omitempty"`
}

// TestCase pairs an input record with the value the submission must produce.
// Test cases are immutable once defined and belong to their problem.
type TestCase struct {
	ID             int            `json:"id"`
	Input          map[string]any `json:"input"`
	ExpectedOutput any            `json:"expectedOutput"`
	Explanation    string         `json:"explanation,omitempty"`
}

// CodeFile is one named file of a problem's starter file set
type CodeFile struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// JSCall invokes a function defined by the submitted code inside the sandbox
type JSCall func(args ...any) (any, error)

// EvalSpec holds the task-type-specific evaluation data of a problem.
// Exactly one variant is attached to each problem; the variant's task type
// always matches the problem's TaskType field.
type EvalSpec interface {
	TaskType() TaskType
}

// AlgorithmSpec evaluates a classic algorithm problem. The handler receives a
// callable bound to the user's implementation, runs its fixed assertions and
// reports success with optional feedback.
type AlgorithmSpec struct {
	FunctionName string
	Handler      func(call JSCall) (bool, string)
}

func (*AlgorithmSpec) TaskType() TaskType { return TaskTypeDSA }

// DebuggingSpec evaluates a bug-fixing problem by calling the entry function
// with each test case's input fields, in ArgOrder, and comparing results.
type DebuggingSpec struct {
	BugDescription string
	EntryFunction  string
	ArgOrder       []string
	TestCases      []TestCase
}

func (*DebuggingSpec) TaskType() TaskType { return TaskTypeDebugging }

// DocFunctionRule names a function that must carry a documentation block with
// every listed tag.
type DocFunctionRule struct {
	Name         string
	RequiredTags []string
}

// DocumentationSpec evaluates a documentation problem structurally: per-function
// doc-block checks on the code part of the submission and section-heading checks
// on the readme part, split on FileDelimiter.
type DocumentationSpec struct {
	Files          []CodeFile
	FileDelimiter  string
	Functions      []DocFunctionRule
	ReadmeSections []string
}

func (*DocumentationSpec) TaskType() TaskType { return TaskTypeDocumentation }

// Problem is one catalog entry. Eval carries the hidden evaluation data and is
// never serialized to clients or the database.
type Problem struct {
	ID          string    `bson:"_id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	TaskType    TaskType  `bson:"taskType" json:"taskType"`
	Description string    `bson:"description" json:"description"`
	Examples    []Example `bson:"examples" json:"examples"`
	Constraints string    `bson:"constraints" json:"constraints"`
	StarterCode string    `bson:"starterCode" json:"starterCode"`
	Category    string    `bson:"category" json:"category"`
	Difficulty  string    `bson:"difficulty" json:"difficulty"`
	Order       int       `bson:"order" json:"order"`
	Hints       []string  `bson:"hints,omitempty" json:"hints,omitempty"`

	Eval EvalSpec `bson:"-" json:"-"`
}

// ProblemDoc is the problems collection document: catalog metadata plus
// community counters. Evaluation data stays in code.
type ProblemDoc struct {
	ID         string   `bson:"_id" json:"id"`
	Title      string   `bson:"title" json:"title"`
	TaskType   TaskType `bson:"taskType" json:"taskType"`
	Category   string   `bson:"category" json:"category"`
	Difficulty string   `bson:"difficulty" json:"difficulty"`
	Likes      int      `bson:"likes" json:"likes"`
	Dislikes   int      `bson:"dislikes" json:"dislikes"`
	Order      int      `bson:"order" json:"order"`
}

// EvaluationResult is the verdict for one submission. It is produced fresh per
// evaluation call and never persisted.
type EvaluationResult struct {
	Passed   bool   `json:"passed"`
	Feedback string `json:"feedback"`
}

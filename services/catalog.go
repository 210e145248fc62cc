package services

import (
	"fmt"
	"sort"

	"vibecode/models"
)

// ReadmeDelimiter separates the code part of a documentation submission from
// its readme part.
const ReadmeDelimiter = "\n\n/* --- README.md --- */\n\n"

const buggyPriceCode = `
function calculateDiscount(price, discountPercentage) {
  const discountAmount = price * (discountPercentage / 100);
  return price - discountAmount;
}

function applyTax(amount, taxRate) {
  return amount + taxRate;
}

function getTotalPrice(itemPrice, discount, tax) {
  let finalPrice = calculateDiscount(itemPrice, discount);
  finalPrice = applyTax(finalPrice, tax);
  return finalPrice;
}
`

const stringUtilsCode = `
/**
 * This module provides utility functions for string manipulation.
 */

function capitalizeFirstLetter(str) {
  if (typeof str !== 'string' || str.length === 0) {
    return '';
  }
  return str.charAt(0).toUpperCase() + str.slice(1);
}

function reverseString(str) {
  if (typeof str !== 'string') {
    throw new Error('Input must be a string.');
  }
  return str.split('').reverse().join('');
}

function isPalindrome(str) {
  const cleanedStr = str.toLowerCase().replace(/[^a-z0-9]/g, '');
  const reversedStr = reverseString(cleanedStr);
  return cleanedStr === reversedStr;
}
`

const stringUtilsReadme = `
# String Utilities

This is a placeholder README.
`

const twoSumStarterCode = `function twoSum(nums, target) {
  // Write your code here
};`

const expressStarterCode = `const express = require('express');
const app = express();
const port = 3000;

app.listen(port, () => {
  console.log("Example app listening at http://localhost:3000");
});
`

// problemCatalog is the static registry of problem definitions. Evaluation
// data lives only here; the problems collection carries presentation metadata
// and community counters.
var problemCatalog = map[string]*models.Problem{
	"price-calculation": {
		ID:       "price-calculation",
		Title:    "Debugging: Price Calculation Errors",
		TaskType: models.TaskTypeDebugging,
		Description: "You are given a module responsible for calculating the final price of an item, " +
			"including discounts and taxes. Users are reporting incorrect final prices for certain scenarios. " +
			"Identify and fix the bugs so that all test cases pass.",
		Examples: []models.Example{
			{
				ID:          0,
				InputText:   "itemPrice = 100, discount = 10, tax = 0.05",
				OutputText:  "94.5",
				Explanation: "A standard calculation: (100 - 10% discount) * (1 + 5% tax) = 90 * 1.05 = 94.5",
			},
			{
				ID:          1,
				InputText:   "itemPrice = 200, discount = 150, tax = 0.10",
				OutputText:  "220",
				Explanation: "If the discount percentage is over 100%, no discount should be applied, then 10% tax: 200 * 1.10 = 220.",
			},
		},
		Constraints: "The input prices and percentages will be positive numbers. The tax rate is provided as a decimal. " +
			"The discount percentage is provided as a whole number.",
		StarterCode: buggyPriceCode,
		Category:    "Debugging",
		Difficulty:  "Easy",
		Order:       1,
		Hints: []string{
			"Pay close attention to edge cases for percentages.",
			"Trace the execution flow with the failing test cases step-by-step.",
		},
		Eval: &models.DebuggingSpec{
			BugDescription: "The price pipeline mishandles discounts over 100% and applies tax as a flat amount.",
			EntryFunction:  "getTotalPrice",
			ArgOrder:       []string{"itemPrice", "discount", "tax"},
			TestCases: []models.TestCase{
				{
					ID:             0,
					Input:          map[string]any{"itemPrice": 100, "discount": 10, "tax": 0.05},
					ExpectedOutput: 94.5,
					Explanation:    "Standard discount and tax application.",
				},
				{
					ID:             1,
					Input:          map[string]any{"itemPrice": 200, "discount": 150, "tax": 0.10},
					ExpectedOutput: 220.0,
					Explanation:    "Discount percentage over 100% should not apply, then 10% tax.",
				},
				{
					ID:             2,
					Input:          map[string]any{"itemPrice": 50, "discount": 0, "tax": 0.20},
					ExpectedOutput: 60.0,
					Explanation:    "No discount, then 20% tax.",
				},
			},
		},
	},

	"undocumented-module": {
		ID:       "undocumented-module",
		Title:    "Documentation: String Utility Module",
		TaskType: models.TaskTypeDocumentation,
		Description: "You are provided with a module of string utility functions (utils.js) and a placeholder README.md. " +
			"Add JSDoc comments to every function and fill in the README sections. The readme part of your submission " +
			"goes below the file delimiter in the editor.",
		Examples: []models.Example{
			{
				ID:          0,
				InputText:   `capitalizeFirstLetter("hello")`,
				OutputText:  `"Hello"`,
				Explanation: "Demonstrates capitalizing the first letter of a string.",
			},
		},
		Constraints: "All functions in utils.js must have JSDoc comments. The README.md section must be updated with relevant sections.",
		StarterCode: stringUtilsCode + ReadmeDelimiter + stringUtilsReadme,
		Category:    "Documentation",
		Difficulty:  "Easy",
		Order:       2,
		Eval: &models.DocumentationSpec{
			Files: []models.CodeFile{
				{Filename: "utils.js", Content: stringUtilsCode},
				{Filename: "README.md", Content: stringUtilsReadme},
			},
			FileDelimiter: ReadmeDelimiter,
			Functions: []models.DocFunctionRule{
				{Name: "capitalizeFirstLetter", RequiredTags: []string{"@param", "@returns"}},
				{Name: "reverseString", RequiredTags: []string{"@param", "@returns", "@throws"}},
				{Name: "isPalindrome", RequiredTags: []string{"@param", "@returns"}},
			},
			ReadmeSections: []string{"# String Utilities", "## Installation", "## Usage"},
		},
	},

	"two-sum": {
		ID:       "two-sum",
		Title:    "Two Sum",
		TaskType: models.TaskTypeDSA,
		Description: "Given an array of integers nums and an integer target, return indices of the two numbers " +
			"such that they add up to target. You may assume that each input has exactly one solution, and you " +
			"may not use the same element twice.",
		Examples: []models.Example{
			{
				ID:          0,
				InputText:   "nums = [2,7,11,15], target = 9",
				OutputText:  "[0,1]",
				Explanation: "Because nums[0] + nums[1] == 9, we return [0, 1].",
			},
			{
				ID:         1,
				InputText:  "nums = [3,2,4], target = 6",
				OutputText: "[1,2]",
			},
		},
		Constraints: "2 <= nums.length <= 10. -10 <= nums[i] <= 10. Only one valid answer exists.",
		StarterCode: twoSumStarterCode,
		Category:    "Array",
		Difficulty:  "Easy",
		Order:       3,
		Eval: &models.AlgorithmSpec{
			FunctionName: "twoSum",
			Handler:      twoSumHandler,
		},
	},

	"create-api": {
		ID:       "create-api",
		Title:    "API Creation: Simple Express Server",
		TaskType: models.TaskTypeAPICreation,
		Description: "Create a simple Express.js server. Modify the provided files so the server responds " +
			"with \"Hello World!\" at the root endpoint.",
		Examples:    []models.Example{},
		Constraints: "The server must listen on port 3000. The server must respond with \"Hello World!\" at the root endpoint.",
		StarterCode: expressStarterCode,
		Category:    "API",
		Difficulty:  "Medium",
		Order:       4,
	},
}

// twoSumHandler runs fixed assertions against the user's twoSum implementation
func twoSumHandler(call models.JSCall) (bool, string) {
	cases := []struct {
		nums   []int
		target int
		want   []int
	}{
		{nums: []int{2, 7, 11, 15}, target: 9, want: []int{0, 1}},
		{nums: []int{3, 2, 4}, target: 6, want: []int{1, 2}},
		{nums: []int{3, 3}, target: 6, want: []int{0, 1}},
	}

	for i, tc := range cases {
		got, err := call(tc.nums, tc.target)
		if err != nil {
			return false, fmt.Sprintf("Test Case %d failed: %v", i, err)
		}
		indices, ok := got.([]any)
		if !ok || len(indices) != len(tc.want) {
			return false, fmt.Sprintf("Test Case %d failed: expected %v, got %v", i, tc.want, got)
		}
		for j, want := range tc.want {
			if !valuesEqual(indices[j], want) {
				return false, fmt.Sprintf("Test Case %d failed: expected %v, got %v", i, tc.want, got)
			}
		}
	}
	return true, "All tests passed! Nice work."
}

// GetProblem resolves a problem identifier in the catalog
func GetProblem(id string) (*models.Problem, bool) {
	p, ok := problemCatalog[id]
	return p, ok
}

// AllProblems lists every catalog entry in display order
func AllProblems() []*models.Problem {
	problems := make([]*models.Problem, 0, len(problemCatalog))
	for _, p := range problemCatalog {
		problems = append(problems, p)
	}
	sort.Slice(problems, func(i, j int) bool { return problems[i].Order < problems[j].Order })
	return problems
}

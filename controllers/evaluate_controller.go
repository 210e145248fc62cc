package controllers

import (
	"errors"
	"log"
	"net/http"

	"vibecode/db"
	"vibecode/models"
	"vibecode/services"

	"github.com/gin-gonic/gin"
)

type EvaluateSolutionRequest struct {
	ProblemID string `json:"problemId"`
	UserCode  string `json:"userCode"`
	TaskType  string `json:"taskType"`
}

// EvaluateSolution checks a submission against a problem's hidden test cases
// and reports the verdict. Evaluation errors are informative to the learner,
// so messages are surfaced here unlike on the AI path.
func EvaluateSolution(c *gin.Context) {
	userID := c.GetString("userId")

	var req EvaluateSolutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	if req.ProblemID == "" || req.UserCode == "" || req.TaskType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing problemId, userCode, or taskType"})
		return
	}

	result, err := services.EvaluateSolution(req.ProblemID, models.TaskType(req.TaskType), req.UserCode)
	if err != nil {
		if errors.Is(err, services.ErrProblemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Problem not found"})
			return
		}
		log.Printf("Evaluation error for problem %s: %v", req.ProblemID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if result.Passed {
		db.MarkProblemSolved(userID, req.ProblemID)
	}

	c.JSON(http.StatusOK, result)
}

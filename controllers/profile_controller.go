package controllers

import (
	"context"
	"net/http"
	"time"

	"vibecode/db"
	"vibecode/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetProfile retrieves and returns user profile data including community
// relations
func GetProfile(c *gin.Context) {
	userID := c.GetString("userId")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := db.GetCollection("users").FindOne(dbCtx, bson.M{"email": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":            user.Email,
		"displayName":      user.DisplayName,
		"solvedProblems":   user.SolvedProblems,
		"likedProblems":    user.LikedProblems,
		"dislikedProblems": user.DislikedProblems,
		"starredProblems":  user.StarredProblems,
		"createdAt":        user.CreatedAt,
	})
}

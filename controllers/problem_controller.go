package controllers

import (
	"context"
	"net/http"
	"time"

	"vibecode/db"
	"vibecode/models"
	"vibecode/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetProblems lists the catalog with community counters, in display order
func GetProblems(c *gin.Context) {
	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := db.GetCollection("problems").Find(
		dbCtx,
		bson.M{},
		options.Find().SetSort(bson.M{"order": 1}),
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching problems"})
		return
	}
	defer cursor.Close(dbCtx)

	var problems []models.ProblemDoc
	if err := cursor.All(dbCtx, &problems); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching problems"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"problems": problems})
}

// GetProblem returns one problem's definition. Hidden evaluation data never
// leaves the catalog.
func GetProblem(c *gin.Context) {
	problemID := c.Param("id")

	problem, ok := services.GetProblem(problemID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Problem not found"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc models.ProblemDoc
	err := db.GetCollection("problems").FindOne(dbCtx, bson.M{"_id": problemID}).Decode(&doc)
	if err != nil && err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"problem":  problem,
		"likes":    doc.Likes,
		"dislikes": doc.Dislikes,
	})
}

// ToggleLike flips the caller's like on a problem. Liking removes an existing
// dislike; both counters stay consistent with the user's sets.
func ToggleLike(c *gin.Context) {
	toggleReaction(c, "likedProblems", "likes", "dislikedProblems", "dislikes")
}

// ToggleDislike flips the caller's dislike on a problem
func ToggleDislike(c *gin.Context) {
	toggleReaction(c, "dislikedProblems", "dislikes", "likedProblems", "likes")
}

func toggleReaction(c *gin.Context, set, counter, oppositeSet, oppositeCounter string) {
	userID := c.GetString("userId")
	problemID := c.Param("id")

	if _, ok := services.GetProblem(problemID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Problem not found"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := db.GetCollection("users").FindOne(dbCtx, bson.M{"email": userID}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	problems := db.GetCollection("problems")
	users := db.GetCollection("users")

	if contains(fieldSet(&user, set), problemID) {
		// Already reacted: undo
		users.UpdateOne(dbCtx, bson.M{"email": userID}, bson.M{"$pull": bson.M{set: problemID}})
		problems.UpdateOne(dbCtx, bson.M{"_id": problemID}, bson.M{"$inc": bson.M{counter: -1}})
	} else {
		update := bson.M{"$addToSet": bson.M{set: problemID}}
		inc := bson.M{counter: 1}
		if contains(fieldSet(&user, oppositeSet), problemID) {
			update["$pull"] = bson.M{oppositeSet: problemID}
			inc[oppositeCounter] = -1
		}
		users.UpdateOne(dbCtx, bson.M{"email": userID}, update)
		problems.UpdateOne(dbCtx, bson.M{"_id": problemID}, bson.M{"$inc": inc})
	}

	var doc models.ProblemDoc
	problems.FindOne(dbCtx, bson.M{"_id": problemID}).Decode(&doc)
	c.JSON(http.StatusOK, gin.H{"likes": doc.Likes, "dislikes": doc.Dislikes})
}

// ToggleStar flips the caller's star on a problem
func ToggleStar(c *gin.Context) {
	userID := c.GetString("userId")
	problemID := c.Param("id")

	if _, ok := services.GetProblem(problemID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Problem not found"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := db.GetCollection("users").FindOne(dbCtx, bson.M{"email": userID}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	users := db.GetCollection("users")
	starred := contains(user.StarredProblems, problemID)
	if starred {
		users.UpdateOne(dbCtx, bson.M{"email": userID}, bson.M{"$pull": bson.M{"starredProblems": problemID}})
	} else {
		users.UpdateOne(dbCtx, bson.M{"email": userID}, bson.M{"$addToSet": bson.M{"starredProblems": problemID}})
	}

	c.JSON(http.StatusOK, gin.H{"starred": !starred})
}

func fieldSet(user *models.User, field string) []string {
	switch field {
	case "likedProblems":
		return user.LikedProblems
	case "dislikedProblems":
		return user.DislikedProblems
	default:
		return nil
	}
}

func contains(set []string, value string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}

package utils

import (
	"context"
	"log"
	"time"

	"vibecode/db"
	"vibecode/models"
	"vibecode/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SeedProblemData mirrors the static catalog into the problems collection so
// listings and community counters have a document per problem
func SeedProblemData() {
	for _, p := range services.AllProblems() {
		doc := models.ProblemDoc{
			ID:         p.ID,
			Title:      p.Title,
			TaskType:   p.TaskType,
			Category:   p.Category,
			Difficulty: p.Difficulty,
			Order:      p.Order,
		}
		if err := db.UpsertProblemDoc(doc); err != nil {
			log.Printf("Failed to seed problem %s: %v", p.ID, err)
		}
	}
}

// PopulateTestUsers inserts sample users into the database
func PopulateTestUsers() {
	collection := db.GetCollection("users")

	samples := []struct {
		email       string
		displayName string
		password    string
	}{
		{"alice@example.com", "Alice Johnson", "alice-password"},
		{"bob@example.com", "Bob Smith", "bob-password"},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, s := range samples {
		hash, err := HashPassword(s.password)
		if err != nil {
			continue
		}
		user := models.User{
			ID:               primitive.NewObjectID(),
			Email:            s.email,
			DisplayName:      s.displayName,
			PasswordHash:     hash,
			SolvedProblems:   []string{},
			LikedProblems:    []string{},
			DislikedProblems: []string{},
			StarredProblems:  []string{},
			CreatedAt:        time.Now(),
		}
		filter := bson.M{"email": s.email}
		update := bson.M{"$setOnInsert": user}
		collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	}
}

package db

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"vibecode/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var MongoClient *mongo.Client
var MongoDatabase *mongo.Database

// GetCollection returns a collection by name
func GetCollection(collectionName string) *mongo.Collection {
	return MongoDatabase.Collection(collectionName)
}

// extractDBName parses the database name from the URI, defaulting to "vibecode"
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "vibecode"
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:] // Trim leading '/'
	}
	return "vibecode"
}

// ConnectMongoDB establishes a connection to MongoDB using the provided URI
func ConnectMongoDB(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection with a ping
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoClient = client
	dbName := extractDBName(uri)
	log.Printf("Using database: %s", dbName)

	MongoDatabase = client.Database(dbName)
	return nil
}

// UpsertProblemDoc writes a problem's catalog metadata to the problems
// collection, leaving community counters untouched on existing documents
func UpsertProblemDoc(doc models.ProblemDoc) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"_id": doc.ID}
	update := bson.M{
		"$set": bson.M{
			"title":      doc.Title,
			"taskType":   doc.TaskType,
			"category":   doc.Category,
			"difficulty": doc.Difficulty,
			"order":      doc.Order,
		},
		"$setOnInsert": bson.M{
			"likes":    0,
			"dislikes": 0,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := GetCollection("problems").UpdateOne(ctx, filter, update, opts)
	if err != nil {
		log.Printf("Error upserting problem %s: %v", doc.ID, err)
		return err
	}
	return nil
}

// MarkProblemSolved records a passing evaluation on the user's solved set
func MarkProblemSolved(email, problemID string) error {
	if MongoDatabase == nil {
		// seed and test environments run without a database
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"email": email}
	update := bson.M{"$addToSet": bson.M{"solvedProblems": problemID}}
	_, err := GetCollection("users").UpdateOne(ctx, filter, update)
	if err != nil {
		log.Printf("Error marking problem solved: %v", err)
		return err
	}
	return nil
}

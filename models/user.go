package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User defines a user entity. Community relations are stored as id-sets on the
// user side, counters live on the problem documents.
type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email             string             `bson:"email" json:"email"`
	DisplayName       string             `bson:"displayName" json:"displayName"`
	PasswordHash      string             `bson:"passwordHash" json:"-"`
	SolvedProblems    []string           `bson:"solvedProblems" json:"solvedProblems"`
	LikedProblems     []string           `bson:"likedProblems" json:"likedProblems"`
	DislikedProblems  []string           `bson:"dislikedProblems" json:"dislikedProblems"`
	StarredProblems   []string           `bson:"starredProblems" json:"starredProblems"`
	AISettings        *AIUserSettings    `bson:"aiSettings,omitempty" json:"-"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}

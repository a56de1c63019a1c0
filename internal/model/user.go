// Package model contains the documents stored in MongoDB
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is a single account document. Messages live embedded inside the
// user instead of a separate collection, ordering is imposed at query
// time by the store's aggregation.
type User struct {
	ID                  bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Username            string        `bson:"username" json:"username"`
	Email               string        `bson:"email" json:"email"`
	PasswordHash        string        `bson:"password" json:"-"`
	VerifyCode          string        `bson:"verifyCode" json:"-"`
	VerifyCodeExpiry    time.Time     `bson:"verifyCodeExpiry" json:"-"`
	IsVerified          bool          `bson:"isVerified" json:"isVerified"`
	IsAcceptingMessages bool          `bson:"isAcceptingMessages" json:"isAcceptingMessages"`
	Messages            []Message     `bson:"messages" json:"messages"`
	CreatedAt           time.Time     `bson:"createdAt" json:"createdAt"`
}

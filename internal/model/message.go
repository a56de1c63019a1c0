package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Message is an anonymous message embedded in a User document. There is
// deliberately no sender field.
type Message struct {
	ID        bson.ObjectID `bson:"_id" json:"id"`
	Content   string        `bson:"content" json:"content"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
}

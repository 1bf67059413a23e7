package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is student feedback on a class. Reviews are append-only.
type Review struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ClassID    string             `bson:"classId" json:"classId"`
	ClassTitle string             `bson:"class_title,omitempty" json:"class_title,omitempty"`
	Name       string             `bson:"name,omitempty" json:"name,omitempty"`
	Email      string             `bson:"email" json:"email"`
	Photo      string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Rating     float64            `bson:"rating" json:"rating"`
	Content    string             `bson:"content" json:"content"`
	CreatedAt  time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Enrollment records a paid seat in a class.
type Enrollment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ClassID       string             `bson:"classId" json:"classId"`
	ClassTitle    string             `bson:"class_title,omitempty" json:"class_title,omitempty"`
	TeacherEmail  string             `bson:"teacher_email,omitempty" json:"teacher_email,omitempty"`
	Email         string             `bson:"email" json:"email"`
	Name          string             `bson:"name,omitempty" json:"name,omitempty"`
	Price         float64            `bson:"price" json:"price"`
	TransactionID string             `bson:"transaction_id,omitempty" json:"transaction_id,omitempty"`
	CreatedAt     time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

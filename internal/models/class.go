package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClassStatus is the admin review state of a class.
type ClassStatus string

// Class review states.
const (
	ClassStatusPending  ClassStatus = "Pending"
	ClassStatusAccepted ClassStatus = "Accepted"
	ClassStatusRejected ClassStatus = "Rejected"
)

// Class is a teacher-authored course offered on the marketplace.
// Enrolment and Assignment are counters maintained by enrollment and assignment inserts.
type Class struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title        string             `bson:"title" json:"title"`
	Name         string             `bson:"name" json:"name"`
	TeacherEmail string             `bson:"teacher_email" json:"teacher_email"`
	TeacherPhoto string             `bson:"teacher_photo,omitempty" json:"teacher_photo,omitempty"`
	Price        float64            `bson:"price" json:"price"`
	Description  string             `bson:"description" json:"description"`
	Image        string             `bson:"image,omitempty" json:"image,omitempty"`
	Status       ClassStatus        `bson:"status" json:"status"`
	Enrolment    int64              `bson:"enrolment" json:"enrolment"`
	Assignment   int64              `bson:"assignment" json:"assignment"`
	CreatedAt    time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt    time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// ClassUpdate carries the teacher-editable class fields.
type ClassUpdate struct {
	Title       *string  `bson:"title,omitempty"`
	Price       *float64 `bson:"price,omitempty"`
	Description *string  `bson:"description,omitempty"`
	Image       *string  `bson:"image,omitempty"`
}

// IsEmpty reports whether no field is set.
func (u ClassUpdate) IsEmpty() bool {
	return u.Title == nil && u.Price == nil && u.Description == nil && u.Image == nil
}

// Counter fields on a class document.
const (
	ClassCounterEnrolment  = "enrolment"
	ClassCounterAssignment = "assignment"
)

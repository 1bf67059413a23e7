package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignmentStatus flips to Submitted on the first submission.
type AssignmentStatus string

// Assignment states.
const (
	AssignmentPending   AssignmentStatus = "Pending"
	AssignmentSubmitted AssignmentStatus = "Submitted"
)

// Assignment is classwork attached to a class.
type Assignment struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ClassID      string             `bson:"classId" json:"classId"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Deadline     string             `bson:"deadline,omitempty" json:"deadline,omitempty"`
	Status       AssignmentStatus   `bson:"status" json:"status"`
	TeacherEmail string             `bson:"teacher_email,omitempty" json:"teacher_email,omitempty"`
	CreatedAt    time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

// AssignmentSubmission is a student's answer to an assignment.
type AssignmentSubmission struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	AssignmentID string             `bson:"assignmentId" json:"assignmentId"`
	ClassID      string             `bson:"classId,omitempty" json:"classId,omitempty"`
	Email        string             `bson:"email" json:"email"`
	Name         string             `bson:"name,omitempty" json:"name,omitempty"`
	Content      string             `bson:"content" json:"content"`
	CreatedAt    time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

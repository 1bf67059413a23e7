package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApplicationStatus tracks a teach-on-StudyHive request.
type ApplicationStatus string

// Application review states; user documents reuse these strings in their status field.
const (
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationAccepted ApplicationStatus = "Accepted"
	ApplicationRejected ApplicationStatus = "Rejected"
)

// TeacherApplication is a user's request to become a teacher.
type TeacherApplication struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Photo      string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Title      string             `bson:"title" json:"title"`
	Experience string             `bson:"experience" json:"experience"`
	Category   string             `bson:"category" json:"category"`
	Role       UserRole           `bson:"role,omitempty" json:"role,omitempty"`
	Status     ApplicationStatus  `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

// ApplicationDecision holds both writes of an approval or rejection.
type ApplicationDecision struct {
	Application *WriteResult `json:"application"`
	User        *WriteResult `json:"user"`
}

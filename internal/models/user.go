package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole represents the roles stored on user documents.
type UserRole string

// An unset role marks a regular student account.
const (
	RoleNone    UserRole = ""
	RoleTeacher UserRole = "Teacher"
	RoleAdmin   UserRole = "Admin"
)

// User is a marketplace account keyed by email.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Photo     string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Role      UserRole           `bson:"role,omitempty" json:"role,omitempty"`
	Status    string             `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

// HasRole reports whether the user holds the role.
func (u *User) HasRole(role UserRole) bool {
	return u != nil && role != RoleNone && u.Role == role
}

// UserFilter narrows user listings.
type UserFilter struct {
	Search string
}

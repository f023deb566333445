package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleStaff      UserRole = "staff"
	RoleInstructor UserRole = "instructor"
	RoleStudent    UserRole = "student"
)

// ValidRole reports whether the role is one of the known roles.
func ValidRole(role UserRole) bool {
	switch role {
	case RoleAdmin, RoleStaff, RoleInstructor, RoleStudent:
		return true
	}
	return false
}

type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"password,omitempty" bson:"password"`
	Role      UserRole           `json:"role" bson:"role"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

package domain

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoleAdmin is the only privileged role. Any other value, including an
// unset role, is a regular member.
const RoleAdmin = "admin"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	ErrEmailMissing = errors.New("email is required")
)

// User is a stored account, keyed by email.
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name  string             `bson:"name,omitempty" json:"name,omitempty"`
	Email string             `bson:"email" json:"email"`
	Photo string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Role  string             `bson:"role,omitempty" json:"role,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

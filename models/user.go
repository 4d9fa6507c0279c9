// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Office       string             `bson:"office" json:"office"`
	Designation  string             `bson:"designation,omitempty" json:"designation,omitempty"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Role         string             `bson:"role" json:"role"` // admin, gso_staff, office_user
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

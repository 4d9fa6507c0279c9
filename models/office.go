// models/office.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Office is an organizational unit. Custodian offices must reference an
// existing Office by name before any assignment is accepted; Code feeds
// the property-number format.
type Office struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"` // unique
	Code      string             `bson:"code" json:"code"` // e.g. "07"
	Head      string             `bson:"head,omitempty" json:"head,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

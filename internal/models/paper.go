package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Paper struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	File        string             `json:"file,omitempty" bson:"file,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
	IsDeleted   bool               `json:"is_deleted" bson:"is_deleted"`
}

func (p *Paper) Validate() error {
	if p.Title == "" || p.Description == "" {
		return errors.New("Title and description are required")
	}
	return nil
}

// Touch advances the update timestamp, guaranteeing it moves forward even
// when two mutations land within the clock's resolution.
func (p *Paper) Touch() {
	now := time.Now()
	if !now.After(p.UpdatedAt) {
		now = p.UpdatedAt.Add(time.Millisecond)
	}
	p.UpdatedAt = now
}

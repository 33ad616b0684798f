package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Profile struct {
	Country    string `json:"country" bson:"country"`
	Department string `json:"department" bson:"department"`
}

// User is the document stored in the users collection. JoinDate becomes
// DateJoined once the rename step of the update section has run.
type User struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name" validate:"required,max=100"`
	Age        int                `json:"age" bson:"age" validate:"gte=0,lte=150"`
	Email      string             `json:"email" bson:"email" validate:"required,email"`
	Status     string             `json:"status" bson:"status" validate:"required,user_status"`
	Skills     []string           `json:"skills" bson:"skills" validate:"dive,required,max=50"`
	JoinDate   *time.Time         `json:"joinDate,omitempty" bson:"joinDate,omitempty"`
	DateJoined *time.Time         `json:"dateJoined,omitempty" bson:"dateJoined,omitempty"`
	Profile    Profile            `json:"profile" bson:"profile"`
}

func (u *User) Validate() error {
	if err := GetValidator().Struct(u); err != nil {
		return FormatValidationError(err)
	}
	return nil
}

// Joined returns whichever join timestamp the document carries.
func (u *User) Joined() *time.Time {
	if u.JoinDate != nil {
		return u.JoinDate
	}
	return u.DateJoined
}

// Session lives in the TTL-indexed sessions collection.
type Session struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserName  string             `json:"user_name" bson:"userName"`
	CreatedAt time.Time          `json:"created_at" bson:"createdAt"`
}

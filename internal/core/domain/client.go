package domain

import "time"

// Client is a hiring company. It is also a login principal of its own.
type Client struct {
	ID            string    `json:"id" bson:"_id"`
	Name          string    `json:"name" bson:"name"`
	Email         string    `json:"email" bson:"email"`
	ContactPerson string    `json:"contact_person" bson:"contact_person"`
	Phone         string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Username      string    `json:"username" bson:"username"`
	Password      string    `json:"-" bson:"password"`
	OnboardedAt   time.Time `json:"onboarded_at" bson:"onboarded_at"`
	Active        bool      `json:"active" bson:"active"`
}

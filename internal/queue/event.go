// Package queue defines message payloads exchanged over the message broker.
package queue

// UserRegisteredQueue is the broker queue new-registration events go to.
const UserRegisteredQueue = "user.registered"

// UserRegisteredEvent is published when a user registers. Downstream
// consumers deliver the verification email without querying the primary
// database.
type UserRegisteredEvent struct {
	UserID            string `json:"user_id"`
	Email             string `json:"email"`
	VerificationToken string `json:"verification_token"`
	RegisteredAt      string `json:"registered_at"`
}

package models

import "time"

// User represents a dating profile
type User struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Email       string    `json:"email" bson:"email"`
	Bio         string    `json:"bio" bson:"bio"`
	Age         *int      `json:"age" bson:"age"`
	Gender      string    `json:"gender" bson:"gender"`
	Interests   []string  `json:"interests" bson:"interests"`
	Preferences []string  `json:"preferences" bson:"preferences"`
	PhotoURLs   []string  `json:"photo_urls" bson:"photo_urls"`
	PushToken   *string   `json:"push_token,omitempty" bson:"push_token,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// DateSuggestion represents a proposed date between two users
type DateSuggestion struct {
	ID        string    `json:"id" bson:"_id"`
	UserAID   string    `json:"user_a_id" bson:"user_a_id"`
	UserBID   string    `json:"user_b_id" bson:"user_b_id"`
	Status    Status    `json:"status" bson:"status"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// Participants returns both user ids of the suggestion
func (d *DateSuggestion) Participants() []string {
	return []string{d.UserAID, d.UserBID}
}

// HasParticipant reports whether userID is one of the two users
func (d *DateSuggestion) HasParticipant(userID string) bool {
	return d.UserAID == userID || d.UserBID == userID
}

// Partner returns the other participant, or "" if userID is not part of the suggestion
func (d *DateSuggestion) Partner(userID string) string {
	switch userID {
	case d.UserAID:
		return d.UserBID
	case d.UserBID:
		return d.UserAID
	}
	return ""
}

// Credential holds the login data of a locally registered user
type Credential struct {
	UserID       string    `json:"user_id" bson:"_id"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

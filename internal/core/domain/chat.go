package domain

import "time"

// ChatMessage is one entry of the append-only chat log.
type ChatMessage struct {
	ID         string    `json:"id" bson:"_id"`
	SenderID   string    `json:"sender_id" bson:"sender_id"`
	ReceiverID string    `json:"receiver_id" bson:"receiver_id"`
	Message    string    `json:"message" bson:"message"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}

// Between reports whether the message belongs to the conversation of a and b.
func (m ChatMessage) Between(a, b string) bool {
	return (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a)
}

// Involves reports whether id sent or received the message.
func (m ChatMessage) Involves(id string) bool {
	return m.SenderID == id || m.ReceiverID == id
}

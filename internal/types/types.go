package types

import (
	"time"
)

type User struct {
	Id        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// UserWithStatus is a user annotated with live presence and the most
// recent message exchanged with the requesting user.
type UserWithStatus struct {
	User
	IsOnline    bool         `json:"is_online"`
	LastMessage *LastMessage `json:"last_message,omitempty"`
}

type LastMessage struct {
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	IsRead    bool      `json:"is_read"`
}

type Conversation struct {
	Id        string    `json:"id"`
	User1Id   string    `json:"user1_id"`
	User2Id   string    `json:"user2_id"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

type Message struct {
	Id             string    `json:"id"`
	ConversationId string    `json:"conversation_id"`
	SenderId       string    `json:"sender_id"`
	ReceiverId     string    `json:"receiver_id"`
	Content        string    `json:"content"`
	IsDelivered    bool      `json:"is_delivered"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

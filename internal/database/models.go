package database

import "time"

type User struct {
	Id           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

type Conversation struct {
	Id        string
	User1Id   string
	User2Id   string
	CreatedAt time.Time
}

type Message struct {
	Id             string
	ConversationId string
	SenderId       string
	ReceiverId     string
	Content        string
	IsDelivered    bool
	IsRead         bool
	CreatedAt      time.Time
}

type CreateUserParams struct {
	Username     string
	PasswordHash string
}

type CreateMessageParams struct {
	ConversationId string
	SenderId       string
	ReceiverId     string
	Content        string
}

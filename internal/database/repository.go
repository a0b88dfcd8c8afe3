package database

import "errors"

// ErrDuplicateUser is returned by CreateUser when the username is taken.
var ErrDuplicateUser = errors.New("username already exists")

type Repository interface {
	Ping() error
	CreateUser(params CreateUserParams) (User, error)
	GetUserByUsername(username string) (User, error)
	GetUserById(id string) (User, error)
	ListUsers() ([]User, error)
	GetOrCreateConversation(userA, userB string) (Conversation, error)
	CreateMessage(params CreateMessageParams) (Message, error)
	GetConversationMessages(conversationId string) ([]Message, error)
	SetDelivered(messageId string) error
	SetRead(messageId string) error
	GetMessageById(messageId string) (Message, error)
	GetLastMessageBetween(userA, userB string) (Message, error)
}

package database

import (
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Ping() error {
	args := m.Called()
	return args.Error(0)
}
func (m *MockRepository) CreateUser(params CreateUserParams) (User, error) {
	args := m.Called(params)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockRepository) GetUserByUsername(username string) (User, error) {
	args := m.Called(username)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockRepository) GetUserById(id string) (User, error) {
	args := m.Called(id)
	return args.Get(0).(User), args.Error(1)
}
func (m *MockRepository) ListUsers() ([]User, error) {
	args := m.Called()
	return args.Get(0).([]User), args.Error(1)
}
func (m *MockRepository) GetOrCreateConversation(userA, userB string) (Conversation, error) {
	args := m.Called(userA, userB)
	return args.Get(0).(Conversation), args.Error(1)
}
func (m *MockRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	args := m.Called(params)
	return args.Get(0).(Message), args.Error(1)
}
func (m *MockRepository) GetConversationMessages(conversationId string) ([]Message, error) {
	args := m.Called(conversationId)
	return args.Get(0).([]Message), args.Error(1)
}
func (m *MockRepository) SetDelivered(messageId string) error {
	args := m.Called(messageId)
	return args.Error(0)
}
func (m *MockRepository) SetRead(messageId string) error {
	args := m.Called(messageId)
	return args.Error(0)
}
func (m *MockRepository) GetMessageById(messageId string) (Message, error) {
	args := m.Called(messageId)
	return args.Get(0).(Message), args.Error(1)
}
func (m *MockRepository) GetLastMessageBetween(userA, userB string) (Message, error) {
	args := m.Called(userA, userB)
	return args.Get(0).(Message), args.Error(1)
}

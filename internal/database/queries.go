package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

func (db *PgRepository) CreateUser(params CreateUserParams) (User, error) {
	res := db.conn.QueryRow(
		"INSERT INTO users (id, username, password_hash, created_at) "+
			"VALUES ($1, $2, $3, $4) RETURNING id, username, created_at",
		uuid.NewString(),
		params.Username,
		params.PasswordHash,
		time.Now().UTC(),
	)

	var u User
	err := res.Scan(
		&u.Id,
		&u.Username,
		&u.CreatedAt,
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return User{}, ErrDuplicateUser
	}

	return u, err
}

func (db *PgRepository) GetUserByUsername(username string) (User, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, password_hash, created_at FROM users "+
			"WHERE username = $1 LIMIT 1",
		username,
	)

	var user User
	err := row.Scan(
		&user.Id,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	return user, err
}

func (db *PgRepository) GetUserById(id string) (User, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, created_at FROM users "+
			"WHERE id = $1 LIMIT 1",
		id,
	)

	var user User
	err := row.Scan(
		&user.Id,
		&user.Username,
		&user.CreatedAt,
	)

	return user, err
}

func (db *PgRepository) ListUsers() ([]User, error) {
	rows, err := db.conn.Query("SELECT id, username, created_at FROM users ORDER BY username")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users = make([]User, 0)
	for rows.Next() {
		var user User
		if err = rows.Scan(&user.Id, &user.Username, &user.CreatedAt); err != nil {
			break
		}

		users = append(users, user)
	}

	return users, err
}

// GetOrCreateConversation fetches the conversation for a user pair,
// inserting it first if this is the pair's first contact. The insert is a
// no-op when the row already exists, so concurrent first contact from both
// participants yields a single record.
func (db *PgRepository) GetOrCreateConversation(userA, userB string) (Conversation, error) {
	id := ConversationId(userA, userB)

	_, err := db.conn.Exec(
		"INSERT INTO conversations (id, user1_id, user2_id, created_at) "+
			"VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING",
		id,
		min(userA, userB),
		max(userA, userB),
		time.Now().UTC(),
	)
	if err != nil {
		return Conversation{}, err
	}

	row := db.conn.QueryRow(
		"SELECT id, user1_id, user2_id, created_at FROM conversations "+
			"WHERE id = $1 LIMIT 1",
		id,
	)

	var conv Conversation
	err = row.Scan(
		&conv.Id,
		&conv.User1Id,
		&conv.User2Id,
		&conv.CreatedAt,
	)

	return conv, err
}

func (db *PgRepository) CreateMessage(params CreateMessageParams) (Message, error) {
	res := db.conn.QueryRow(
		"INSERT INTO messages (id, conversation_id, sender_id, receiver_id, content, created_at) "+
			"VALUES ($1, $2, $3, $4, $5, $6) "+
			"RETURNING id, conversation_id, sender_id, receiver_id, content, is_delivered, is_read, created_at",
		uuid.NewString(),
		params.ConversationId,
		params.SenderId,
		params.ReceiverId,
		params.Content,
		time.Now().UTC(),
	)

	var msg Message
	err := res.Scan(
		&msg.Id,
		&msg.ConversationId,
		&msg.SenderId,
		&msg.ReceiverId,
		&msg.Content,
		&msg.IsDelivered,
		&msg.IsRead,
		&msg.CreatedAt,
	)

	return msg, err
}

func (db *PgRepository) GetConversationMessages(conversationId string) ([]Message, error) {
	rows, err := db.conn.Query(
		"SELECT id, conversation_id, sender_id, receiver_id, content, is_delivered, is_read, created_at "+
			"FROM messages WHERE conversation_id = $1 ORDER BY created_at ASC",
		conversationId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages = make([]Message, 0)
	for rows.Next() {
		var msg Message
		if err = rows.Scan(
			&msg.Id,
			&msg.ConversationId,
			&msg.SenderId,
			&msg.ReceiverId,
			&msg.Content,
			&msg.IsDelivered,
			&msg.IsRead,
			&msg.CreatedAt,
		); err != nil {
			break
		}

		messages = append(messages, msg)
	}

	return messages, err
}

func (db *PgRepository) SetDelivered(messageId string) error {
	_, err := db.conn.Exec("UPDATE messages SET is_delivered = TRUE WHERE id = $1", messageId)

	return err
}

func (db *PgRepository) SetRead(messageId string) error {
	_, err := db.conn.Exec("UPDATE messages SET is_read = TRUE WHERE id = $1", messageId)

	return err
}

func (db *PgRepository) GetMessageById(messageId string) (Message, error) {
	row := db.conn.QueryRow(
		"SELECT id, conversation_id, sender_id, receiver_id, content, is_delivered, is_read, created_at "+
			"FROM messages WHERE id = $1 LIMIT 1",
		messageId,
	)

	var msg Message
	err := row.Scan(
		&msg.Id,
		&msg.ConversationId,
		&msg.SenderId,
		&msg.ReceiverId,
		&msg.Content,
		&msg.IsDelivered,
		&msg.IsRead,
		&msg.CreatedAt,
	)

	return msg, err
}

func (db *PgRepository) GetLastMessageBetween(userA, userB string) (Message, error) {
	row := db.conn.QueryRow(
		"SELECT id, conversation_id, sender_id, receiver_id, content, is_delivered, is_read, created_at "+
			"FROM messages WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1) "+
			"ORDER BY created_at DESC LIMIT 1",
		userA,
		userB,
	)

	var msg Message
	err := row.Scan(
		&msg.Id,
		&msg.ConversationId,
		&msg.SenderId,
		&msg.ReceiverId,
		&msg.Content,
		&msg.IsDelivered,
		&msg.IsRead,
		&msg.CreatedAt,
	)

	return msg, err
}

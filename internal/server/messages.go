package server

import (
	"net/http"
	"time"

	"dmchat/internal/types"
)

type BaseMessage struct {
	Id        int       `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ClientMessage is the tagged union of every event a connection may send.
// Exactly one of the variant fields is set; Client.Read dispatches on the
// populated variant and rejects anything else.
type ClientMessage struct {
	BaseMessage
	Publish     *Publish     `json:"publish,omitempty"`
	Read        *ReadReceipt `json:"read,omitempty"`
	TypingStart *Typing      `json:"typing_start,omitempty"`
	TypingStop  *Typing      `json:"typing_stop,omitempty"`
	client      *Client
}

// Publish asks the server to fan out an already-persisted message to its
// recipient's live connection.
type Publish struct {
	Message    *types.Message `json:"message"`
	ReceiverId string         `json:"receiver_id"`
}

// ReadReceipt is the recipient's acknowledgement that a message was viewed.
type ReadReceipt struct {
	MessageId      string `json:"message_id"`
	ConversationId string `json:"conversation_id"`
}

type Typing struct {
	ReceiverId     string `json:"receiver_id"`
	ConversationId string `json:"conversation_id"`
}

// ServerMessage is the tagged union of every event pushed to a connection.
type ServerMessage struct {
	BaseMessage
	Response     *Response      `json:"response,omitempty"`
	Message      *types.Message `json:"message,omitempty"`
	Notification *Notification  `json:"notification,omitempty"`
}

type Response struct {
	ResponseCode int    `json:"response_code"`
	Error        string `json:"error,omitempty"`
	Data         any    `json:"data,omitempty"`
}

type Notification struct {
	Presence  *Presence       `json:"presence,omitempty"`
	Snapshot  *OnlineSnapshot `json:"snapshot,omitempty"`
	Delivered *Receipt        `json:"delivered,omitempty"`
	Read      *Receipt        `json:"read,omitempty"`
	Typing    *TypingEvent    `json:"typing,omitempty"`
}

type Presence struct {
	UserId string `json:"user_id"`
	Online bool   `json:"online"`
}

type OnlineSnapshot struct {
	UserIds []string `json:"user_ids"`
}

type Receipt struct {
	MessageId      string `json:"message_id"`
	ConversationId string `json:"conversation_id"`
}

type TypingEvent struct {
	UserId         string `json:"user_id"`
	ConversationId string `json:"conversation_id"`
	Started        bool   `json:"started"`
}

func NoErrOK(id int, data any) *ServerMessage {
	return &ServerMessage{
		BaseMessage: BaseMessage{
			Id:        id,
			Timestamp: Now(),
		},
		Response: &Response{
			ResponseCode: http.StatusOK,
			Data:         data,
		},
	}
}

func ErrInternalError(id int) *ServerMessage {
	return &ServerMessage{
		BaseMessage: BaseMessage{
			Id:        id,
			Timestamp: Now(),
		},
		Response: &Response{
			ResponseCode: http.StatusInternalServerError,
			Error:        "internal server error",
		},
	}
}

func ErrInvalidMessage(id int) *ServerMessage {
	msg := &ServerMessage{
		BaseMessage: BaseMessage{
			Timestamp: Now(),
		},
		Response: &Response{
			ResponseCode: http.StatusBadRequest,
			Error:        "invalid message format",
		},
	}

	if id > 0 {
		msg.Id = id
	}
	return msg
}

func Now() time.Time {
	return time.Now().UTC().Round(time.Millisecond)
}

package server

import (
	"database/sql"
	"errors"
)

// markDelivered advances a message to delivered. The update is monotonic
// and idempotent; the caller owns any sender-facing acknowledgement.
func (cs *ChatServer) markDelivered(messageId string) error {
	if err := cs.db.SetDelivered(messageId); err != nil {
		return err
	}

	cs.stats.Incr(statMessagesDelivered)
	return nil
}

// readMessage records a read acknowledgement from the recipient and, if the
// original sender is online, pushes a read receipt back to them. An offline
// sender still gets the durable flag; the live receipt is simply skipped.
// A read is routed even for a message never marked delivered.
func (cs *ChatServer) readMessage(msg *ClientMessage) {
	rr := msg.Read
	if rr.MessageId == "" {
		cs.log.Printf("dropping read receipt without message id from %q", msg.client.user.Username)
		msg.client.queueMessage(ErrInvalidMessage(msg.Id))
		return
	}

	if err := cs.db.SetRead(rr.MessageId); err != nil {
		cs.log.Println("SetRead:", err)
		msg.client.queueMessage(ErrInternalError(msg.Id))
		return
	}

	cs.stats.Incr(statMessagesRead)

	m, err := cs.db.GetMessageById(rr.MessageId)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			cs.log.Println("GetMessageById:", err)
		}
		return
	}

	sender, ok := cs.registry.Lookup(m.SenderId)
	if !ok {
		return
	}

	sender.queueMessage(&ServerMessage{
		BaseMessage: BaseMessage{Timestamp: Now()},
		Notification: &Notification{
			Read: &Receipt{
				MessageId:      rr.MessageId,
				ConversationId: rr.ConversationId,
			},
		},
	})
}

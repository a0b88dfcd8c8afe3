package server

// routeMessage fans an already-persisted message out to its recipient's
// live connection. An offline recipient is not an error: the message stays
// in the store in sent state and surfaces on their next history fetch.
// No push is queued or retried here.
func (cs *ChatServer) routeMessage(msg *ClientMessage) {
	pub := msg.Publish
	if pub.Message == nil || pub.Message.Id == "" || pub.ReceiverId == "" {
		cs.log.Printf("dropping malformed publish from %q", msg.client.user.Username)
		msg.client.queueMessage(ErrInvalidMessage(msg.Id))
		return
	}

	cs.stats.Incr(statMessagesRouted)

	recipient, ok := cs.registry.Lookup(pub.ReceiverId)
	if !ok {
		return
	}

	pushed := recipient.queueMessage(&ServerMessage{
		BaseMessage: BaseMessage{Timestamp: Now()},
		Message:     pub.Message,
	})
	if !pushed {
		// recipient's send queue rejected the push; the message stays
		// in sent state
		cs.log.Printf("push to %q failed, message %s not delivered", pub.ReceiverId, pub.Message.Id)
		return
	}

	if err := cs.markDelivered(pub.Message.Id); err != nil {
		cs.log.Println("markDelivered:", err)
		return
	}

	msg.client.queueMessage(&ServerMessage{
		BaseMessage: BaseMessage{Id: msg.Id, Timestamp: Now()},
		Notification: &Notification{
			Delivered: &Receipt{
				MessageId:      pub.Message.Id,
				ConversationId: pub.Message.ConversationId,
			},
		},
	})
}

// relayTyping forwards an ephemeral typing signal to the peer. Nothing is
// persisted or retained; an offline recipient means the event is dropped.
func (cs *ChatServer) relayTyping(c *Client, t *Typing, started bool) {
	if t.ReceiverId == "" {
		cs.log.Printf("dropping typing event without receiver from %q", c.user.Username)
		return
	}

	recipient, ok := cs.registry.Lookup(t.ReceiverId)
	if !ok {
		return
	}

	cs.stats.Incr(statTypingEvents)

	recipient.queueMessage(&ServerMessage{
		BaseMessage: BaseMessage{Timestamp: Now()},
		Notification: &Notification{
			Typing: &TypingEvent{
				UserId:         c.user.Id,
				ConversationId: t.ConversationId,
				Started:        started,
			},
		},
	})
}

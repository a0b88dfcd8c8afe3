package server

// RegisterClient records c as its user's live connection and announces the
// change. The registry mutation happens before any event is emitted, so no
// peer can observe an online announcement for a user whose entry is not
// yet queryable.
func (cs *ChatServer) RegisterClient(c *Client) {
	prev := cs.registry.Register(c.user.Id, c)
	if prev != nil {
		// single active session per user: the stale connection loses
		cs.log.Printf("replacing connection for %q", c.user.Username)
		prev.stopClient()
	} else {
		cs.stats.Incr(statActiveConnections)
	}

	c.queueMessage(&ServerMessage{
		BaseMessage: BaseMessage{Timestamp: Now()},
		Notification: &Notification{
			Snapshot: &OnlineSnapshot{UserIds: cs.registry.ListOnline()},
		},
	})

	cs.broadcastPresence(c.user.Id, true, c)
}

// UnregisterClient removes c's registry entry and announces the user
// offline. A connection that was already replaced no longer owns its
// user's entry, so its teardown announces nothing.
func (cs *ChatServer) UnregisterClient(c *Client) {
	if !cs.registry.Unregister(c.user.Id, c) {
		return
	}

	cs.stats.Decr(statActiveConnections)
	cs.broadcastPresence(c.user.Id, false, nil)
}

func (cs *ChatServer) broadcastPresence(userId string, online bool, skip *Client) {
	msg := &ServerMessage{
		BaseMessage: BaseMessage{Timestamp: Now()},
		Notification: &Notification{
			Presence: &Presence{UserId: userId, Online: online},
		},
	}

	for _, id := range cs.registry.ListOnline() {
		peer, ok := cs.registry.Lookup(id)
		if !ok || peer == skip {
			continue
		}

		peer.queueMessage(msg)
	}
}

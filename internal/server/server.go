package server

import (
	"log"

	"dmchat/internal/database"
	"dmchat/internal/stats"
)

const (
	statActiveConnections = "NumActiveConnections"
	statMessagesRouted    = "NumMessagesRouted"
	statMessagesDelivered = "NumMessagesDelivered"
	statMessagesRead      = "NumMessagesRead"
	statTypingEvents      = "NumTypingEvents"
)

// ChatServer coordinates presence, message routing and receipt tracking
// across all live connections. The connection registry is its only shared
// mutable state; everything else is reached through the durable store.
type ChatServer struct {
	log      *log.Logger
	db       database.Repository
	registry ConnRegistry
	stats    stats.StatsProvider
}

func NewChatServer(logger *log.Logger, db database.Repository, registry ConnRegistry, su stats.StatsProvider) (*ChatServer, error) {
	cs := &ChatServer{
		log:      logger,
		db:       db,
		registry: registry,
		stats:    su,
	}

	su.RegisterMetric(statActiveConnections)
	su.RegisterMetric(statMessagesRouted)
	su.RegisterMetric(statMessagesDelivered)
	su.RegisterMetric(statMessagesRead)
	su.RegisterMetric(statTypingEvents)

	return cs, nil
}

// IsOnline reports whether the user currently has a live connection.
func (cs *ChatServer) IsOnline(userId string) bool {
	_, ok := cs.registry.Lookup(userId)
	return ok
}

// Shutdown stops every live connection. Each client unregisters itself as
// its read pump winds down.
func (cs *ChatServer) Shutdown() {
	cs.log.Println("stopping all connections")
	for _, userId := range cs.registry.ListOnline() {
		if c, ok := cs.registry.Lookup(userId); ok {
			c.stopClient()
		}
	}
}

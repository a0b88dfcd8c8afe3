package server

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dmchat/internal/database"
	"dmchat/internal/stats"
	"dmchat/internal/types"
)

func testMessage(id string) *types.Message {
	return &types.Message{
		Id:             id,
		ConversationId: "user-a-user-b",
		SenderId:       "user-a",
		ReceiverId:     "user-b",
		Content:        "hi",
		CreatedAt:      Now(),
	}
}

func TestChatServer_routeMessage(t *testing.T) {
	t.Run("recipient online", func(t *testing.T) {
		db := &database.MockRepository{}
		db.On("SetDelivered", "msg-1").Return(nil).Once()
		defer db.AssertExpectations(t)

		su := &stats.MockStatsUpdater{}
		su.On("Incr", statActiveConnections).Twice()
		su.On("Incr", statMessagesRouted).Once()
		su.On("Incr", statMessagesDelivered).Once()
		defer su.AssertExpectations(t)

		cs := newTestChatServer(t, db, su)
		alice := newTestClient(t, cs, types.User{Id: "user-a", Username: "alice"})
		bob := newTestClient(t, cs, types.User{Id: "user-b", Username: "bob"})
		cs.RegisterClient(alice)
		cs.RegisterClient(bob)
		drain(alice)
		drain(bob)

		msg := testMessage("msg-1")
		cs.routeMessage(&ClientMessage{
			BaseMessage: BaseMessage{Id: 7, Timestamp: Now()},
			Publish:     &Publish{Message: msg, ReceiverId: "user-b"},
			client:      alice,
		})

		bobMsgs := drain(bob)
		assert.Len(t, bobMsgs, 1, "expected recipient to receive the message push")
		assert.Equal(t, msg, bobMsgs[0].Message, "expected the full message payload")

		aliceMsgs := drain(alice)
		assert.Len(t, aliceMsgs, 1, "expected sender to receive the delivery acknowledgement")
		delivered := aliceMsgs[0].Notification.Delivered
		assert.NotNil(t, delivered, "expected a delivered receipt")
		assert.Equal(t, "msg-1", delivered.MessageId)
		assert.Equal(t, msg.ConversationId, delivered.ConversationId)
		assert.Equal(t, 7, aliceMsgs[0].Id, "expected the ack to echo the request id")
	})

	t.Run("recipient offline", func(t *testing.T) {
		db := &database.MockRepository{}
		defer db.AssertExpectations(t)

		su := &stats.MockStatsUpdater{}
		su.On("Incr", statActiveConnections).Once()
		su.On("Incr", statMessagesRouted).Once()
		defer su.AssertExpectations(t)

		cs := newTestChatServer(t, db, su)
		alice := newTestClient(t, cs, types.User{Id: "user-a", Username: "alice"})
		cs.RegisterClient(alice)
		drain(alice)

		cs.routeMessage(&ClientMessage{
			BaseMessage: BaseMessage{Id: 1, Timestamp: Now()},
			Publish:     &Publish{Message: testMessage("msg-1"), ReceiverId: "user-b"},
			client:      alice,
		})

		// no delivery transition, no acknowledgement: durable storage is
		// the only fallback
		assert.Empty(t, drain(alice), "expected no acknowledgement for an offline recipient")
		db.AssertNotCalled(t, "SetDelivered", "msg-1")
	})

	t.Run("delivery flag update fails", func(t *testing.T) {
		db := &database.MockRepository{}
		db.On("SetDelivered", "msg-1").Return(assert.AnError).Once()
		defer db.AssertExpectations(t)

		su := &stats.MockStatsUpdater{}
		su.On("Incr", statActiveConnections).Twice()
		su.On("Incr", statMessagesRouted).Once()
		defer su.AssertExpectations(t)

		cs := newTestChatServer(t, db, su)
		alice := newTestClient(t, cs, types.User{Id: "user-a", Username: "alice"})
		bob := newTestClient(t, cs, types.User{Id: "user-b", Username: "bob"})
		cs.RegisterClient(alice)
		cs.RegisterClient(bob)
		drain(alice)
		drain(bob)

		cs.routeMessage(&ClientMessage{
			BaseMessage: BaseMessage{Id: 1, Timestamp: Now()},
			Publish:     &Publish{Message: testMessage("msg-1"), ReceiverId: "user-b"},
			client:      alice,
		})

		assert.Len(t, drain(bob), 1, "expected the push to have been attempted")
		assert.Empty(t, drain(alice), "expected no acknowledgement when the delivered flag was not persisted")
	})

	t.Run("malformed publish", func(t *testing.T) {
		tcases := []struct {
			name    string
			publish *Publish
		}{
			{
				name:    "missing message",
				publish: &Publish{ReceiverId: "user-b"},
			},
			{
				name:    "missing message id",
				publish: &Publish{Message: &types.Message{}, ReceiverId: "user-b"},
			},
			{
				name:    "missing receiver id",
				publish: &Publish{Message: testMessage("msg-1")},
			},
		}

		for _, tc := range tcases {
			t.Run(tc.name, func(t *testing.T) {
				db := &database.MockRepository{}
				defer db.AssertExpectations(t)

				su := &stats.MockStatsUpdater{}
				su.On("Incr", statActiveConnections).Once()
				defer su.AssertExpectations(t)

				cs := newTestChatServer(t, db, su)
				alice := newTestClient(t, cs, types.User{Id: "user-a", Username: "alice"})
				cs.RegisterClient(alice)
				drain(alice)

				cs.routeMessage(&ClientMessage{
					BaseMessage: BaseMessage{Id: 1, Timestamp: Now()},
					Publish:     tc.publish,
					client:      alice,
				})

				msgs := drain(alice)
				assert.Len(t, msgs, 1, "expected an error response")
				assert.Equal(t, 400, msgs[0].Response.ResponseCode, "expected a bad request response")
				assert.True(t, cs.IsOnline("user-a"), "expected the offending connection to stay alive")
			})
		}
	})
}

func TestChatServer_relayTyping(t *testing.T) {
	t.Run("recipient online", func(t *testing.T) {
		su := &stats.MockStatsUpdater{}
		su.On("Incr", statActiveConnections).Twice()
		su.On("Incr", statTypingEvents).Twice()
		defer su.AssertExpectations(t)

		cs := newTestChatServer(t, &database.MockRepository{}, su)
		alice := newTestClient(t, cs, types.User{Id: "user-a", Username: "alice"})
		bob := newTestClient(t, cs, types.User{Id: "user-b", Username: "bob"})
		cs.RegisterClient(alice)
		cs.RegisterClient(bob)
		drain(alice)
		drain(bob)

		typing := &Typing{ReceiverId: "user-b", ConversationId: "user-a-user-b"}
		cs.relayTyping(alice, typing, true)
		cs.relayTyping(alice, typing, false)

		bobMsgs := drain(bob)
		assert.Len(t, bobMsgs, 2, "expected both typing events to be forwarded")

		start := bobMsgs[0].Notification.Typing
		assert.NotNil(t, start, "expected a typing notification")
		assert.Equal(t, "user-a", start.UserId, "expected the forwarded event to name the sender")
		assert.Equal(t, "user-a-user-b", start.ConversationId)
		assert.True(t, start.Started)

		stop := bobMsgs[1].Notification.Typing
		assert.False(t, stop.Started)

		assert.Empty(t, drain(alice), "expected nothing echoed to the sender")
	})

	t.Run("recipient offline drops silently", func(t *testing.T) {
		su := &stats.MockStatsUpdater{}
		su.On("Incr", statActiveConnections).Once()
		defer su.AssertExpectations(t)

		cs := newTestChatServer(t, &database.MockRepository{}, su)
		alice := newTestClient(t, cs, types.User{Id: "user-a", Username: "alice"})
		cs.RegisterClient(alice)
		drain(alice)

		cs.relayTyping(alice, &Typing{ReceiverId: "user-b", ConversationId: "user-a-user-b"}, true)

		assert.Empty(t, drain(alice), "expected no error for typing to an offline user")
	})

	t.Run("missing receiver id", func(t *testing.T) {
		su := &stats.MockStatsUpdater{}
		su.On("Incr", statActiveConnections).Once()
		defer su.AssertExpectations(t)

		cs := newTestChatServer(t, &database.MockRepository{}, su)
		alice := newTestClient(t, cs, types.User{Id: "user-a", Username: "alice"})
		cs.RegisterClient(alice)
		drain(alice)

		cs.relayTyping(alice, &Typing{ConversationId: "user-a-user-b"}, true)

		assert.Empty(t, drain(alice), "expected the malformed event to be dropped")
	})
}

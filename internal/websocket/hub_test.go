package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/banklite/backoffice-gin/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitFor 轮询等待条件成立
func waitFor(t *testing.T, cond func() bool) {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within deadline")
}

// TestHub_RegisterUnregister 测试客户端注册与注销
func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := NewClient("c1", "user-001", hub, nil)
	hub.Register <- client
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.Unregister <- client
	waitFor(t, func() bool { return hub.ClientCount() == 0 })

	// 注销后 Send channel 被关闭
	_, open := <-client.Send
	assert.False(t, open)
}

// TestHub_BroadcastDelivery 测试广播投递到所有客户端
func TestHub_BroadcastDelivery(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c1 := NewClient("c1", "user-001", hub, nil)
	c2 := NewClient("c2", "user-002", hub, nil)
	hub.Register <- c1
	hub.Register <- c2
	waitFor(t, func() bool { return hub.ClientCount() == 2 })

	hub.Broadcast <- []byte("hello")

	for _, c := range []*Client{c1, c2} {
		select {
		case msg := <-c.Send:
			assert.Equal(t, "hello", string(msg))
		case <-time.After(time.Second):
			t.Fatal("client did not receive broadcast")
		}
	}
}

// TestBroadcaster_NotifyTransactionEvent 测试交易事件广播器
func TestBroadcaster_NotifyTransactionEvent(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := NewClient("c1", "user-001", hub, nil)
	hub.Register <- client
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	broadcaster := NewTransactionBroadcaster(hub)
	broadcaster.NotifyTransactionEvent("transaction.approved", &model.TransactionModel{
		ID:        "tx-001",
		AccountID: "acc-001",
		Amount:    1234.56,
		Status:    model.TransactionStatusApproved,
		DecidedBy: "user-admin",
	})

	select {
	case payload := <-client.Send:
		var event TransactionEvent
		require.NoError(t, json.Unmarshal(payload, &event))
		assert.Equal(t, "transaction.approved", event.Type)
		assert.Equal(t, "tx-001", event.ID)
		assert.Equal(t, "user-admin", event.DecidedBy)
	case <-time.After(time.Second):
		t.Fatal("client did not receive transaction event")
	}
}

// TestBroadcaster_NilSafe 测试 nil Hub 和 nil 交易的安全性
func TestBroadcaster_NilSafe(t *testing.T) {
	broadcaster := NewTransactionBroadcaster(nil)
	broadcaster.NotifyTransactionEvent("transaction.approved", &model.TransactionModel{ID: "tx-001"})

	broadcaster = NewTransactionBroadcaster(NewHub())
	broadcaster.NotifyTransactionEvent("transaction.approved", nil)
}

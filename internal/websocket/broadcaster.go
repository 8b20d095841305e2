package websocket

import (
	"encoding/json"
	"time"

	"github.com/banklite/backoffice-gin/internal/model"
)

// TransactionEvent 推送给仪表盘的交易事件
type TransactionEvent struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	DecidedBy string    `json:"decided_by,omitempty"`
}

// TransactionBroadcaster 把交易状态变化广播到 Hub
// 实现 service.TransactionNotifier
type TransactionBroadcaster struct {
	hub *Hub
}

// NewTransactionBroadcaster 创建交易事件广播器
func NewTransactionBroadcaster(hub *Hub) *TransactionBroadcaster {
	return &TransactionBroadcaster{hub: hub}
}

// NotifyTransactionEvent 序列化事件并投递到广播 channel
// Hub 繁忙时丢弃事件,不阻塞业务操作
func (b *TransactionBroadcaster) NotifyTransactionEvent(eventType string, tx *model.TransactionModel) {
	if b.hub == nil || tx == nil {
		return
	}

	event := TransactionEvent{
		Type:      eventType,
		Timestamp: time.Now(),
		ID:        tx.ID,
		AccountID: tx.AccountID,
		Amount:    tx.Amount,
		Status:    tx.Status,
		DecidedBy: tx.DecidedBy,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return
	}

	select {
	case b.hub.Broadcast <- payload:
	default:
	}
}

package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"salemargin/internal/core/id"
	"salemargin/internal/domain/events"
)

// OutboxStatus represents the state of an outbox message.
type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "pending"
	OutboxStatusPublished OutboxStatus = "published"
	OutboxStatusFailed    OutboxStatus = "failed"
)

// OutboxMessage is one event row awaiting delivery. The margin core writes
// rows; an external relay drains them to whatever bus the deployment uses.
type OutboxMessage struct {
	ID          id.ID        `db:"id"`
	Channel     string       `db:"channel"`
	Payload     []byte       `db:"payload"`
	Status      OutboxStatus `db:"status"`
	RetryCount  int          `db:"retry_count"`
	LastError   *string      `db:"last_error"`
	CreatedAt   time.Time    `db:"created_at"`
	PublishedAt *time.Time   `db:"published_at"`
}

// OutboxNotifier implements events.Notifier by appending to the outbox
// table. Writing the row is the whole emit contract; delivery happens
// elsewhere, so from the emitter's perspective this is fire-and-forget.
type OutboxNotifier struct {
	db *TxManager
}

// NewOutboxNotifier creates an outbox-backed notifier.
func NewOutboxNotifier(db *TxManager) *OutboxNotifier {
	return &OutboxNotifier{db: db}
}

// Notify implements events.Notifier.
func (n *OutboxNotifier) Notify(ctx context.Context, channel string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	_, err = n.db.GetQuerier(ctx).Exec(ctx, `
		INSERT INTO sys_outbox (id, channel, payload, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id.New(), channel, body, OutboxStatusPending, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert outbox message: %w", err)
	}
	return nil
}

// FetchPending returns up to limit undelivered messages, oldest first.
// Intended for the external relay process.
func (n *OutboxNotifier) FetchPending(ctx context.Context, limit int) ([]OutboxMessage, error) {
	rows, err := n.db.GetQuerier(ctx).Query(ctx, `
		SELECT id, channel, payload, status, retry_count, last_error, created_at, published_at
		FROM sys_outbox
		WHERE status = $1
		ORDER BY id
		LIMIT $2
	`, OutboxStatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch pending outbox messages: %w", err)
	}
	defer rows.Close()

	var messages []OutboxMessage
	for rows.Next() {
		var m OutboxMessage
		if err := rows.Scan(&m.ID, &m.Channel, &m.Payload, &m.Status, &m.RetryCount, &m.LastError, &m.CreatedAt, &m.PublishedAt); err != nil {
			return nil, fmt.Errorf("scan outbox message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// MarkPublished flags a message as delivered.
func (n *OutboxNotifier) MarkPublished(ctx context.Context, messageID id.ID) error {
	_, err := n.db.GetQuerier(ctx).Exec(ctx, `
		UPDATE sys_outbox SET status = $1, published_at = $2 WHERE id = $3
	`, OutboxStatusPublished, time.Now().UTC(), messageID)
	return err
}

// MarkFailed flags a message as undeliverable and records the reason.
func (n *OutboxNotifier) MarkFailed(ctx context.Context, messageID id.ID, cause error) error {
	msg := cause.Error()
	_, err := n.db.GetQuerier(ctx).Exec(ctx, `
		UPDATE sys_outbox
		SET status = $1, retry_count = retry_count + 1, last_error = $2
		WHERE id = $3
	`, OutboxStatusFailed, msg, messageID)
	return err
}

var _ events.Notifier = (*OutboxNotifier)(nil)

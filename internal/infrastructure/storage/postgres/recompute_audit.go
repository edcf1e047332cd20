package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	appctx "salemargin/internal/core/context"
	"salemargin/internal/core/id"
	"salemargin/internal/domain/orders"
)

// CompressionAlgo specifies the compression algorithm used for a log row.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// RecomputeLogEntry is one row of the margin recompute trail: which order
// was recomputed, why, and the resulting totals.
type RecomputeLogEntry struct {
	ID                id.ID           `db:"id"`
	OrderID           id.ID           `db:"order_id"`
	Trigger           string          `db:"trigger"`
	UserID            string          `db:"user_id"`
	Changes           json.RawMessage `db:"changes"`
	ChangesCompressed []byte          `db:"changes_compressed"`
	CompressionAlgo   CompressionAlgo `db:"compression_algo"`
	CreatedAt         time.Time       `db:"created_at"`
}

// RecomputeAudit records margin recomputations. Large change payloads
// (batch recomputes over many orders produce them) are zstd-compressed.
type RecomputeAudit struct {
	db                *TxManager
	encoder           *zstd.Encoder
	compressThreshold int // bytes
}

// NewRecomputeAudit creates a recompute audit service.
func NewRecomputeAudit(db *TxManager) (*RecomputeAudit, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	return &RecomputeAudit{
		db:                db,
		encoder:           encoder,
		compressThreshold: 10 * 1024,
	}, nil
}

// LogRecompute implements orders.RecomputeAuditor.
func (s *RecomputeAudit) LogRecompute(ctx context.Context, orderID id.ID, trigger string, changes any) error {
	body, err := json.Marshal(changes)
	if err != nil {
		return fmt.Errorf("marshal recompute changes: %w", err)
	}

	entry := RecomputeLogEntry{
		ID:              id.New(),
		OrderID:         orderID,
		Trigger:         trigger,
		Changes:         body,
		CompressionAlgo: CompressionNone,
		CreatedAt:       time.Now().UTC(),
	}

	if user := appctx.GetUser(ctx); user != nil {
		entry.UserID = user.UserID
	}

	if len(entry.Changes) > s.compressThreshold {
		entry.ChangesCompressed = s.encoder.EncodeAll(entry.Changes, nil)
		entry.Changes = nil
		entry.CompressionAlgo = CompressionZstd
	}

	_, err = s.db.GetQuerier(ctx).Exec(ctx, `
		INSERT INTO sys_recompute_log (
			id, order_id, trigger, user_id,
			changes, changes_compressed, compression_algo, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, entry.ID, entry.OrderID, entry.Trigger, entry.UserID,
		entry.Changes, entry.ChangesCompressed, entry.CompressionAlgo, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert recompute log entry: %w", err)
	}
	return nil
}

var _ orders.RecomputeAuditor = (*RecomputeAudit)(nil)

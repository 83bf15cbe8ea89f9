package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Transaction : Transfer record between two accounts.
//
// Rows are append-only. Nothing in the codebase updates a transaction
// after it has been inserted.
type Transaction struct {
	ID                uuid.UUID       `json:"id" bun:"type:uuid,pk"`
	SenderAccountID   uuid.UUID       `json:"sender_account_id" bun:"type:uuid,notnull"`
	SenderAccount     *Account        `json:"-" bun:"rel:belongs-to,join:sender_account_id=id"`
	ReceiverAccountID uuid.UUID       `json:"receiver_account_id" bun:"type:uuid,notnull"`
	ReceiverAccount   *Account        `json:"-" bun:"rel:belongs-to,join:receiver_account_id=id"`
	Amount            decimal.Decimal `json:"amount" bun:"type:numeric(30,2),notnull"`
	Details           string          `json:"details" bun:",nullzero"`
	CreatedAt         time.Time       `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}

func (t *Transaction) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok && t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Transaction)(nil)

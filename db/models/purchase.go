package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Purchase : Stock position, one row per (user, symbol).
//
// Quantity accumulates on buy and decrements on sell; the row is
// deleted when the quantity reaches exactly zero. Quantity can never go
// negative.
type Purchase struct {
	ID          uuid.UUID    `json:"id" bun:"type:uuid,pk"`
	UserID      uuid.UUID    `json:"user_id" bun:"type:uuid,notnull"`
	User        *User        `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	AccountID   uuid.UUID    `json:"account_id" bun:"type:uuid,notnull"`
	Account     *Account     `json:"-" bun:"rel:belongs-to,join:account_id=id"`
	StockSymbol string       `json:"stock_symbol" bun:",notnull"`
	Quantity    int64        `json:"quantity" bun:",notnull"`
	CreatedAt   time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt   bun.NullTime `json:"updated_at"`
}

func (p *Purchase) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery:
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
	case *bun.UpdateQuery:
		p.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Purchase)(nil)

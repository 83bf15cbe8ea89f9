package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Account : Account Model
//
// Balance is stored as numeric so monetary arithmetic stays exact.
// The balance of every account must stay >= 0, enforced both by the
// balance mutator and by a DB-level check.
type Account struct {
	ID        uuid.UUID       `json:"id" bun:"type:uuid,pk"`
	UserID    uuid.UUID       `json:"user_id" bun:"type:uuid,notnull"`
	User      *User           `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	Balance   decimal.Decimal `json:"balance" bun:"type:numeric(30,2),notnull,default:0"`
	Type      string          `json:"account_type" bun:",notnull"`
	Currency  string          `json:"currency" bun:",notnull"`
	CreatedAt time.Time       `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt bun.NullTime    `json:"updated_at"`
}

func (a *Account) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery:
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
	case *bun.UpdateQuery:
		a.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Account)(nil)

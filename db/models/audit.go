package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AccountTransaction : Append-only audit record scoped to an account.
type AccountTransaction struct {
	ID              uuid.UUID `json:"id" bun:"type:uuid,pk"`
	AccountID       uuid.UUID `json:"account_id" bun:"type:uuid,notnull"`
	Account         *Account  `json:"-" bun:"rel:belongs-to,join:account_id=id"`
	TransactionType string    `json:"transaction_type" bun:",notnull"`
	Details         string    `json:"details" bun:",nullzero"`
	CreatedAt       time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}

// UserTransaction : Append-only audit record scoped to a user.
type UserTransaction struct {
	ID              uuid.UUID `json:"id" bun:"type:uuid,pk"`
	UserID          uuid.UUID `json:"user_id" bun:"type:uuid,notnull"`
	User            *User     `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	TransactionType string    `json:"transaction_type" bun:",notnull"`
	Details         string    `json:"details" bun:",nullzero"`
	CreatedAt       time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}

func (t *AccountTransaction) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok && t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *UserTransaction) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	if _, ok := query.(*bun.InsertQuery); ok && t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

var (
	_ bun.BeforeAppendModelHook = (*AccountTransaction)(nil)
	_ bun.BeforeAppendModelHook = (*UserTransaction)(nil)
)

package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AccountPreference : Saved payee alias for a user.
//
// The (user_id, alias, receiver_account_id) triple is unique. A
// preference is created lazily on transfer when the caller asks to save
// the recipient, and updated in place when the alias changes for an
// existing (user, receiver) pairing.
type AccountPreference struct {
	ID                uuid.UUID    `json:"id" bun:"type:uuid,pk"`
	UserID            uuid.UUID    `json:"user_id" bun:"type:uuid,notnull"`
	User              *User        `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	Alias             string       `json:"alias" bun:",nullzero"`
	ReceiverAccountID uuid.UUID    `json:"receiver_account_id" bun:"type:uuid,notnull"`
	ReceiverAccount   *Account     `json:"-" bun:"rel:belongs-to,join:receiver_account_id=id"`
	CreatedAt         time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt         bun.NullTime `json:"updated_at"`
}

func (p *AccountPreference) BeforeAppendModel(ctx context.Context, query bun.Query) error {
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

var _ bun.BeforeAppendModelHook = (*AccountPreference)(nil)

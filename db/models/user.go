package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User : User Model
type User struct {
	ID          uuid.UUID    `json:"id" bun:"type:uuid,pk"`
	Email       string       `json:"email" bun:",notnull,unique"`
	Name        string       `json:"name" bun:",notnull"`
	Password    string       `json:"-" bun:",notnull"`
	CreditScore int          `json:"credit_score" bun:",notnull,default:0"`
	CreatedAt   time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt   bun.NullTime `json:"updated_at"`
}

func (u *User) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery:
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
	case *bun.UpdateQuery:
		u.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*User)(nil)

package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Loan : Loan Model
//
// LoanAmount is the outstanding balance. It decreases toward zero via
// payments and never goes negative. A loan with LoanAmount == 0 is
// fully repaid; repaid loans are kept, not deleted.
type Loan struct {
	ID           uuid.UUID       `json:"id" bun:"type:uuid,pk"`
	AccountID    uuid.UUID       `json:"account_id" bun:"type:uuid,notnull"`
	Account      *Account        `json:"-" bun:"rel:belongs-to,join:account_id=id"`
	LoanAmount   decimal.Decimal `json:"loan_amount" bun:"type:numeric(30,2),notnull"`
	LoanDuration int             `json:"loan_duration" bun:",notnull"`
	CreatedAt    time.Time       `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt    bun.NullTime    `json:"updated_at"`
}

func (l *Loan) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery:
		if l.ID == uuid.Nil {
			l.ID = uuid.New()
		}
	case *bun.UpdateQuery:
		l.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

// Repaid reports whether the loan has been fully paid off.
func (l *Loan) Repaid() bool {
	return l.LoanAmount.IsZero()
}

var _ bun.BeforeAppendModelHook = (*Loan)(nil)

package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {

		if db.Dialect().Name().String() != "pg" {
			fmt.Printf("\033[1;31m%s\033[0m", "You are not using PostgreSQL. DB level checks can not be enabled!\n")
			return nil
		}
		sql := `
			-- make sure transfers happen from one account to another one
				ALTER TABLE transactions
				ADD CONSTRAINT check_not_same_account
				CHECK (sender_account_id != receiver_account_id);

			-- transfer amounts are strictly positive
				ALTER TABLE transactions
				ADD CONSTRAINT check_positive_amount
				CHECK (amount > 0);

			-- account balances can never go negative, whatever the
			-- application layer does
				ALTER TABLE accounts
				ADD CONSTRAINT check_non_negative_balance
				CHECK (balance >= 0);

			-- stock positions can never go negative
				ALTER TABLE purchases
				ADD CONSTRAINT check_non_negative_quantity
				CHECK (quantity >= 0);

			-- outstanding loan balances decrease toward zero, never below
				ALTER TABLE loans
				ADD CONSTRAINT check_non_negative_loan_amount
				CHECK (loan_amount >= 0);

			-- one position row per (user, symbol)
				CREATE UNIQUE INDEX purchases_user_symbol_idx
				ON purchases (user_id, stock_symbol);

			-- saved payee triples are unique
				CREATE UNIQUE INDEX account_preferences_unique_idx
				ON account_preferences (user_id, alias, receiver_account_id);

			-- deleting an account removes its dependents
				ALTER TABLE transactions
				ADD CONSTRAINT fk_transactions_sender
				FOREIGN KEY (sender_account_id) REFERENCES accounts (id) ON DELETE CASCADE;
				ALTER TABLE transactions
				ADD CONSTRAINT fk_transactions_receiver
				FOREIGN KEY (receiver_account_id) REFERENCES accounts (id) ON DELETE CASCADE;
				ALTER TABLE account_preferences
				ADD CONSTRAINT fk_account_preferences_receiver
				FOREIGN KEY (receiver_account_id) REFERENCES accounts (id) ON DELETE CASCADE;
				ALTER TABLE account_transactions
				ADD CONSTRAINT fk_account_transactions_account
				FOREIGN KEY (account_id) REFERENCES accounts (id) ON DELETE CASCADE;
				ALTER TABLE loans
				ADD CONSTRAINT fk_loans_account
				FOREIGN KEY (account_id) REFERENCES accounts (id) ON DELETE CASCADE;
				ALTER TABLE purchases
				ADD CONSTRAINT fk_purchases_account
				FOREIGN KEY (account_id) REFERENCES accounts (id) ON DELETE CASCADE;
		`
		if _, err := db.Exec(sql); err != nil {
			return err
		}
		return nil
	}, nil)
}

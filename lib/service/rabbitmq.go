package service

import (
	"context"
	"encoding/json"
	"io"

	"github.com/kaang457/vault/db/models"
)

// SubscribeSettledTransactions hands the rabbitmq publisher a channel
// fed by the in-process pubsub.
func (svc *VaultService) SubscribeSettledTransactions(ctx context.Context) (chan models.Transaction, func(), error) {
	incoming := make(chan models.Transaction)
	subId := svc.TxPubSub.SubscribeAll(incoming)
	unsub := func() {
		svc.TxPubSub.Unsubscribe(subId, "*")
	}
	return incoming, unsub, nil
}

type transactionEvent struct {
	models.Transaction
	SenderUserEmail string `json:"sender_user_email"`
}

// EncodeTransactionWithSender enriches the published event with the
// sending user's email so consumers do not need a DB lookup.
func (svc *VaultService) EncodeTransactionWithSender(ctx context.Context, w io.Writer, transaction models.Transaction) error {
	account, err := svc.FindAccount(ctx, transaction.SenderAccountID)
	if err != nil {
		return err
	}
	user, err := svc.FindUser(ctx, account.UserID)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(transactionEvent{
		Transaction:     transaction,
		SenderUserEmail: user.Email,
	})
}

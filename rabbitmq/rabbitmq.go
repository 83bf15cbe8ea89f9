package rabbitmq

import (
	"bytes"
	"context"
	"io"
	"os"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/kaang457/vault/db/models"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/ziflex/lecho/v3"
)

// bufPool is a classic buffer pool pattern that allows more clever reuse of heap memory.
// Instead of allocating new memory everytime we need to encode a transaction we
// reuse buffers from this buffer pool.
var bufPool = sync.Pool{
	New: func() interface{} { return new(bytes.Buffer) },
}

const (
	contentTypeJSON = "application/json"
)

type (
	SubscribeToTransactionsFunc = func(ctx context.Context) (incoming chan models.Transaction, unsub func(), err error)
	EncodeTransactionFunc       = func(ctx context.Context, w io.Writer, transaction models.Transaction) error
)

type Client interface {
	StartPublishTransactions(context.Context, SubscribeToTransactionsFunc, EncodeTransactionFunc) error
	// Close will close all connections to rabbitmq
	Close() error
}

type DefaultClient struct {
	amqp AMQPClient

	logger *lecho.Logger

	transactionExchange string
}

type ClientOption = func(client *DefaultClient)

func WithTransactionExchange(exchange string) ClientOption {
	return func(client *DefaultClient) {
		client.transactionExchange = exchange
	}
}

func WithLogger(logger *lecho.Logger) ClientOption {
	return func(client *DefaultClient) {
		client.logger = logger
	}
}

func NewClient(amqpClient AMQPClient, options ...ClientOption) (Client, error) {
	client := &DefaultClient{
		amqp: amqpClient,

		logger: lecho.New(
			os.Stdout,
			lecho.WithLevel(log.DEBUG),
			lecho.WithTimestamp(),
		),

		transactionExchange: "vault_transaction",
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

func (client *DefaultClient) Close() error { return client.amqp.Close() }

// StartPublishTransactions streams settled transactions from the
// in-process pubsub to the transaction exchange until the context is
// canceled. Encoding failures are reported and skipped, they never stop
// the stream.
func (client *DefaultClient) StartPublishTransactions(ctx context.Context, subscribe SubscribeToTransactionsFunc, encode EncodeTransactionFunc) error {
	err := client.amqp.ExchangeDeclare(
		client.transactionExchange,
		// topic exchanges route to queues based on a routing key
		"topic",
		// Durable and Non-Auto-Deleted exchanges will survive server restarts and remain
		// declared when there are no remaining bindings.
		true,
		false,
		// Non-Internal exchanges accept direct publishing
		false,
		// Nowait: wait for a server response to check whether the
		// exchange was created succesfully
		false,
		nil,
	)
	if err != nil {
		return err
	}

	incoming, unsub, err := subscribe(ctx)
	if err != nil {
		return err
	}
	defer unsub()

	for {
		select {
		case transaction, ok := <-incoming:
			if !ok {
				return nil
			}
			if err := client.publishTransaction(ctx, transaction, encode); err != nil {
				client.logger.Errorf("Error publishing transaction %v: %v", transaction.ID, err)
				sentry.CaptureException(err)
			}
		case <-ctx.Done():
			return context.Canceled
		}
	}
}

func (client *DefaultClient) publishTransaction(ctx context.Context, transaction models.Transaction, encode EncodeTransactionFunc) error {
	payload := bufPool.Get().(*bytes.Buffer)
	payload.Reset()
	defer bufPool.Put(payload)

	if err := encode(ctx, payload, transaction); err != nil {
		return err
	}

	key := "transaction.settled"
	client.logger.Debugf("publishing transaction %v with routing key %s", transaction.ID, key)

	return client.amqp.PublishWithContext(ctx,
		client.transactionExchange,
		key,
		false,
		false,
		amqp.Publishing{
			ContentType: contentTypeJSON,
			Body:        payload.Bytes(),
		},
	)
}

package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/kaang457/vault/db/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type publishedMessage struct {
	exchange string
	key      string
	body     []byte
}

type mockAMQPClient struct {
	mu sync.Mutex

	declaredExchange string
	declaredKind     string
	declaredDurable  bool

	published []publishedMessage

	publishErr error
	declareErr error
}

func (m *mockAMQPClient) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	body := make([]byte, len(msg.Body))
	copy(body, msg.Body)
	m.published = append(m.published, publishedMessage{exchange: exchange, key: key, body: body})
	return nil
}

func (m *mockAMQPClient) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	m.declaredExchange = name
	m.declaredKind = kind
	m.declaredDurable = durable
	return m.declareErr
}

func (m *mockAMQPClient) Close() error { return nil }

func subscribeWith(transactions ...models.Transaction) SubscribeToTransactionsFunc {
	return func(ctx context.Context) (chan models.Transaction, func(), error) {
		incoming := make(chan models.Transaction, len(transactions))
		for _, transaction := range transactions {
			incoming <- transaction
		}
		close(incoming)
		return incoming, func() {}, nil
	}
}

func encodeJSON(ctx context.Context, w io.Writer, transaction models.Transaction) error {
	return json.NewEncoder(w).Encode(transaction)
}

func TestPublishTransactions(t *testing.T) {
	mockClient := &mockAMQPClient{}
	client, err := NewClient(mockClient, WithTransactionExchange("test_transaction"))
	assert.NoError(t, err)

	transaction := models.Transaction{
		ID:                uuid.New(),
		SenderAccountID:   uuid.New(),
		ReceiverAccountID: uuid.New(),
		Amount:            decimal.NewFromInt(25),
		Details:           "lunch",
	}

	err = client.StartPublishTransactions(context.Background(), subscribeWith(transaction), encodeJSON)
	assert.NoError(t, err)

	assert.Equal(t, "test_transaction", mockClient.declaredExchange)
	assert.Equal(t, "topic", mockClient.declaredKind)
	assert.True(t, mockClient.declaredDurable)

	assert.Len(t, mockClient.published, 1)
	msg := mockClient.published[0]
	assert.Equal(t, "test_transaction", msg.exchange)
	assert.Equal(t, "transaction.settled", msg.key)

	var decoded models.Transaction
	assert.NoError(t, json.Unmarshal(msg.body, &decoded))
	assert.Equal(t, transaction.ID, decoded.ID)
	assert.True(t, transaction.Amount.Equal(decoded.Amount))
}

func TestPublishTransactionsStopsOnContextCancel(t *testing.T) {
	mockClient := &mockAMQPClient{}
	client, err := NewClient(mockClient)
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	subscribe := func(ctx context.Context) (chan models.Transaction, func(), error) {
		// never delivers, the publisher should exit on cancel
		return make(chan models.Transaction), func() {}, nil
	}

	done := make(chan error, 1)
	go func() {
		done <- client.StartPublishTransactions(ctx, subscribe, encodeJSON)
	}()
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestPublishTransactionsDeclareErrorAborts(t *testing.T) {
	declareErr := errors.New("exchange declare failed")
	mockClient := &mockAMQPClient{declareErr: declareErr}
	client, err := NewClient(mockClient)
	assert.NoError(t, err)

	err = client.StartPublishTransactions(context.Background(), subscribeWith(), encodeJSON)
	assert.ErrorIs(t, err, declareErr)
}

func TestPublishTransactionsSkipsEncodeFailures(t *testing.T) {
	mockClient := &mockAMQPClient{}
	client, err := NewClient(mockClient)
	assert.NoError(t, err)

	bad := models.Transaction{ID: uuid.New(), Details: "won't encode"}
	good := models.Transaction{ID: uuid.New(), Amount: decimal.NewFromInt(10)}

	encode := func(ctx context.Context, w io.Writer, transaction models.Transaction) error {
		if transaction.ID == bad.ID {
			return errors.New("encode failure")
		}
		return encodeJSON(ctx, w, transaction)
	}

	err = client.StartPublishTransactions(context.Background(), subscribeWith(bad, good), encode)
	assert.NoError(t, err)

	assert.Len(t, mockClient.published, 1)
	var decoded models.Transaction
	assert.NoError(t, json.Unmarshal(mockClient.published[0].body, &decoded))
	assert.Equal(t, good.ID, decoded.ID)
}

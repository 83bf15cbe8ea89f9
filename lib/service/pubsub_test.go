package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/kaang457/vault/db/models"
	"github.com/stretchr/testify/assert"
)

func TestPubsubDeliversToTopicAndWildcard(t *testing.T) {
	ps := NewPubsub()
	topic := uuid.New().String()

	topicCh := make(chan models.Transaction, 1)
	allCh := make(chan models.Transaction, 1)
	ps.Subscribe(topic, topicCh)
	ps.SubscribeAll(allCh)

	tx := models.Transaction{ID: uuid.New()}
	ps.Publish(topic, tx)

	assert.Equal(t, tx.ID, (<-topicCh).ID)
	assert.Equal(t, tx.ID, (<-allCh).ID)
}

func TestPubsubUnsubscribeClosesChannel(t *testing.T) {
	ps := NewPubsub()
	topic := uuid.New().String()

	ch := make(chan models.Transaction, 1)
	subId := ps.Subscribe(topic, ch)
	ps.Unsubscribe(subId, topic)

	_, open := <-ch
	assert.False(t, open)

	// publishing after unsubscribe must not panic or block
	ps.Publish(topic, models.Transaction{ID: uuid.New()})
}

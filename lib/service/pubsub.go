package service

import (
	"sync"

	"github.com/kaang457/vault/db/models"
	"github.com/labstack/gommon/random"
)

// Pubsub fans settled transactions out to in-process subscribers, keyed
// by account id. The rabbitmq publisher subscribes to every topic via
// SubscribeAll.
type Pubsub struct {
	mu   sync.RWMutex
	subs map[string]map[string]chan models.Transaction
}

const allTopics = "*"

func NewPubsub() *Pubsub {
	ps := &Pubsub{}
	ps.subs = make(map[string]map[string]chan models.Transaction)
	return ps
}

func (ps *Pubsub) Subscribe(topic string, ch chan models.Transaction) (subId string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.subs[topic] == nil {
		ps.subs[topic] = make(map[string]chan models.Transaction)
	}
	subId = random.String(16)
	ps.subs[topic][subId] = ch
	return subId
}

func (ps *Pubsub) SubscribeAll(ch chan models.Transaction) (subId string) {
	return ps.Subscribe(allTopics, ch)
}

func (ps *Pubsub) Unsubscribe(id string, topic string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.subs[topic] == nil {
		return
	}
	if ps.subs[topic][id] == nil {
		return
	}
	close(ps.subs[topic][id])
	delete(ps.subs[topic], id)
}

func (ps *Pubsub) Publish(topic string, msg models.Transaction) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	for _, ch := range ps.subs[topic] {
		ch <- msg
	}
	if topic != allTopics {
		for _, ch := range ps.subs[allTopics] {
			ch <- msg
		}
	}
}

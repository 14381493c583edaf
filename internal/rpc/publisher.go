package rpc

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/Kayanski/launchpad/internal/core/minter"
)

// MintStreamEvent is the payload broadcast to mint-stream subscribers after
// every completed mint.
type MintStreamEvent struct {
	Type       string             `json:"type"`
	Action     string             `json:"action"`
	Attributes []minter.Attribute `json:"attributes"`
	Timestamp  time.Time          `json:"timestamp"`
}

// Publisher fans completed-mint events out to stream subscribers. Slow
// subscribers are skipped, never waited on.
type Publisher struct {
	mu          sync.RWMutex
	nextID      uint64
	subscribers map[uint64]chan []byte
}

// NewPublisher creates a publisher with no subscribers.
func NewPublisher() *Publisher {
	return &Publisher{subscribers: make(map[uint64]chan []byte)}
}

// Subscribe registers a new subscriber and returns its id and channel.
func (p *Publisher) Subscribe() (uint64, <-chan []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	id := p.nextID
	ch := make(chan []byte, 64)
	p.subscribers[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (p *Publisher) Unsubscribe(id uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ch, ok := p.subscribers[id]; ok {
		delete(p.subscribers, id)
		close(ch)
	}
}

// SubscriberCount returns the number of active subscribers.
func (p *Publisher) SubscriberCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subscribers)
}

// PublishResponse broadcasts an event when the response describes a completed
// mint. Non-mint responses are ignored.
func (p *Publisher) PublishResponse(action string, resp *minter.Response) {
	if resp == nil || !hasAttribute(resp, "token_id") {
		return
	}
	event := MintStreamEvent{
		Type:       "mint",
		Action:     action,
		Attributes: resp.Attributes,
		Timestamp:  time.Now().UTC(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal mint stream event: %v", err)
		return
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	for id, ch := range p.subscribers {
		select {
		case ch <- data:
		default:
			log.Printf("[WARN] dropping mint event for slow subscriber %d", id)
		}
	}
}

func hasAttribute(resp *minter.Response, key string) bool {
	for _, attr := range resp.Attributes {
		if attr.Key == key {
			return true
		}
	}
	return false
}

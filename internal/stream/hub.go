package stream

import (
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Hub fans live updates out to websocket subscribers by topic. When a redis
// client is present, updates are also bridged across processes via pub/sub.
type Hub struct {
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	Topic string
	Send  chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:   redisClient,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(topic string) *Client {
	client := &Client{
		Topic: topic,
		Send:  make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[topic] == nil {
		h.clients[topic] = map[*Client]struct{}{}
	}
	h.clients[topic][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if topicClients, ok := h.clients[client.Topic]; ok {
		delete(topicClients, client)
		if len(topicClients) == 0 {
			delete(h.clients, client.Topic)
		}
	}
	close(client.Send)
}

// Broadcast sends a payload to every subscriber of the topic. With redis
// attached the payload travels through pub/sub so other instances see it
// too; the local delivery then happens in the subscribe loop.
func (h *Hub) Broadcast(topic string, payload []byte) {
	if h.redis == nil {
		h.deliver(topic, payload)
		return
	}
	if err := h.redis.Publish(context.Background(), redisChannel(topic), payload).Err(); err != nil {
		log.Printf("redis publish error: %v", err)
		h.deliver(topic, payload)
	}
}

// deliver holds the read lock for the whole fan-out so a concurrent
// Unregister cannot close a channel mid-send. Sends never block: the
// buffered channel plus the default case drops payloads for slow clients.
func (h *Hub) deliver(topic string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[topic] {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "gigcalc:*:events")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		topic := topicFromChannel(msg.Channel)
		if topic == "" {
			continue
		}
		h.deliver(topic, []byte(msg.Payload))
	}
}

func redisChannel(topic string) string {
	return "gigcalc:" + topic + ":events"
}

func topicFromChannel(ch string) string {
	// gigcalc:{topic}:events
	const prefix = "gigcalc:"
	const suffix = ":events"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}

package stream

import (
	"context"
	"strings"
	"sync"

	"backend-erickshaw/internal/logger"

	"github.com/redis/go-redis/v9"
)

const (
	channelPrefix = "erickshaw:"
	channelSuffix = ":events"
)

// Hub fans payloads out to websocket clients subscribed to a topic. With a
// Redis client every broadcast goes through pub/sub so that all API
// instances deliver it; without one delivery is local.
type Hub struct {
	redis   *redis.Client
	pubsub  *redis.PubSub
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	Topic string
	Send  chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		ctx := context.Background()
		pubsub := redisClient.PSubscribe(ctx, channelPrefix+"*"+channelSuffix)
		if _, err := pubsub.Receive(ctx); err != nil {
			logger.For("stream").WithError(err).Warn("redis subscribe failed, falling back to local delivery")
			_ = pubsub.Close()
			return h
		}
		h.redis = redisClient
		h.pubsub = pubsub
		go h.forward(pubsub.Channel())
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
		if _, ok := topicClients[client]; !ok {
			return
		}
		delete(topicClients, client)
		if len(topicClients) == 0 {
			delete(h.clients, client.Topic)
		}
		close(client.Send)
	}
}

// Subscribers reports how many clients are registered on topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[topic])
}

func (h *Hub) Broadcast(topic string, payload []byte) {
	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(topic), payload).Err()
		if err == nil {
			return
		}
		logger.For("stream").WithError(err).WithField("topic", topic).Warn("redis publish failed, delivering locally")
	}
	h.deliver(topic, payload)
}

func (h *Hub) Close() error {
	if h.pubsub == nil {
		return nil
	}
	return h.pubsub.Close()
}

func (h *Hub) deliver(topic string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[topic] {
		select {
		case client.Send <- payload:
		default:
			logger.For("stream").WithField("topic", topic).Debug("client buffer full, dropping message")
		}
	}
}

func (h *Hub) forward(messages <-chan *redis.Message) {
	for msg := range messages {
		topic := topicFromChannel(msg.Channel)
		if topic == "" {
			continue
		}
		h.deliver(topic, []byte(msg.Payload))
	}
}

func redisChannel(topic string) string {
	return channelPrefix + topic + channelSuffix
}

func topicFromChannel(ch string) string {
	// erickshaw:{topic}:events
	if len(ch) <= len(channelPrefix)+len(channelSuffix) {
		return ""
	}
	if !strings.HasPrefix(ch, channelPrefix) || !strings.HasSuffix(ch, channelSuffix) {
		return ""
	}
	return ch[len(channelPrefix) : len(ch)-len(channelSuffix)]
}

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RahulBiswas1704/bowlit-app/internal/models"

	"github.com/go-redis/redis/v8"
)

// OrdersChannel is the pub/sub channel carrying order change events.
const OrdersChannel = "orders"

type Client struct {
	rdb *redis.Client
}

type SessionData struct {
	UserID    uint      `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Session management

func (c *Client) SetSession(ctx context.Context, token string, data *SessionData, ttl time.Duration) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	return c.rdb.Set(ctx, "session:"+token, jsonData, ttl).Err()
}

func (c *Client) GetSession(ctx context.Context, token string) (*SessionData, error) {
	val, err := c.rdb.Get(ctx, "session:"+token).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return &session, nil
}

func (c *Client) DeleteSession(ctx context.Context, token string) error {
	return c.rdb.Del(ctx, "session:"+token).Err()
}

// Cart storage. One JSON blob per user, last write wins.

func (c *Client) SetCart(ctx context.Context, userID uint, cart *models.Cart, ttl time.Duration) error {
	jsonData, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	key := fmt.Sprintf("cart:%d", userID)
	return c.rdb.Set(ctx, key, jsonData, ttl).Err()
}

func (c *Client) GetCart(ctx context.Context, userID uint) (*models.Cart, error) {
	key := fmt.Sprintf("cart:%d", userID)
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			// No stored cart means an empty cart
			return &models.Cart{Items: []models.CartItem{}}, nil
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(val), &cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}

	return &cart, nil
}

func (c *Client) DeleteCart(ctx context.Context, userID uint) error {
	key := fmt.Sprintf("cart:%d", userID)
	return c.rdb.Del(ctx, key).Err()
}

// Order event fan-out

func (c *Client) PublishOrderEvent(ctx context.Context, payload []byte) error {
	return c.rdb.Publish(ctx, OrdersChannel, payload).Err()
}

// SubscribeOrders returns a channel of raw order event payloads. The
// subscription lives until ctx is cancelled.
func (c *Client) SubscribeOrders(ctx context.Context) <-chan []byte {
	sub := c.rdb.Subscribe(ctx, OrdersChannel)
	out := make(chan []byte)

	go func() {
		defer close(out)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				out <- []byte(msg.Payload)
			}
		}
	}()

	return out
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

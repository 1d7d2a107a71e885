package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/RahulBiswas1704/bowlit-app/internal/cache"
	"github.com/RahulBiswas1704/bowlit-app/internal/services"
)

// Publisher sends order events through the redis channel so every server
// instance's hub sees them, not just the one that handled the write.
type Publisher struct {
	cache *cache.Client
}

func NewPublisher(cacheClient *cache.Client) *Publisher {
	return &Publisher{cache: cacheClient}
}

func (p *Publisher) PublishOrderEvent(ctx context.Context, event services.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}
	return p.cache.PublishOrderEvent(ctx, payload)
}

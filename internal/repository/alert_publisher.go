package repository

import (
	"context"
	"fmt"
	"time"

	"CoinPulse/internal/domain/models"
	"CoinPulse/pkg/kafka"
)

// AlertPublisher ships whale transactions to the alert topic, keyed by chain
// so one chain's alerts stay ordered within a partition.
type AlertPublisher struct {
	producer *kafka.Producer
	topic    string
}

func NewAlertPublisher(producer *kafka.Producer, topic string) *AlertPublisher {
	return &AlertPublisher{producer: producer, topic: topic}
}

type alertMessage struct {
	Chain        string                    `json:"chain"`
	Transactions []models.WhaleTransaction `json:"transactions"`
	PublishedAt  time.Time                 `json:"published_at"`
}

func (p *AlertPublisher) PublishAlerts(ctx context.Context, chain string, txs []models.WhaleTransaction) error {
	if len(txs) == 0 {
		return nil
	}
	err := p.producer.Publish(ctx, p.topic, []byte(chain), alertMessage{
		Chain:        chain,
		Transactions: txs,
		PublishedAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("publish whale alerts: %w", err)
	}
	return nil
}

package services

import (
	"context"
	"fmt"

	"dating-backend/internal/config"

	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/payload"
	"github.com/sideshow/apns2/token"
)

// APNSPusher sends notifications through Apple Push Notification service
// with token based (.p8) authentication.
type APNSPusher struct {
	client *apns2.Client
	topic  string
}

// NewAPNSPusher loads the signing key and creates the APNs client
func NewAPNSPusher(cfg config.APNSConfig) (*APNSPusher, error) {
	authKey, err := token.AuthKeyFromFile(cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load APNs key: %w", err)
	}

	client := apns2.NewTokenClient(&token.Token{
		AuthKey: authKey,
		KeyID:   cfg.KeyID,
		TeamID:  cfg.TeamID,
	})
	if cfg.Production {
		client = client.Production()
	} else {
		client = client.Development()
	}

	return &APNSPusher{client: client, topic: cfg.Topic}, nil
}

// Push implements Pusher
func (p *APNSPusher) Push(ctx context.Context, deviceToken, alert string, data map[string]any) error {
	pl := payload.NewPayload().Alert(alert).Sound("default")
	for k, v := range data {
		pl = pl.Custom(k, v)
	}

	res, err := p.client.PushWithContext(ctx, &apns2.Notification{
		DeviceToken: deviceToken,
		Topic:       p.topic,
		Payload:     pl,
	})
	if err != nil {
		return fmt.Errorf("failed to push notification: %w", err)
	}
	if !res.Sent() {
		return fmt.Errorf("apns rejected notification: %d %s", res.StatusCode, res.Reason)
	}
	return nil
}

package services

import (
	"context"

	"dating-backend/internal/models"
	"dating-backend/internal/repository"

	"github.com/rs/zerolog/log"
)

// Notifier tells participants about new suggestions and recorded decisions.
// Delivery is best effort; failures are logged by the implementation.
type Notifier interface {
	DateSuggested(ctx context.Context, date *models.DateSuggestion)
	DateStatusChanged(ctx context.Context, date *models.DateSuggestion)
}

// Pusher delivers a push notification to a device
type Pusher interface {
	Push(ctx context.Context, deviceToken, alert string, data map[string]any) error
}

// ParticipantNotifier sends a WebSocket message to online participants and
// falls back to a push notification for offline ones that registered a device.
type ParticipantNotifier struct {
	hub    *WSHub
	users  repository.UserStore
	pusher Pusher
}

// NewParticipantNotifier creates a notifier. pusher may be nil.
func NewParticipantNotifier(hub *WSHub, users repository.UserStore, pusher Pusher) *ParticipantNotifier {
	return &ParticipantNotifier{
		hub:    hub,
		users:  users,
		pusher: pusher,
	}
}

// DateSuggested implements Notifier
func (n *ParticipantNotifier) DateSuggested(ctx context.Context, date *models.DateSuggestion) {
	n.notify(ctx, date, MsgDateSuggested, "You have a new date suggestion")
}

// DateStatusChanged implements Notifier
func (n *ParticipantNotifier) DateStatusChanged(ctx context.Context, date *models.DateSuggestion) {
	n.notify(ctx, date, MsgDateStatusChanged, "Your date was "+string(date.Status))
}

func (n *ParticipantNotifier) notify(ctx context.Context, date *models.DateSuggestion, msgType, alert string) {
	for _, userID := range date.Participants() {
		if n.hub != nil && n.hub.IsOnline(userID) {
			err := n.hub.SendToUser(userID, WSMessage{Type: msgType, Date: date})
			if err == nil {
				continue
			}
			log.Warn().Err(err).Str("user_id", userID).Str("date_id", date.ID).Msg("WebSocket delivery failed")
		}

		if n.pusher == nil {
			continue
		}
		user, err := n.users.GetUser(ctx, userID)
		if err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("Failed to load user for push")
			continue
		}
		if user.PushToken == nil || *user.PushToken == "" {
			continue
		}

		data := map[string]any{
			"type":    msgType,
			"date_id": date.ID,
			"status":  string(date.Status),
		}
		if err := n.pusher.Push(ctx, *user.PushToken, alert, data); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Str("date_id", date.ID).Msg("Push delivery failed")
		}
	}
}

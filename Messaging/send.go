package Messaging

import (
	"context"
	"errors"
	"log"
	"time"

	"DocTools/Models"

	"firebase.google.com/go/v4/messaging"
)

// ValidateToken checks a device registration token with a dry-run send before
// it is persisted. Invalid or unregistered tokens come back as errors without
// anything being delivered.
func (h *Handle) ValidateToken(ctx context.Context, token string) error {
	if h.Inert() {
		return errors.New("messaging channel not initialized")
	}
	_, err := h.messagingClient.SendDryRun(ctx, &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: "validation",
		},
	})
	return err
}

// SendMessage mirrors a notification to a user's registered native devices.
// Browser windows get theirs over SSE; this covers the same user's phone.
func (h *Handle) SendMessage(req Models.NotificationRequest) error {
	if h.Inert() {
		h.LogInertOnce()
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	message := &messaging.Message{
		Notification: &messaging.Notification{
			Title: req.Title,
			Body:  req.Body,
		},
		Data: req.Data,
	}

	message.Android = &messaging.AndroidConfig{
		Priority: "high",
		Notification: &messaging.AndroidNotification{
			Sound:    "default",
			Priority: messaging.PriorityHigh,
		},
	}

	// Add APNS (iOS) config
	message.APNS = &messaging.APNSConfig{
		Headers: map[string]string{
			"apns-priority": "10",
		},
		Payload: &messaging.APNSPayload{
			Aps: &messaging.Aps{
				Alert: &messaging.ApsAlert{
					Title: req.Title,
					Body:  req.Body,
				},
				Sound: "default",
			},
		},
	}

	switch {
	case len(req.Tokens) == 1:
		message.Token = req.Tokens[0]
		_, err := h.messagingClient.Send(ctx, message)
		if err != nil {
			log.Printf("Error sending message: %v", err)
			return err
		}
	case len(req.Tokens) > 1:
		_, err := h.messagingClient.SendEachForMulticast(ctx, &messaging.MulticastMessage{
			Tokens:       req.Tokens,
			Notification: message.Notification,
			Data:         message.Data,
			Android:      message.Android,
			APNS:         message.APNS,
		})
		if err != nil {
			log.Printf("Error sending multicast message: %v", err)
			return err
		}
	}
	return nil

}

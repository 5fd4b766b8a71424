package fcm

import (
	"github.com/KasumiMercury/primind-push-dispatch/internal/domain"
)

const (
	androidChannelID = "primind_notifications"

	webpushIcon  = "/icon-192x192.png"
	webpushBadge = "/badge-72x72.png"
)

// Compose maps a generic push request onto the v1 cross-platform message
// shape. Pure transformation; identical input yields an identical message.
func Compose(req domain.PushRequest) SendRequest {
	var data map[string]string
	if len(req.Data) > 0 {
		data = make(map[string]string, len(req.Data))
		for k, v := range req.Data {
			data[k] = v
		}
	}

	return SendRequest{
		Message: Message{
			Token: req.Token,
			Notification: &Notification{
				Title: req.Title,
				Body:  req.Body,
			},
			Data: data,
			Android: &AndroidConfig{
				Priority: "HIGH",
				Notification: &AndroidNotification{
					ChannelID:             androidChannelID,
					DefaultSound:          true,
					DefaultVibrateTimings: true,
					NotificationPriority:  "PRIORITY_HIGH",
					Visibility:            "PUBLIC",
				},
			},
			APNS: &APNSConfig{
				Payload: APNSPayload{
					APS: APS{
						Alert: APSAlert{
							Title: req.Title,
							Body:  req.Body,
						},
						Sound:            "default",
						Badge:            1,
						ContentAvailable: 1,
					},
				},
			},
			Webpush: &WebpushConfig{
				Notification: &WebpushNotification{
					Title: req.Title,
					Body:  req.Body,
					Icon:  webpushIcon,
					Badge: webpushBadge,
				},
			},
		},
	}
}

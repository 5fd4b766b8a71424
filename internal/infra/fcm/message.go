package fcm

// FCM HTTP v1 wire types for projects.messages:send. Field names and JSON
// tags follow the v1 schema exactly; the legacy server-key format is not
// supported.

type SendRequest struct {
	Message Message `json:"message"`
}

type Message struct {
	Token        string            `json:"token"`
	Notification *Notification     `json:"notification,omitempty"`
	Data         map[string]string `json:"data,omitempty"`
	Android      *AndroidConfig    `json:"android,omitempty"`
	APNS         *APNSConfig       `json:"apns,omitempty"`
	Webpush      *WebpushConfig    `json:"webpush,omitempty"`
}

type Notification struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
}

type AndroidConfig struct {
	Priority     string               `json:"priority,omitempty"`
	Notification *AndroidNotification `json:"notification,omitempty"`
}

type AndroidNotification struct {
	ChannelID             string `json:"channel_id,omitempty"`
	DefaultSound          bool   `json:"default_sound,omitempty"`
	DefaultVibrateTimings bool   `json:"default_vibrate_timings,omitempty"`
	NotificationPriority  string `json:"notification_priority,omitempty"`
	Visibility            string `json:"visibility,omitempty"`
}

type APNSConfig struct {
	Payload APNSPayload `json:"payload"`
}

type APNSPayload struct {
	APS APS `json:"aps"`
}

type APS struct {
	Alert APSAlert `json:"alert"`
	Sound string   `json:"sound,omitempty"`
	Badge int      `json:"badge,omitempty"`
	// ContentAvailable wakes the app for delivery while backgrounded.
	ContentAvailable int `json:"content-available,omitempty"`
}

type APSAlert struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
}

type WebpushConfig struct {
	Notification *WebpushNotification `json:"notification,omitempty"`
}

type WebpushNotification struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
	Icon  string `json:"icon,omitempty"`
	Badge string `json:"badge,omitempty"`
}

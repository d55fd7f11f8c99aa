package Models

import (
	"encoding/json"
	"log"
)

// PushMessage is one payload delivered by the cloud messaging backend. All
// fields are optional on the wire; consumers must apply their own defaults.
type PushMessage struct {
	Notification PushNotification  `json:"notification"`
	Data         map[string]string `json:"data"`
}

type PushNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon"`
}

// DecodePushMessage parses the provider wire JSON. A field of the wrong type
// is dropped and treated as absent instead of failing the whole message, so a
// malformed optional field can never stop a notification from appearing.
func DecodePushMessage(raw []byte) PushMessage {
	var msg PushMessage

	var loose struct {
		Notification map[string]json.RawMessage `json:"notification"`
		Data         map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &loose); err != nil {
		log.Printf("Unparseable push payload, using defaults: %v", err)
		return msg
	}

	msg.Notification.Title = looseString(loose.Notification["title"])
	msg.Notification.Body = looseString(loose.Notification["body"])
	msg.Notification.Icon = looseString(loose.Notification["icon"])

	if len(loose.Data) > 0 {
		msg.Data = make(map[string]string, len(loose.Data))
		for key, value := range loose.Data {
			if s := looseString(value); s != "" {
				msg.Data[key] = s
			}
		}
	}
	return msg
}

func looseString(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// DisplayRequest is the "show notification" request handed to the windows:
// a title plus the options record the notification API expects. Exactly one
// is produced per received push; nothing is buffered or batched.
type DisplayRequest struct {
	ID      string              `json:"id"`
	Title   string              `json:"title"`
	Options NotificationOptions `json:"options"`
}

type NotificationOptions struct {
	Body  string            `json:"body"`
	Icon  string            `json:"icon"`
	Badge string            `json:"badge"`
	Tag   string            `json:"tag"`
	Data  map[string]string `json:"data"`
}

// ClickEvent is posted back by a window when the user clicks a displayed
// notification. Data carries the original push data forward, including the
// optional url.
type ClickEvent struct {
	NotificationID string            `json:"notification_id"`
	Tag            string            `json:"tag"`
	Data           map[string]string `json:"data"`
}

// WindowClient describes one live browser window at the moment the window
// set was queried.
type WindowClient struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// RoutingAction is the click router's decision: focus an existing window or
// open a new one at URL.
type RoutingAction struct {
	URL           string `json:"url"`
	FocusWindowID string `json:"focus_window_id,omitempty"`
	OpenNew       bool   `json:"open_new"`
}

// WindowCommand is one SSE event sent to attached windows.
type WindowCommand struct {
	Type           string          `json:"type"` // display, close, focus, open
	Notification   *DisplayRequest `json:"notification,omitempty"`
	NotificationID string          `json:"notification_id,omitempty"`
	URL            string          `json:"url,omitempty"`
	WindowID       string          `json:"window_id,omitempty"`
}

// Encode renders the command as the JSON string pushed over SSE.
func (cmd WindowCommand) Encode() string {
	out, err := json.Marshal(cmd)
	if err != nil {
		log.Printf("Failed to encode window command: %v", err)
		return "{}"
	}
	return string(out)
}

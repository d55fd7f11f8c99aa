package Worker

import (
	"log"
	"strconv"

	"DocTools/Constants"
	"DocTools/Models"

	"github.com/google/uuid"
)

// BuildDisplayRequest turns one inbound push into the notification to
// display. Every field falls back to a fixed default when absent, so a bare
// `{}` payload still produces a complete notification:
//
//	title        -> application name
//	body         -> generic new-notification text
//	icon, badge  -> app logo when no icon is sent
//	tag          -> "default"
//	data         -> empty map
func BuildDisplayRequest(msg Models.PushMessage) Models.DisplayRequest {
	title := msg.Notification.Title
	if title == "" {
		title = Constants.AppName
	}

	body := msg.Notification.Body
	if body == "" {
		body = Constants.DefaultNotificationBody
	}

	icon := msg.Notification.Icon
	if icon == "" {
		icon = Constants.LogoPath
	}

	data := msg.Data
	if data == nil {
		data = map[string]string{}
	}

	tag := data["tag"]
	if tag == "" {
		tag = Constants.DefaultNotificationTag
	}

	return Models.DisplayRequest{
		ID:    uuid.New().String(),
		Title: title,
		Options: Models.NotificationOptions{
			Body:  body,
			Icon:  icon,
			Badge: icon,
			Tag:   tag,
			Data:  data,
		},
	}
}

// handlePush builds the display request and issues it to the attached
// windows. The handler is done once the request is issued; the delivery
// itself settles under an extended lifetime so a teardown cannot drop it
// mid-display.
func (w *Worker) handlePush(msg Models.PushMessage) {
	req := BuildDisplayRequest(msg)

	w.extendLifetime(func() {
		w.windows.Broadcast(Models.WindowCommand{Type: "display", Notification: &req}.Encode())
		Models.RecordDisplayed(req)
		w.mirrorToDevices(req)
	})
}

// mirrorToDevices forwards the notification to the target user's registered
// native devices when the push names one. Browser windows already got theirs
// over SSE.
func (w *Worker) mirrorToDevices(req Models.DisplayRequest) {
	if w.handle.Inert() || Models.DB == nil {
		return
	}

	rawID := req.Options.Data["user_id"]
	if rawID == "" {
		return
	}
	userID, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		return
	}

	fcms, err := Models.GetFCMsByID(uint(userID))
	if err != nil || len(fcms) == 0 {
		return
	}

	if err := w.handle.SendMessage(Models.NotificationRequest{
		Tokens: fcms,
		Title:  req.Title,
		Body:   req.Options.Body,
		Data:   req.Options.Data,
	}); err != nil {
		log.Printf("Failed to mirror notification %s to devices: %v", req.ID, err)
	}
}

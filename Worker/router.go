package Worker

import (
	"log"

	"DocTools/Constants"
	"DocTools/Models"
)

// ResolveClick decides where a notification click should land given the
// window set as it stands at click time: the first window whose URL is
// exactly equal to the target is focused, otherwise a new window opens.
//
// Exact string equality is deliberate: "/reports" does not match
// "/reports/" or "/reports?x=1". The foreground worker behaves this way and
// the two must agree.
func ResolveClick(ev Models.ClickEvent, windows []Models.WindowClient) Models.RoutingAction {
	urlToOpen := ev.Data["url"]
	if urlToOpen == "" {
		urlToOpen = Constants.RootPath
	}

	for _, win := range windows {
		if win.URL == urlToOpen {
			return Models.RoutingAction{URL: urlToOpen, FocusWindowID: win.ID}
		}
	}
	return Models.RoutingAction{URL: urlToOpen, OpenNew: true}
}

// handleClick closes the clicked notification, then routes the click. The
// close goes out first and unconditionally so the notification never lingers
// in the tray, whatever happens to the focus/open step afterwards. Routing
// failures are swallowed: there is no user-visible error channel here.
func (w *Worker) handleClick(ev Models.ClickEvent) {
	w.windows.Broadcast(Models.WindowCommand{Type: "close", NotificationID: ev.NotificationID}.Encode())

	w.extendLifetime(func() {
		action := ResolveClick(ev, w.windows.Snapshot())

		if action.OpenNew {
			if !w.openWindow(action.URL) {
				log.Printf("No window could open %s, click dropped", action.URL)
			}
		} else {
			focus := Models.WindowCommand{Type: "focus", WindowID: action.FocusWindowID, URL: action.URL}
			if !w.windows.SendTo(action.FocusWindowID, focus.Encode()) {
				log.Printf("Window %s vanished before focus, click dropped", action.FocusWindowID)
			}
		}

		Models.RecordClickOutcome(ev.NotificationID, action)
	})
}

// openWindow asks any live window to open url in a new tab. With no window
// left to carry the request out, the click is lost, same as a blocked popup.
func (w *Worker) openWindow(url string) bool {
	cmd := Models.WindowCommand{Type: "open", URL: url}.Encode()
	for _, win := range w.windows.Snapshot() {
		if w.windows.SendTo(win.ID, cmd) {
			return true
		}
	}
	return false
}

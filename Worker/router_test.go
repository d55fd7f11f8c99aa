package Worker

import (
	"testing"

	"DocTools/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveClickFocusesExactMatch(t *testing.T) {
	windows := []Models.WindowClient{
		{ID: "w1", URL: "/"},
		{ID: "w2", URL: "/reports"},
	}
	ev := Models.ClickEvent{Data: map[string]string{"url": "/reports"}}

	action := ResolveClick(ev, windows)

	assert.Equal(t, "w2", action.FocusWindowID)
	assert.False(t, action.OpenNew)
	assert.Equal(t, "/reports", action.URL)
}

func TestResolveClickFirstMatchWins(t *testing.T) {
	windows := []Models.WindowClient{
		{ID: "w1", URL: "/reports"},
		{ID: "w2", URL: "/reports"},
	}
	ev := Models.ClickEvent{Data: map[string]string{"url": "/reports"}}

	action := ResolveClick(ev, windows)

	assert.Equal(t, "w1", action.FocusWindowID)
}

func TestResolveClickDoesNotNormalizeURLs(t *testing.T) {
	// A trailing slash defeats the match on purpose; the foreground worker
	// compares raw strings and the two sides must agree.
	windows := []Models.WindowClient{
		{ID: "w1", URL: "/reports/"},
		{ID: "w2", URL: "/reports?x=1"},
	}
	ev := Models.ClickEvent{Data: map[string]string{"url": "/reports"}}

	action := ResolveClick(ev, windows)

	assert.True(t, action.OpenNew)
	assert.Empty(t, action.FocusWindowID)
	assert.Equal(t, "/reports", action.URL)
}

func TestResolveClickNoURLFallsBackToRoot(t *testing.T) {
	action := ResolveClick(Models.ClickEvent{}, nil)

	assert.Equal(t, "/", action.URL)
	assert.True(t, action.OpenNew)
}

func TestResolveClickNoURLFocusesRootWindow(t *testing.T) {
	windows := []Models.WindowClient{{ID: "w1", URL: "/"}}

	action := ResolveClick(Models.ClickEvent{Data: map[string]string{}}, windows)

	assert.Equal(t, "w1", action.FocusWindowID)
	assert.False(t, action.OpenNew)
}

func TestHandleClickClosesBeforeRouting(t *testing.T) {
	windows := &fakeWindows{clients: []Models.WindowClient{{ID: "w1", URL: "/reports"}}}
	w := New(nil, windows)

	w.handleClick(Models.ClickEvent{
		NotificationID: "n1",
		Data:           map[string]string{"url": "/reports"},
	})
	w.Terminate()

	types := windows.commandTypes()
	require.NotEmpty(t, types)
	assert.Equal(t, "close", types[0], "close must be issued before any routing outcome")

	focus := requireCommand(t, windows.recorded(), "focus")
	assert.Equal(t, "w1", focus.WindowID)
}

func TestHandleClickClosesEvenWhenFocusFails(t *testing.T) {
	windows := &fakeWindows{
		clients:   []Models.WindowClient{{ID: "w1", URL: "/reports"}},
		failSends: true,
	}
	w := New(nil, windows)

	w.handleClick(Models.ClickEvent{
		NotificationID: "n1",
		Data:           map[string]string{"url": "/reports"},
	})
	w.Terminate()

	types := windows.commandTypes()
	require.NotEmpty(t, types)
	assert.Equal(t, "close", types[0])
	// The focus failure is swallowed; nothing else is attempted.
	requireCommand(t, windows.recorded(), "focus")
}

func TestHandleClickOpensNewWindowWhenNoMatch(t *testing.T) {
	windows := &fakeWindows{clients: []Models.WindowClient{{ID: "w1", URL: "/reports/"}}}
	w := New(nil, windows)

	w.handleClick(Models.ClickEvent{
		NotificationID: "n1",
		Data:           map[string]string{"url": "/reports"},
	})
	w.Terminate()

	open := requireCommand(t, windows.recorded(), "open")
	assert.Equal(t, "/reports", open.URL)
}

func TestHandleClickNoWindowsSwallowsFailure(t *testing.T) {
	windows := &fakeWindows{}
	w := New(nil, windows)

	w.handleClick(Models.ClickEvent{NotificationID: "n1"})
	w.Terminate()

	// Only the close goes out; the open has no window to carry it and the
	// failure is silent.
	assert.Equal(t, []string{"close"}, windows.commandTypes())
}

func TestClicksRouteIndependentlyDespiteSharedTag(t *testing.T) {
	windows := &fakeWindows{clients: []Models.WindowClient{
		{ID: "w1", URL: "/a"},
		{ID: "w2", URL: "/b"},
	}}

	first := New(nil, windows)
	first.handleClick(Models.ClickEvent{
		NotificationID: "n1",
		Tag:            "default",
		Data:           map[string]string{"url": "/a"},
	})
	first.Terminate()

	second := New(nil, windows)
	second.handleClick(Models.ClickEvent{
		NotificationID: "n2",
		Tag:            "default",
		Data:           map[string]string{"url": "/b"},
	})
	second.Terminate()

	var focused []string
	for _, cmd := range windows.recorded() {
		if cmd.Type == "focus" {
			focused = append(focused, cmd.WindowID)
		}
	}
	assert.Equal(t, []string{"w1", "w2"}, focused)
}

package Worker

import (
	"encoding/json"
	"sync"
	"testing"

	"DocTools/Models"

	"github.com/stretchr/testify/require"
)

// fakeWindows is a synthetic client window set recording every command in
// the order it was issued.
type fakeWindows struct {
	mu        sync.Mutex
	clients   []Models.WindowClient
	commands  []Models.WindowCommand
	targets   []string // "" for broadcasts, window id for sends
	failSends bool
}

func (f *fakeWindows) Snapshot() []Models.WindowClient {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Models.WindowClient(nil), f.clients...)
}

func (f *fakeWindows) SendTo(windowID string, event string) bool {
	f.record(windowID, event)
	if f.failSends {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.clients {
		if c.ID == windowID {
			return true
		}
	}
	return false
}

func (f *fakeWindows) Broadcast(event string) {
	f.record("", event)
}

func (f *fakeWindows) record(target, event string) {
	var cmd Models.WindowCommand
	_ = json.Unmarshal([]byte(event), &cmd)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, cmd)
	f.targets = append(f.targets, target)
}

func (f *fakeWindows) recorded() []Models.WindowCommand {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Models.WindowCommand(nil), f.commands...)
}

func (f *fakeWindows) commandTypes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	types := make([]string, 0, len(f.commands))
	for _, cmd := range f.commands {
		types = append(types, cmd.Type)
	}
	return types
}

func requireCommand(t *testing.T, commands []Models.WindowCommand, kind string) Models.WindowCommand {
	t.Helper()
	for _, cmd := range commands {
		if cmd.Type == kind {
			return cmd
		}
	}
	require.Failf(t, "command not issued", "no %q command in %v", kind, commands)
	return Models.WindowCommand{}
}

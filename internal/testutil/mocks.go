package testutil

import (
	"context"
	"sync"
)

// LaunchCall records one editor invocation
type LaunchCall struct {
	Editor string
	Files  []string
}

// MockLauncher records launches instead of starting a process
type MockLauncher struct {
	mu    sync.Mutex
	Err   error // returned from every Launch call when set
	Calls []LaunchCall
}

// Launch records the call and returns m.Err
func (m *MockLauncher) Launch(ctx context.Context, editor string, files []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, LaunchCall{Editor: editor, Files: append([]string(nil), files...)})
	return m.Err
}

// Name returns the launcher name
func (m *MockLauncher) Name() string {
	return "mock"
}

// CallCount returns the number of recorded launches
func (m *MockLauncher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

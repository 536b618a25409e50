package system

import (
	"context"
	"os/exec"
	"strings"
	"sync"
)

// MockExecutor implements CommandExecutor for testing.
type MockExecutor struct {
	mu sync.Mutex

	// Commands records all executed commands for verification.
	Commands []Command

	// Responses maps command patterns to responses. A pattern is either the
	// full command line ("git clone url dest"), the command and its first
	// argument ("git clone"), or the bare command name ("git").
	Responses map[string]MockResponse

	// Handler, when set, is consulted before Responses.
	Handler func(cmd Command) (MockResponse, bool)

	// DefaultResponse is used when no matching response is found.
	DefaultResponse MockResponse

	// Paths maps executable names to LookPath results. Names not present
	// are reported as not found.
	Paths map[string]string
}

// MockResponse defines the response for a command.
type MockResponse struct {
	Output []byte
	Err    error

	// ExitCode, when non-zero and Err is nil, makes the command fail with
	// an ExitError carrying this code.
	ExitCode int
}

func (r MockResponse) result(name string) ([]byte, error) {
	if r.Err != nil {
		return r.Output, r.Err
	}
	if r.ExitCode != 0 {
		return r.Output, &ExitError{Name: name, Code: r.ExitCode}
	}
	return r.Output, nil
}

// NewMockExecutor creates a new MockExecutor.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		Commands:  make([]Command, 0),
		Responses: make(map[string]MockResponse),
		Paths:     make(map[string]string),
	}
}

// AddResponse adds a response for a specific command pattern.
func (m *MockExecutor) AddResponse(pattern string, output []byte, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[pattern] = MockResponse{Output: output, Err: err}
}

// AddExit makes commands matching pattern exit with code.
func (m *MockExecutor) AddExit(pattern string, code int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[pattern] = MockResponse{ExitCode: code}
}

func (m *MockExecutor) Output(ctx context.Context, cmd Command) ([]byte, error) {
	return m.respond(cmd)
}

func (m *MockExecutor) Run(ctx context.Context, cmd Command) error {
	out, err := m.respond(cmd)
	if cmd.Stdout != nil && len(out) > 0 {
		_, _ = cmd.Stdout.Write(out)
	}
	return err
}

func (m *MockExecutor) LookPath(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.Paths[name]; ok {
		return p, nil
	}
	return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
}

func (m *MockExecutor) respond(cmd Command) ([]byte, error) {
	m.mu.Lock()
	m.Commands = append(m.Commands, cmd)
	handler := m.Handler
	m.mu.Unlock()

	if handler != nil {
		if resp, ok := handler(cmd); ok {
			return resp.result(cmd.Name)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	full := strings.Join(append([]string{cmd.Name}, cmd.Args...), " ")
	if resp, ok := m.Responses[full]; ok {
		return resp.result(cmd.Name)
	}
	if len(cmd.Args) > 0 {
		if resp, ok := m.Responses[cmd.Name+" "+cmd.Args[0]]; ok {
			return resp.result(cmd.Name)
		}
	}
	if resp, ok := m.Responses[cmd.Name]; ok {
		return resp.result(cmd.Name)
	}

	return m.DefaultResponse.result(cmd.Name)
}

// LastCommand returns the most recently executed command.
func (m *MockExecutor) LastCommand() (Command, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Commands) == 0 {
		return Command{}, false
	}
	return m.Commands[len(m.Commands)-1], true
}

// CommandLines returns every recorded command as a space-joined string.
func (m *MockExecutor) CommandLines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := make([]string, 0, len(m.Commands))
	for _, c := range m.Commands {
		lines = append(lines, strings.Join(append([]string{c.Name}, c.Args...), " "))
	}
	return lines
}

// Ran reports whether any recorded command line starts with prefix.
func (m *MockExecutor) Ran(prefix string) bool {
	for _, line := range m.CommandLines() {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// Reset clears all recorded commands.
func (m *MockExecutor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Commands = make([]Command, 0)
}

package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ptreezh/dnaspec-cli/internal/fallback"
	"github.com/ptreezh/dnaspec-cli/internal/logging"
	"github.com/ptreezh/dnaspec-cli/internal/system"
)

// Cloner clones a repository from an ordered list of mirrors.
type Cloner struct {
	exec    system.CommandExecutor
	timeout time.Duration

	// OnAttempt and OnFailure are called around each mirror attempt.
	OnAttempt func(url string)
	OnFailure func(url string, err error)
}

// NewCloner creates a cloner with a per-mirror timeout.
func NewCloner(exec system.CommandExecutor, timeout time.Duration) *Cloner {
	return &Cloner{exec: exec, timeout: timeout}
}

// IsRepo reports whether path holds a git checkout.
func IsRepo(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".git"))
	if err != nil {
		return false
	}
	// .git can be a directory (normal repo) or a file (worktree)
	return info.IsDir() || info.Mode().IsRegular()
}

// Clone runs "git clone <url> <dest>" against each mirror in order and
// returns the URL that succeeded. Each attempt gets its own timeout and a
// partially written dest is removed before the next mirror is tried.
func (c *Cloner) Clone(ctx context.Context, urls []string, dest string) (string, error) {
	strategies := make([]fallback.Strategy, 0, len(urls))
	for _, url := range urls {
		url := url
		strategies = append(strategies, fallback.Strategy{
			Name: url,
			Run: func(ctx context.Context) error {
				return c.cloneOne(ctx, url, dest)
			},
		})
	}

	chain := fallback.New(strategies...).WithHooks(fallback.Hooks{
		OnAttempt: func(url string) {
			logging.Debug("cloning repository", "url", url, "dest", dest, "timeout", c.timeout)
			if c.OnAttempt != nil {
				c.OnAttempt(url)
			}
		},
		OnFailure: func(a fallback.Attempt) {
			logging.Debug("clone attempt failed", "url", a.Name, "error", a.Err)
			if c.OnFailure != nil {
				c.OnFailure(a.Name, a.Err)
			}
		},
	})
	return chain.Run(ctx)
}

func (c *Cloner) cloneOne(ctx context.Context, url, dest string) error {
	if err := os.RemoveAll(dest); err != nil {
		return fmt.Errorf("failed to clear %s: %w", dest, err)
	}
	out, err := c.exec.Output(ctx, system.Command{
		Name:    "git",
		Args:    []string{"clone", url, dest},
		Timeout: c.timeout,
	})
	if err != nil {
		_ = os.RemoveAll(dest)
		if len(out) > 0 {
			return fmt.Errorf("%w: %s", err, lastLine(out))
		}
		return err
	}
	return nil
}

func lastLine(out []byte) string {
	end := len(out)
	for end > 0 && (out[end-1] == '\n' || out[end-1] == '\r') {
		end--
	}
	start := end
	for start > 0 && out[start-1] != '\n' {
		start--
	}
	return string(out[start:end])
}

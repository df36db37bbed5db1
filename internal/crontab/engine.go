package crontab

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strings"
)

// DefaultSpoolDir is the per-user crontab spool on Debian-family systems.
const DefaultSpoolDir = "/var/spool/cron/crontabs"

// Engine opens and installs crontab files. The zero value is not usable;
// construct with NewEngine.
type Engine struct {
	// SpoolDir is the per-user spool directory used to resolve user tabs.
	SpoolDir string

	// InstallCommand, when non-empty, is the crontab binary used to
	// install user tabs. When empty, user tabs are written straight into
	// SpoolDir, which is what tests do with a temporary spool.
	InstallCommand string
}

// NewEngine returns an engine bound to the system spool and the crontab
// installer binary.
func NewEngine() *Engine {
	return &Engine{
		SpoolDir:       DefaultSpoolDir,
		InstallCommand: "crontab",
	}
}

// OpenUser opens the named user's personal crontab. A missing tab yields an
// empty Tab rather than an error, so a user without a crontab still gets a
// writable handle.
func (e *Engine) OpenUser(name string) (*Tab, error) {
	tab := &Tab{User: name, eng: e}
	path := filepath.Join(e.SpoolDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return tab, nil
		}
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("open crontab for %s: %w", name, ErrPermission)
		}
		return nil, fmt.Errorf("open crontab for %s: %w", name, err)
	}
	tab.Path = path
	tab.parse(string(data))
	return tab, nil
}

// OpenCurrentUser opens the invoking user's personal crontab. It never fails
// outright: if the current user cannot be determined an empty ownerless tab
// is returned.
func (e *Engine) OpenCurrentUser() *Tab {
	u, err := user.Current()
	if err != nil {
		return &Tab{eng: e}
	}
	tab, err := e.OpenUser(u.Username)
	if err != nil {
		return &Tab{User: u.Username, eng: e}
	}
	return tab
}

// OpenFile opens an explicit tab file. system selects the system line format
// with a run-as user column. Missing files report ErrNotFound; callers that
// want silent absence check existence first.
func (e *Engine) OpenFile(path string, system bool) (*Tab, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("open %s: %w", path, ErrNotFound)
		}
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("open %s: %w", path, ErrPermission)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	tab := &Tab{Path: path, System: system, eng: e}
	tab.parse(string(data))
	return tab, nil
}

// writeUser installs the rendered tab for the named user, either through the
// crontab binary or straight into the spool directory.
func (e *Engine) writeUser(t *Tab, name string) error {
	content := t.Render()

	if e.InstallCommand != "" {
		args := []string{"-"}
		if name != "" {
			args = []string{"-u", name, "-"}
		}
		cmd := exec.Command(e.InstallCommand, args...)
		cmd.Stdin = strings.NewReader(content)
		out, err := cmd.CombinedOutput()
		if err != nil {
			return fmt.Errorf("install crontab for %s: %w (%s)", name, err, bytes.TrimSpace(out))
		}
		return nil
	}

	path := filepath.Join(e.SpoolDir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("write %s: %w", path, ErrPermission)
		}
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writePath writes the rendered tab to an explicit system path.
func (e *Engine) writePath(t *Tab, path string) error {
	if err := os.WriteFile(path, []byte(t.Render()), 0644); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("write %s: %w", path, ErrPermission)
		}
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

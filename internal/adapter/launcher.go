package adapter

import (
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// Launcher opens job posting URLs in a browser
type Launcher struct {
	command string   // configured browser command, empty for system default
	args    []string // additional arguments for the browser
	logger  *slog.Logger

	// start runs the prepared command; replaced in tests
	start func(*exec.Cmd) error
}

// NewLauncher creates a new Launcher
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command: command,
		args:    args,
		logger:  logger,
		start:   (*exec.Cmd).Start,
	}
}

// Open launches rawURL in the configured browser or the system default
func (l *Launcher) Open(rawURL string) error {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("not an http(s) url: %q", rawURL)
	}

	cmd := l.buildCommand(u.String())
	l.logger.Info("opening url", "command", cmd.Path, "args", cmd.Args[1:])

	if err := l.start(cmd); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}

// buildCommand builds the command that opens target
func (l *Launcher) buildCommand(target string) *exec.Cmd {
	// Tier 1: User configured a specific browser
	if l.command != "" {
		args := append(append([]string{}, l.args...), target)
		return exec.Command(l.command, args...)
	}

	// Tier 2: System default handler
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", target)
	case "windows":
		return exec.Command("cmd", "/c", "start", "", target)
	default:
		// Linux and other Unix-like systems
		return exec.Command("xdg-open", target)
	}
}

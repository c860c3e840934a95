package adapter

import (
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLauncher_ConfiguredBrowser(t *testing.T) {
	l := NewLauncher("firefox", []string{"--new-tab"}, NullLogger())
	var started *exec.Cmd
	l.start = func(c *exec.Cmd) error {
		started = c
		return nil
	}

	require.NoError(t, l.Open(" https://jobs.example.com/j1 "))
	require.NotNil(t, started)
	assert.Equal(t, []string{"firefox", "--new-tab", "https://jobs.example.com/j1"}, started.Args)
}

func TestLauncher_SystemDefault(t *testing.T) {
	l := NewLauncher("", nil, NullLogger())
	cmd := l.buildCommand("https://jobs.example.com")
	assert.Equal(t, "https://jobs.example.com", cmd.Args[len(cmd.Args)-1])
}

func TestLauncher_RejectsNonHTTP(t *testing.T) {
	l := NewLauncher("", nil, NullLogger())
	l.start = func(*exec.Cmd) error {
		t.Fatal("should not start")
		return nil
	}

	for _, u := range []string{"", "file:///etc/passwd", "javascript:alert(1)", "jobs.example.com"} {
		assert.Error(t, l.Open(u), u)
	}
}

func TestLauncher_StartFailure(t *testing.T) {
	l := NewLauncher("", nil, NullLogger())
	l.start = func(*exec.Cmd) error { return errors.New("no display") }

	err := l.Open("https://jobs.example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no display")
}

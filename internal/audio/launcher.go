package audio

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrLaunchFailed is wrapped by every error caused by the editor process
var ErrLaunchFailed = errors.New("cannot open editor")

// Launcher opens audio files in an external editor
type Launcher interface {
	// Launch opens files in the editor at editorPath
	Launch(ctx context.Context, editorPath string, files []string) error

	// Name returns the launcher name
	Name() string
}

// ExecLauncher starts the editor as a separate process
type ExecLauncher struct {
	goos string
}

// NewExecLauncher creates a launcher for the running platform
func NewExecLauncher() *ExecLauncher {
	return &ExecLauncher{goos: runtime.GOOS}
}

// Command returns the program and arguments used to open files with the
// editor on the given platform
func Command(goos, editorPath string, files []string) (string, []string) {
	var name string
	var args []string

	switch goos {
	case "darwin":
		// open -a accepts an application bundle path or name
		name = "open"
		args = []string{"-a", editorPath}
	case "windows":
		// the empty argument is the window title expected by start
		name = "cmd"
		args = []string{"/c", "start", "", editorPath}
	default:
		name = editorPath
	}

	return name, append(args, files...)
}

// Launch opens the files. On macOS the call waits for open(1), which returns
// as soon as the application received the files, and a non-zero exit is a
// failure. Elsewhere the editor is started and released.
func (l *ExecLauncher) Launch(ctx context.Context, editorPath string, files []string) error {
	if strings.TrimSpace(editorPath) == "" {
		return fmt.Errorf("%w: no editor configured", ErrLaunchFailed)
	}

	name, args := Command(l.goos, editorPath, files)

	if l.goos == "darwin" {
		cmd := exec.CommandContext(ctx, name, args...)
		output, err := cmd.CombinedOutput()
		if err != nil {
			return fmt.Errorf("%w %s: %v\nOutput: %s", ErrLaunchFailed, editorPath, err, strings.TrimSpace(string(output)))
		}
		return nil
	}

	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w %s: %v", ErrLaunchFailed, editorPath, err)
	}
	return cmd.Process.Release()
}

// Name returns the launcher name
func (l *ExecLauncher) Name() string {
	return "exec/" + l.goos
}

// Package refresher starts the out-of-process balance fetch job.
package refresher

import (
	"os/exec"

	"go.uber.org/zap"
)

// Launcher submits the refresh job without waiting for it. Implementations
// must never surface a failure to the caller; the read side simply keeps
// showing the previous snapshot.
type Launcher interface {
	Launch()
}

// ExecLauncher spawns the configured fetcher command as a detached process.
// Spawn failures are logged and swallowed.
type ExecLauncher struct {
	command string
	args    []string
	logger  *zap.Logger
}

func NewExecLauncher(command string, args []string, logger *zap.Logger) *ExecLauncher {
	return &ExecLauncher{command: command, args: args, logger: logger}
}

func (l *ExecLauncher) Launch() {
	cmd := exec.Command(l.command, l.args...)
	if err := cmd.Start(); err != nil {
		l.logger.Warn("failed to start balance fetch job",
			zap.String("command", l.command),
			zap.Error(err))
		return
	}

	l.logger.Info("balance fetch job started",
		zap.String("command", l.command),
		zap.Int("pid", cmd.Process.Pid))

	// reap the child so finished jobs do not linger as zombies
	go func() {
		if err := cmd.Wait(); err != nil {
			l.logger.Warn("balance fetch job exited with error", zap.Error(err))
		}
	}()
}

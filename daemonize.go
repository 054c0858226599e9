package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// detachedEnv marks the re-executed copy so it skips a second detach.
const detachedEnv = "_MINICRON_DETACHED"

// daemonize re-executes the program in its own session with standard
// streams on /dev/null, then exits the foreground parent. The detached
// copy returns here to continue into the main loop, so the daemon pid
// file records the detached process.
func daemonize() error {
	if os.Getenv(detachedEnv) != "" {
		os.Unsetenv(detachedEnv)
		unix.Umask(0o027)
		signal.Ignore(unix.SIGTSTP, unix.SIGTTIN, unix.SIGTTOU)
		return nil
	}

	devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return errors.Wrap(err, "failed to open "+os.DevNull)
	}
	defer devNull.Close()

	self, err := os.Executable()
	if err != nil {
		return err
	}
	p, err := os.StartProcess(self, os.Args, &os.ProcAttr{
		Files: []*os.File{devNull, devNull, devNull},
		Env:   append(os.Environ(), detachedEnv+"=1"),
		Sys:   &syscall.SysProcAttr{Setsid: true},
	})
	if err != nil {
		return errors.Wrap(err, "failed to detach")
	}
	_ = p.Release()
	os.Exit(0)
	return nil
}

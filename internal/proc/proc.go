// Package proc spawns and reclaims the OS processes owned by the main
// loop and the cycle supervisor. All pids passed to Await and Terminate
// must be direct children of the calling process, since both reap the
// exit status with wait4.
package proc

import (
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

var clock = clockwork.NewRealClock()

// Spawn starts path with argv, inheriting this process's standard
// streams and environment, and returns the new process id.
func Spawn(path string, argv []string) (int, error) {
	p, err := os.StartProcess(path, argv, &os.ProcAttr{
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr},
	})
	if err != nil {
		return 0, errors.Wrapf(err, "failed to start %s", path)
	}
	pid := p.Pid
	// the exit status is collected with wait4, not Process.Wait
	_ = p.Release()
	return pid, nil
}

// Await blocks until pid exits, consuming its exit status.
func Await(pid int) {
	var ws unix.WaitStatus
	for {
		if _, err := unix.Wait4(pid, &ws, 0, nil); err != unix.EINTR {
			return
		}
	}
}

// Terminate ensures pid is no longer running, using minimal signaling
// force. A pid that already exited is reaped without any signal being
// sent. Otherwise pid is sent SIGTERM; with grace zero Terminate then
// blocks until it exits, and with a positive grace it waits that long
// before sending an unawaited SIGKILL to a survivor.
func Terminate(pid int, grace time.Duration) {
	if exited(pid) {
		return
	}
	_ = unix.Kill(pid, unix.SIGTERM)

	if grace == 0 {
		Await(pid)
		return
	}
	// check again before sleeping, the process may already be gone
	if exited(pid) {
		return
	}
	clock.Sleep(grace)
	if exited(pid) {
		return
	}
	_ = unix.Kill(pid, unix.SIGKILL)
}

// exited reports whether pid is done, reaping its status if it is.
// ECHILD means some other wait already collected it.
func exited(pid int) bool {
	var ws unix.WaitStatus
	for {
		n, err := unix.Wait4(pid, &ws, unix.WNOHANG, nil)
		switch {
		case err == unix.EINTR:
			continue
		case err != nil:
			return true
		case n == 0:
			return false
		default:
			return ws.Exited() || ws.Signaled()
		}
	}
}

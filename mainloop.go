package main

import (
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/cronkit/minicron/internal/pidfile"
	"github.com/cronkit/minicron/internal/proc"
	"github.com/cronkit/minicron/log"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sys/unix"
)

var clock = clockwork.NewRealClock()

// supervisorKillGrace is the grace passed to proc.Terminate when the
// interval elapses. The supervisor catches SIGTERM and performs its own
// bounded cleanup, so the main loop only waits for it to exit instead
// of adding a second timeout layer.
const supervisorKillGrace = 0

// spawnRetryDelay spaces out retries when process creation keeps
// failing, without consuming the interval clock.
const spawnRetryDelay = time.Second

// mainLoop runs one cycle supervisor per interval, forever. It returns
// only when the stop signal arrives, and then always with exitStopped.
func mainLoop(opts *options) int {
	if err := pidfile.Write(opts.daemonPidFile, os.Getpid()); err != nil {
		log.Warnf("%s", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, unix.SIGTERM)
	signal.Ignore(unix.SIGINT)

	var supervisorPid int
	shutdown := func() int {
		if supervisorPid != 0 {
			proc.Terminate(supervisorPid, supervisorKillGrace)
		}
		if err := pidfile.Remove(opts.daemonPidFile); err != nil {
			log.Warnf("%s", err)
		}
		return exitStopped
	}

	for {
		// never start a new cycle once stop has been requested
		select {
		case <-stop:
			return shutdown()
		default:
		}

		pid, err := spawnSelf(superviseRole, superviseArgs(opts))
		if err != nil {
			log.Warnf("failed to start supervisor: %s", err)
			clock.Sleep(spawnRetryDelay)
			continue
		}
		supervisorPid = pid
		log.Debugf("supervisor pid: %d", pid)

		select {
		case <-clock.After(opts.interval()):
			proc.Terminate(supervisorPid, supervisorKillGrace)
		case <-stop:
			return shutdown()
		}
	}
}

// superviseArgs rebuilds the command line for a supervisor process
// from the daemon's options. parseSuperviseArgs is the inverse.
func superviseArgs(opts *options) []string {
	var args []string
	if opts.childPidFile != "" {
		args = append(args, "-p", opts.childPidFile)
	}
	if opts.killAfter > 0 {
		args = append(args, "-k", strconv.Itoa(opts.killAfter))
	}
	if opts.debug {
		args = append(args, "--debug")
	}
	args = append(args, "--")
	return append(args, opts.args...)
}

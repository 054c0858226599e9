package main

import (
	"os"
	"os/signal"
	"time"

	"github.com/cronkit/minicron/internal/pidfile"
	"github.com/cronkit/minicron/internal/proc"
	"github.com/cronkit/minicron/log"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"golang.org/x/sys/unix"
)

// Internal re-exec roles. Each interval runs in a fresh supervisor
// process so the main loop can reclaim a stuck cycle at the interval
// boundary without caring whether the child honored kill-after.
const (
	superviseRole = "__supervise"
	execRole      = "__exec"
)

// childKillGrace is how long a child gets between SIGTERM and SIGKILL.
// Tunable, not a protocol value.
const childKillGrace = 3 * time.Second

type superviseOptions struct {
	pidFile   string
	killAfter int
	debug     bool
	args      []string
}

func parseSuperviseArgs(name string, args []string) (*superviseOptions, error) {
	opts := &superviseOptions{}
	flags := pflag.NewFlagSet(name+" "+superviseRole, pflag.ContinueOnError)
	flags.SetInterspersed(false)
	flags.StringVarP(&opts.pidFile, "pidfile", "p", "", "")
	flags.IntVarP(&opts.killAfter, "kill-after", "k", 0, "")
	flags.BoolVar(&opts.debug, "debug", false, "")
	if err := flags.Parse(args); err != nil {
		return nil, errors.Wrap(err, "failed to parse supervisor args")
	}
	opts.args = flags.Args()
	if len(opts.args) == 0 {
		return nil, errors.New("missing command to run")
	}
	return opts, nil
}

// supervise owns one child process for one interval: it launches the
// child, registers its pid, enforces the optional kill-after ceiling,
// reaps it, and unregisters the pid. The stop signal from the main
// loop preempts all of it.
func supervise(name string, args []string) int {
	opts, err := parseSuperviseArgs(name, args)
	if err != nil {
		log.Errorf("%s", err)
		return exitSpawnFailed
	}
	if opts.debug {
		log.SetLevel(log.DebugLevel)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, unix.SIGTERM)

	childPid, err := spawnSelf(execRole, opts.args)
	if err != nil {
		log.Errorf("failed to start child: %s", err)
		return exitSpawnFailed
	}
	log.Debugf("child pid: %d", childPid)

	if err := pidfile.Write(opts.pidFile, childPid); err != nil {
		log.Warnf("%s", err)
	}
	unregister := func() {
		if err := pidfile.Remove(opts.pidFile); err != nil {
			log.Warnf("%s", err)
		}
	}

	exited := make(chan struct{})
	go func() {
		proc.Await(childPid)
		close(exited)
	}()

	var ceiling <-chan time.Time
	if opts.killAfter > 0 {
		ceiling = clock.After(time.Duration(opts.killAfter) * time.Second)
	}

	select {
	case <-exited:
		unregister()
		return 0
	case <-ceiling:
		proc.Terminate(childPid, childKillGrace)
		unregister()
		return 0
	case <-stop:
		proc.Terminate(childPid, childKillGrace)
		unregister()
		return exitStopped
	}
}

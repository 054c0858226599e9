package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

type options struct {
	childPidFile  string
	daemonPidFile string
	killAfter     int
	detach        bool
	debug         bool
	version       bool

	intervalSecs int
	// the command and its arguments; args[0] is the command name
	args []string
}

func setupFlags(name string) (*pflag.FlagSet, *options) {
	opts := &options{}
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.SetInterspersed(false)
	flags.Usage = func() {
		usage(os.Stdout, name, flags)
	}
	flags.StringVarP(&opts.childPidFile, "pidfile", "p", "",
		"write the child PID to this file")
	flags.StringVarP(&opts.daemonPidFile, "daemon-pidfile", "P", "",
		"write the daemon PID to this file")
	flags.IntVarP(&opts.killAfter, "kill-after", "k", 0,
		"terminate the child after N seconds, 0 waits for it to exit")
	flags.BoolVarP(&opts.detach, "detach", "d", false,
		"detach from the terminal after starting")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.version, "version", false, "show version and exit")
	return flags, opts
}

func usage(out io.Writer, name string, flags *pflag.FlagSet) {
	fmt.Fprintf(out, `Usage:
    %[1]s [flags] interval command [args...]

Runs command with the given arguments every interval seconds. A run
still active when the next one is due is terminated first.

Flags:
`, name)
	flags.SetOutput(out)
	flags.PrintDefaults()
}

// setArgs splits the positional arguments into the interval and the
// child command line.
func (o *options) setArgs(args []string) error {
	if len(args) < 2 {
		return errors.New("requires an interval and a command to run")
	}
	interval, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.Errorf("invalid interval %q: expected a number of seconds", args[0])
	}
	o.intervalSecs = interval
	o.args = args[1:]
	return nil
}

func (o options) Validate() error {
	if o.intervalSecs <= 0 {
		return errors.New("interval must be a positive number of seconds")
	}
	if o.killAfter < 0 {
		return errors.New("kill-after must not be negative")
	}
	return nil
}

func (o options) interval() time.Duration {
	return time.Duration(o.intervalSecs) * time.Second
}

package main

import (
	"fmt"
	"os"

	"github.com/cronkit/minicron/internal/proc"
	"github.com/cronkit/minicron/log"
	"github.com/spf13/pflag"
)

var version = "dev"

// Exit statuses of the main process. Parse failures use distinct codes
// so wrapper scripts can tell "too few arguments" from "bad flag".
const (
	exitStopped     = 1
	exitInternal    = 3
	exitUsageArgs   = 11
	exitUsageFlag   = 12
	exitSpawnFailed = 2
	exitExecFailed  = 127
)

func main() {
	os.Exit(route(os.Args))
}

// route dispatches the internal re-exec roles before falling through
// to the user-facing command line. The roles are spawned by minicron
// itself and are not part of the public surface.
func route(args []string) int {
	name := args[0]
	if len(args) > 1 {
		switch args[1] {
		case superviseRole:
			return supervise(name, args[2:])
		case execRole:
			execChild(args[2:]) // does not return
		}
	}
	return runMain(name, args[1:])
}

func runMain(name string, args []string) int {
	flags, opts := setupFlags(name)
	switch err := flags.Parse(args); {
	case err == pflag.ErrHelp:
		return 0
	case err != nil:
		usage(os.Stderr, name, flags)
		return exitUsageFlag
	}
	setupLogging(opts)

	if opts.version {
		fmt.Fprintf(os.Stdout, "minicron version %s\n", version)
		return 0
	}

	if err := opts.setArgs(flags.Args()); err != nil {
		log.Error(err.Error())
		usage(os.Stderr, name, flags)
		return exitUsageArgs
	}
	if err := opts.Validate(); err != nil {
		log.Error(err.Error())
		return exitUsageArgs
	}

	if opts.detach {
		if err := daemonize(); err != nil {
			log.Error(err.Error())
			return exitInternal
		}
	}
	return mainLoop(opts)
}

// spawnSelf re-executes this binary under an internal role, passing
// args as that role's command line.
func spawnSelf(role string, args []string) (int, error) {
	self, err := os.Executable()
	if err != nil {
		return 0, err
	}
	argv := append([]string{os.Args[0], role}, args...)
	return proc.Spawn(self, argv)
}

func setupLogging(opts *options) {
	if opts.debug {
		log.SetLevel(log.DebugLevel)
	}
}

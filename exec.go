package main

import (
	"os"
	"os/exec"

	"github.com/cronkit/minicron/log"
	"golang.org/x/sys/unix"
)

// execChild replaces this process's program image with the configured
// command, passing args as its argument vector and inheriting the
// environment. On success it never returns; failure is the only path
// that continues executing here, and it must exit immediately since
// this process occupies the child slot.
func execChild(args []string) {
	if len(args) == 0 {
		log.Error("missing command to run")
		os.Exit(exitExecFailed)
	}
	path, err := exec.LookPath(args[0])
	if err == nil {
		err = unix.Exec(path, args, os.Environ())
	}
	log.Errorf("failed to exec %s: %s", args[0], err)
	os.Exit(exitExecFailed)
}

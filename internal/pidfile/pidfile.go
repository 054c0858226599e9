// Package pidfile manages the textual pid records that let external
// tooling discover the daemon and the currently supervised child
// without a control socket.
package pidfile

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Write records pid at path as decimal text with a trailing newline,
// readable only by the owner. Any previous file at path is replaced.
// An empty path is a no-op.
func Write(path string, pid int) error {
	if path == "" {
		return nil
	}
	if err := Remove(path); err != nil {
		return err
	}
	err := os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0o400)
	return errors.Wrap(err, "failed to write pid file")
}

// Remove deletes the pid record at path. An empty path is a no-op, and
// removing a record that does not exist is not an error.
func Remove(path string) error {
	if path == "" {
		return nil
	}
	err := os.Remove(path)
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	return errors.Wrap(err, "failed to remove pid file")
}

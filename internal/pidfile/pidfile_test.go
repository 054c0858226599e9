package pidfile

import (
	"os"
	"testing"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/fs"
)

func TestWriteAndRemove(t *testing.T) {
	dir := fs.NewDir(t, "pidfile")
	defer dir.Remove()
	path := dir.Join("child.pid")

	assert.NilError(t, Write(path, 12345))

	content, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Equal(t, string(content), "12345\n")

	info, err := os.Stat(path)
	assert.NilError(t, err)
	assert.Equal(t, info.Mode().Perm(), os.FileMode(0o400))

	assert.NilError(t, Remove(path))
	_, err = os.Stat(path)
	assert.Assert(t, os.IsNotExist(err))
}

func TestWriteReplacesPreviousRecord(t *testing.T) {
	dir := fs.NewDir(t, "pidfile")
	defer dir.Remove()
	path := dir.Join("child.pid")

	assert.NilError(t, Write(path, 100))
	assert.NilError(t, Write(path, 24680))

	content, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Equal(t, string(content), "24680\n")
	assert.NilError(t, Remove(path))
}

func TestRemoveMissingFileIsNotAnError(t *testing.T) {
	dir := fs.NewDir(t, "pidfile")
	defer dir.Remove()
	assert.NilError(t, Remove(dir.Join("does-not-exist.pid")))
}

func TestEmptyPathIsNoop(t *testing.T) {
	assert.NilError(t, Write("", 1))
	assert.NilError(t, Remove(""))
}

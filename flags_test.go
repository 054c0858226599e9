package main

import (
	"bytes"
	"testing"

	"gotest.tools/v3/assert"
)

func TestSetupFlags_ParsesOptions(t *testing.T) {
	flags, opts := setupFlags("minicron")
	err := flags.Parse([]string{
		"-p", "/run/child.pid",
		"-P", "/run/minicron.pid",
		"-k", "30",
		"-d",
		"60", "sh", "-c", "true",
	})
	assert.NilError(t, err)
	assert.Equal(t, opts.childPidFile, "/run/child.pid")
	assert.Equal(t, opts.daemonPidFile, "/run/minicron.pid")
	assert.Equal(t, opts.killAfter, 30)
	assert.Equal(t, opts.detach, true)

	assert.NilError(t, opts.setArgs(flags.Args()))
	assert.Equal(t, opts.intervalSecs, 60)
	assert.DeepEqual(t, opts.args, []string{"sh", "-c", "true"})
}

func TestSetupFlags_StopsAtInterval(t *testing.T) {
	// flags after the interval belong to the child command
	flags, opts := setupFlags("minicron")
	assert.NilError(t, flags.Parse([]string{"60", "du", "-k", "/var"}))
	assert.Equal(t, opts.killAfter, 0)

	assert.NilError(t, opts.setArgs(flags.Args()))
	assert.DeepEqual(t, opts.args, []string{"du", "-k", "/var"})
}

func TestSetupFlags_UnknownFlag(t *testing.T) {
	flags, _ := setupFlags("minicron")
	assert.ErrorContains(t, flags.Parse([]string{"-z", "60", "true"}), "unknown shorthand flag")
}

func TestOptions_SetArgs(t *testing.T) {
	type testCase struct {
		name     string
		args     []string
		expected string
	}
	fn := func(t *testing.T, tc testCase) {
		opts := &options{}
		err := opts.setArgs(tc.args)
		if tc.expected == "" {
			assert.NilError(t, err)
			return
		}
		assert.ErrorContains(t, err, tc.expected)
	}
	var testCases = []testCase{
		{
			name:     "no arguments",
			expected: "requires an interval and a command",
		},
		{
			name:     "interval without command",
			args:     []string{"60"},
			expected: "requires an interval and a command",
		},
		{
			name:     "interval is not a number",
			args:     []string{"soon", "true"},
			expected: "invalid interval",
		},
		{
			name: "interval and command",
			args: []string{"60", "true"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fn(t, tc)
		})
	}
}

func TestOptions_Validate(t *testing.T) {
	type testCase struct {
		name     string
		opts     options
		expected string
	}
	fn := func(t *testing.T, tc testCase) {
		err := tc.opts.Validate()
		if tc.expected == "" {
			assert.NilError(t, err)
			return
		}
		assert.ErrorContains(t, err, tc.expected)
	}
	var testCases = []testCase{
		{
			name: "valid",
			opts: options{intervalSecs: 5, killAfter: 3},
		},
		{
			name:     "zero interval",
			opts:     options{intervalSecs: 0},
			expected: "interval must be a positive number",
		},
		{
			name:     "negative interval",
			opts:     options{intervalSecs: -5},
			expected: "interval must be a positive number",
		},
		{
			name:     "negative kill-after",
			opts:     options{intervalSecs: 5, killAfter: -1},
			expected: "kill-after must not be negative",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fn(t, tc)
		})
	}
}

func TestUsage_ListsAllFlags(t *testing.T) {
	name := "minicron"
	flags, _ := setupFlags(name)
	buf := new(bytes.Buffer)
	usage(buf, name, flags)

	for _, want := range []string{
		"Usage:",
		"interval command [args...]",
		"--pidfile",
		"--daemon-pidfile",
		"--kill-after",
		"--detach",
		"--debug",
		"--version",
	} {
		assert.Assert(t, bytes.Contains(buf.Bytes(), []byte(want)), "usage is missing %q", want)
	}
}

// Copyright © 2025 Texelmark contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package ptyrun

import (
	"os/exec"
	"testing"
)

func TestCleanStripsEscapes(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"\x1b[1;32mgreen\x1b[0m", "green"},
		{"a\r\nb\rc", "a\nbc"},
		{"\x1b]0;title\x07body", "body"},
		{"\x1b[2J\x1b[H| A | B |", "| A | B |"},
	}
	for _, c := range cases {
		if got := Clean(c.in); got != c.want {
			t.Errorf("Clean(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestKillAndWaitReapsChild(t *testing.T) {
	cmd := exec.Command("sleep", "60")
	if err := cmd.Start(); err != nil {
		t.Skipf("start sleep: %v", err)
	}

	killAndWait(cmd)

	if cmd.ProcessState == nil {
		t.Fatal("child not reaped")
	}
	if cmd.ProcessState.Exited() && cmd.ProcessState.Success() {
		t.Error("child exited normally, expected kill")
	}
}

func TestOptionsWithDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	if o.Width != 80 || o.Height != 24 {
		t.Errorf("defaults = %dx%d, want 80x24", o.Width, o.Height)
	}
}

// Copyright © 2025 Texelmark contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/ptyrun/ptyrun.go
// Summary: Run a command under a pseudo-terminal and capture its output.

package ptyrun

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/creack/pty"
	"golang.org/x/term"
)

// Options sizes the pseudo-terminal the command sees.
type Options struct {
	Width  int
	Height int
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 80
	}
	if o.Height <= 0 {
		o.Height = 24
	}
	return o
}

// Capture runs command under a pty and returns everything it wrote
// until exit. Programs that only emit tables on a terminal (or emit
// color only there) behave normally under the pty.
func Capture(command string, args []string, opts Options) (string, error) {
	opts = opts.withDefaults()

	cmd := exec.Command(command, args...)
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("COLUMNS=%d", opts.Width),
		fmt.Sprintf("LINES=%d", opts.Height),
		"TERM=xterm-256color",
	)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(opts.Height),
		Cols: uint16(opts.Width),
	})
	if err != nil {
		return "", fmt.Errorf("start pty: %w", err)
	}
	defer ptmx.Close()

	// Raw mode disables echo on the pty so nothing we write back (and
	// no terminal responses) leaks into the capture.
	if _, err := term.MakeRaw(int(ptmx.Fd())); err != nil {
		killAndWait(cmd)
		return "", fmt.Errorf("make pty raw: %w", err)
	}

	var output bytes.Buffer
	buf := make([]byte, 4096)
	for {
		n, readErr := ptmx.Read(buf)
		if n > 0 {
			output.Write(buf[:n])
		}
		if readErr != nil {
			// EIO here just means the child closed its side.
			break
		}
	}

	waitErr := cmd.Wait()
	return output.String(), waitErr
}

// killAndWait reaps a started child after a setup failure so no
// zombie is left behind.
func killAndWait(cmd *exec.Cmd) {
	if cmd.Process != nil {
		cmd.Process.Kill()
	}
	cmd.Wait()
}

// OSC, CSI, and other escape sequences plus stray control bytes.
var reANSI = regexp.MustCompile(`\x1b(\[[0-9;?]*[ -/]*[@-~]|\][^\x07\x1b]*(\x07|\x1b\\)?|[()][0-9A-Za-z]|[@-_])`)

// Clean strips ANSI escapes and normalizes line endings in captured
// pty output so the formatter sees plain text.
func Clean(s string) string {
	s = reANSI.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "")
}

// Copyright (c) 2020 Siemens AG
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
//
// Author(s): Jonas Plum

package scheduler

import (
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// CommandRunner executes an external command and returns its combined output.
type CommandRunner func(name string, args ...string) ([]byte, error)

// Schtasks registers tasks with the Windows task scheduler through
// schtasks.exe.
type Schtasks struct {
	Run CommandRunner
	Now func() time.Time
}

// NewSchtasks creates a scheduler backed by the schtasks.exe command.
func NewSchtasks() *Schtasks {
	return &Schtasks{Run: runCommand, Now: time.Now}
}

func runCommand(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput() // #nosec
}

// Schedule registers a one-shot task triggering after the descriptor's start
// delay, running elevated under the descriptor's principal. The trigger date
// is passed explicitly, a start delay crossing midnight would otherwise
// resolve against the current day and register a trigger in the past.
func (s *Schtasks) Schedule(task TaskDescriptor) error {
	action := quoteArg(task.Command)
	for _, arg := range task.Args {
		action += " " + quoteArg(arg)
	}
	start := s.Now().Add(task.StartDelay)

	out, err := s.Run("schtasks",
		"/Create",
		"/TN", task.Name,
		"/TR", action,
		"/SC", "ONCE",
		"/SD", start.Format("01/02/2006"),
		"/ST", start.Format("15:04"),
		"/RU", task.Principal,
		"/RL", "HIGHEST",
		"/F",
	)
	if err != nil {
		return errors.Wrapf(err, "schtasks create failed: %s", strings.TrimSpace(string(out)))
	}
	return nil
}

// quoteArg protects paths with spaces inside the /TR action line.
func quoteArg(s string) string {
	if strings.ContainsAny(s, " \t") {
		return `"` + s + `"`
	}
	return s
}

// Start triggers a registered task immediately.
func (s *Schtasks) Start(name string) error {
	out, err := s.Run("schtasks", "/Run", "/TN", name)
	if err != nil {
		return errors.Wrapf(err, "schtasks run failed: %s", strings.TrimSpace(string(out)))
	}
	return nil
}

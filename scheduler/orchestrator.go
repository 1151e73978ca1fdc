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
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// ErrorFileName is the side-channel error file in the case folder. It records
// orchestration-time failures that predate the per-run audit log, which
// belongs to the detached wrapper and may never come into existence.
const ErrorFileName = "scheduler_error.txt"

// Orchestrator registers and starts the acquisition task. After a successful
// start its job is done, ownership of execution passes entirely to the OS
// scheduler.
type Orchestrator struct {
	Fs        afero.Fs
	Dir       string
	Scheduler Scheduler
	Now       func() time.Time
}

// NewOrchestrator creates an orchestrator writing side-channel errors into
// the given case folder.
func NewOrchestrator(fsys afero.Fs, dir string, scheduler Scheduler) *Orchestrator {
	return &Orchestrator{Fs: fsys, Dir: dir, Scheduler: scheduler, Now: time.Now}
}

// Launch schedules the task and triggers immediate start. Registration and
// start failures are handled independently: each is appended to the
// side-channel file and never surfaced as a fatal error, a non-interactive
// caller must not end up with an error dialog. Launch reports whether both
// steps succeeded.
func (o *Orchestrator) Launch(task TaskDescriptor) bool {
	ok := true
	if err := o.Scheduler.Schedule(task); err != nil {
		o.sideChannel(task.Name, "task registration failed", err)
		ok = false
	}
	if err := o.Scheduler.Start(task.Name); err != nil {
		o.sideChannel(task.Name, "task start failed", err)
		ok = false
	}
	return ok
}

func (o *Orchestrator) sideChannel(taskName, message string, cause error) {
	line := fmt.Sprintf("%s - %s (task %s): %v\n",
		o.Now().Format("2006-01-02 15:04:05"), message, taskName, cause)

	file, err := o.Fs.OpenFile(filepath.Join(o.Dir, ErrorFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("could not open side-channel error file: %v", err)
		return
	}
	defer file.Close()
	if _, err := file.WriteString(line); err != nil {
		log.Printf("could not write side-channel error file: %v", err)
	}
}

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

// Package wrapper executes one collector run as the body of the detached
// scheduled task and records its outcome exactly once in the case folder's
// audit log.
package wrapper

import (
	"fmt"
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/forensicanalysis/kapetriage"
)

// State of a single acquisition run.
type State int

// A runner moves Idle -> Running -> {Completed, Failed}, no state is
// reentered.
const (
	Idle State = iota
	Running
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ExecFunc invokes the collector and blocks until it exits. It returns the
// collector's exit code; an error means the invocation itself failed.
type ExecFunc func(path string, args []string) (int, error)

// Runner drives exactly one collector invocation. It runs detached from the
// registering process, so failures are recorded in the audit log and never
// returned to a parent.
type Runner struct {
	Log  *kapetriage.AuditLog
	Spec kapetriage.RunSpec
	Exec ExecFunc
	Now  func() time.Time

	state  State
	record kapetriage.AcquisitionRecord
}

// New creates a runner for a loaded run spec.
func New(auditLog *kapetriage.AuditLog, spec kapetriage.RunSpec) *Runner {
	return &Runner{
		Log:  auditLog,
		Spec: spec,
		Exec: execCollector,
		Now:  time.Now,
	}
}

// State returns the current state of the run.
func (r *Runner) State() State {
	return r.state
}

// Record returns the acquisition record of the run.
func (r *Runner) Record() kapetriage.AcquisitionRecord {
	return r.record
}

// Run drives the acquisition to a terminal state. It emits a start event, a
// single end event on completion or a single error event on failure. The
// collector's exit code is captured verbatim, only invocation errors fail the
// run. There is no retry and no cancellation.
func (r *Runner) Run() State {
	start := r.Now()
	r.state = Running
	r.record = kapetriage.AcquisitionRecord{
		CaseMetadata:        r.Spec.Metadata,
		AcquisitionStartUTC: start.UTC().Format(time.RFC3339),
		ScriptVersion:       r.Spec.ScriptVersion,
	}
	r.line("acquisition started, invoking " + r.Spec.Kape)
	r.event(kapetriage.StartEvent(start, r.Spec, r.record))

	exitCode, err := r.Exec(r.Spec.Kape, r.Spec.Args)
	end := r.Now()
	if err != nil {
		wrapped := errors.Wrap(err, "could not invoke collector")
		r.state = Failed
		r.line("acquisition failed: " + wrapped.Error())
		r.event(kapetriage.ErrorEvent(end, r.Spec, wrapped))
		return r.state
	}

	r.record.AcquisitionEndUTC = end.UTC().Format(time.RFC3339)
	duration := end.Sub(start)
	r.state = Completed
	r.line(fmt.Sprintf("collector finished with exit code %d after %s", exitCode, duration))
	r.event(kapetriage.EndEvent(end, r.Spec, r.record, exitCode, duration))
	return r.state
}

func (r *Runner) line(message string) {
	if err := r.Log.AppendLine(message); err != nil {
		log.Printf("could not append to line log: %v", err)
	}
}

func (r *Runner) event(event kapetriage.LogEvent) {
	if err := r.Log.AppendRecord(event); err != nil {
		log.Printf("could not append to record log: %v", err)
	}
}

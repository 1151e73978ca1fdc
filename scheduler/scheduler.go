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

// Package scheduler registers the acquisition as a one-shot elevated
// background task with the operating system task scheduler.
package scheduler

import (
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultStartDelay is the gap between registration and the one-shot
	// trigger.
	DefaultStartDelay = 60 * time.Second

	// TaskPrincipal is the elevated service identity the task runs under.
	TaskPrincipal = "SYSTEM"

	taskPrefix = "KapeTriage-"
)

// TaskDescriptor defines a one-shot, delayed-start, elevated background task.
// It is registered once, consumed by the OS scheduler and never deleted by
// this system.
type TaskDescriptor struct {
	Name        string
	Description string
	Command     string
	Args        []string
	Principal   string
	StartDelay  time.Duration
}

// NewTaskDescriptor builds a descriptor for the given wrapper invocation. The
// task name carries a random suffix so concurrently pending tasks do not
// collide.
func NewTaskDescriptor(command string, args []string) TaskDescriptor {
	return TaskDescriptor{
		Name:        taskPrefix + uuid.New().String()[:8],
		Description: "One-shot forensic triage acquisition",
		Command:     command,
		Args:        args,
		Principal:   TaskPrincipal,
		StartDelay:  DefaultStartDelay,
	}
}

// Scheduler registers and starts background tasks.
type Scheduler interface {
	Schedule(task TaskDescriptor) error
	Start(name string) error
}

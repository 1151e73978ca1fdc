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

// Package kapetriage prepares and records forensic triage acquisitions that
// run a third-party collector executable from removable media. It creates
// timestamped case folders, resolves chain-of-custody metadata, schedules the
// acquisition as a detached elevated background task and keeps an append-only
// dual-format run log per case folder.
package kapetriage

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Version is recorded in every acquisition record as ScriptVersion.
const Version = "2.0.0"

// RunSpecName is the parameter file consumed by the detached wrapper process.
const RunSpecName = "run.json"

// Event tags of the structured run log.
const (
	EventStart = "start"
	EventEnd   = "end"
	EventError = "error"
)

// CaseMetadata is the fixed set of chain-of-custody fields attached to every
// structured log record. It is resolved once per run and immutable afterwards.
type CaseMetadata struct {
	CaseID           string `json:"CaseId"`
	IncidentID       string `json:"IncidentId"`
	OperatorName     string `json:"OperatorName"`
	OperatorID       string `json:"OperatorId"`
	AuthorisationRef string `json:"AuthorisationRef"`
	EvidenceDeviceID string `json:"EvidenceDeviceId"`
	Hostname         string `json:"Hostname"`
	Notes            string `json:"Notes"`
}

// AcquisitionRecord tracks one collector run. The start time is set when the
// wrapper enters the running state, the end time on completion; a record never
// changes after that.
type AcquisitionRecord struct {
	CaseMetadata
	AcquisitionStartUTC string `json:"AcquisitionStartUtc,omitempty"`
	AcquisitionEndUTC   string `json:"AcquisitionEndUtc,omitempty"`
	ScriptVersion       string `json:"ScriptVersion"`
}

// LogEvent is a single entry of the structured run log, a tagged variant over
// start, end and error events. Only the fields of the respective variant are
// populated.
type LogEvent struct {
	Event string `json:"event"`
	Time  string `json:"time"`

	Kape           string             `json:"kape,omitempty"`
	System         string             `json:"system,omitempty"`
	OutputPath     string             `json:"outputPath,omitempty"`
	USBRoot        string             `json:"usbRoot,omitempty"`
	TaskName       string             `json:"taskName,omitempty"`
	ChainOfCustody *AcquisitionRecord `json:"chainOfCustody,omitempty"`

	ExitCode *int   `json:"exitCode,omitempty"`
	Duration string `json:"duration,omitempty"`

	Message    string `json:"message,omitempty"`
	Stack      string `json:"stack,omitempty"`
	CaseID     string `json:"caseId,omitempty"`
	IncidentID string `json:"incidentId,omitempty"`
}

// RunSpec parameterizes the detached wrapper process. It is written to
// run.json in the case folder by the orchestrating process and is the only
// contract between the two processes besides the log files.
type RunSpec struct {
	Kape          string       `json:"kape"`
	Args          []string     `json:"args"`
	OutputPath    string       `json:"outputPath"`
	USBRoot       string       `json:"usbRoot"`
	TaskName      string       `json:"taskName"`
	System        string       `json:"system"`
	Stealth       bool         `json:"stealth"`
	ScriptVersion string       `json:"scriptVersion"`
	Metadata      CaseMetadata `json:"chainOfCustody"`
}

// WriteRunSpec persists a run spec into the case folder.
func WriteRunSpec(fsys afero.Fs, dir string, spec RunSpec) error {
	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not marshal run spec")
	}
	err = afero.WriteFile(fsys, filepath.Join(dir, RunSpecName), data, 0644)
	return errors.Wrap(err, "could not write run spec")
}

// ReadRunSpec loads the run spec from a case folder.
func ReadRunSpec(fsys afero.Fs, dir string) (*RunSpec, error) {
	data, err := afero.ReadFile(fsys, filepath.Join(dir, RunSpecName))
	if err != nil {
		return nil, errors.Wrap(err, "could not read run spec")
	}
	spec := &RunSpec{}
	if err := json.Unmarshal(data, spec); err != nil {
		return nil, errors.Wrap(err, "could not parse run spec")
	}
	return spec, nil
}

// CollectorArgs builds the fixed argument vector for the collector
// executable: source drive, quoted destination, target profile, a VHDX
// container named after the host and disabled compression. Without stealth
// the collector shows its own progress window.
func CollectorArgs(source, dest, target, hostname string, stealth bool) []string {
	args := []string{
		"--tsource", source,
		"--tdest", strconv.Quote(dest),
		"--target", target,
		"--vhdx", hostname,
		"--zv", "false",
	}
	if !stealth {
		args = append(args, "--gui")
	}
	return args
}

// StartEvent marks the entry into the running state.
func StartEvent(now time.Time, spec RunSpec, record AcquisitionRecord) LogEvent {
	return LogEvent{
		Event:          EventStart,
		Time:           now.UTC().Format(time.RFC3339),
		Kape:           spec.Kape,
		System:         spec.System,
		OutputPath:     spec.OutputPath,
		USBRoot:        spec.USBRoot,
		TaskName:       spec.TaskName,
		ChainOfCustody: &record,
	}
}

// EndEvent marks a completed collector run. The exit code is recorded
// verbatim, a non-zero code is the collector's own signal and not a wrapper
// failure.
func EndEvent(now time.Time, spec RunSpec, record AcquisitionRecord, exitCode int, duration time.Duration) LogEvent {
	return LogEvent{
		Event:          EventEnd,
		Time:           now.UTC().Format(time.RFC3339),
		Kape:           spec.Kape,
		System:         spec.System,
		OutputPath:     spec.OutputPath,
		USBRoot:        spec.USBRoot,
		TaskName:       spec.TaskName,
		ChainOfCustody: &record,
		ExitCode:       &exitCode,
		Duration:       duration.String(),
	}
}

// ErrorEvent marks a failed collector invocation.
func ErrorEvent(now time.Time, spec RunSpec, cause error) LogEvent {
	return LogEvent{
		Event:      EventError,
		Time:       now.UTC().Format(time.RFC3339),
		Message:    cause.Error(),
		Stack:      fmt.Sprintf("%+v", cause),
		OutputPath: spec.OutputPath,
		USBRoot:    spec.USBRoot,
		TaskName:   spec.TaskName,
		CaseID:     spec.Metadata.CaseID,
		IncidentID: spec.Metadata.IncidentID,
	}
}

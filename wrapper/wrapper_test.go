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

package wrapper

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"

	"github.com/forensicanalysis/kapetriage"
)

func testClock(times ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		now := times[i]
		if i < len(times)-1 {
			i++
		}
		return now
	}
}

func testRunner(t *testing.T) *Runner {
	fsys := afero.NewMemMapFs()
	dir := "/media/usb/CASE-20250101-1210-HOST1"
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	spec := kapetriage.RunSpec{
		Kape:          "/media/usb/kape/kape.exe",
		Args:          []string{"--tsource", "C:"},
		OutputPath:    dir,
		USBRoot:       "/media/usb",
		TaskName:      "KapeTriage-deadbeef",
		System:        "HOST1",
		ScriptVersion: kapetriage.Version,
		Metadata:      kapetriage.CaseMetadata{CaseID: "CASE-42", IncidentID: "IR-7", Hostname: "HOST1"},
	}
	return New(kapetriage.NewAuditLog(fsys, dir), spec)
}

func TestRunnerCompleted(t *testing.T) {
	runner := testRunner(t)
	start := time.Date(2025, 1, 1, 12, 10, 0, 0, time.UTC)
	end := time.Date(2025, 1, 1, 12, 15, 30, 0, time.UTC)
	runner.Now = testClock(start, end)
	runner.Exec = func(path string, args []string) (int, error) { return 0, nil }

	assert.Equal(t, Idle, runner.State())
	state := runner.Run()
	assert.Equal(t, Completed, state)

	records, err := runner.Log.Records()
	assert.NoError(t, err)
	assert.Len(t, records, 2)

	assert.Equal(t, kapetriage.EventStart, records[0].Event)
	assert.Equal(t, "2025-01-01T12:10:00Z", records[0].ChainOfCustody.AcquisitionStartUTC)
	assert.Empty(t, records[0].ChainOfCustody.AcquisitionEndUTC)

	endEvent := records[1]
	assert.Equal(t, kapetriage.EventEnd, endEvent.Event)
	if assert.NotNil(t, endEvent.ExitCode) {
		assert.Equal(t, 0, *endEvent.ExitCode)
	}
	assert.Equal(t, "5m30s", endEvent.Duration)
	assert.Equal(t, "2025-01-01T12:15:30Z", endEvent.ChainOfCustody.AcquisitionEndUTC)
	assert.True(t, endEvent.ChainOfCustody.AcquisitionEndUTC > endEvent.ChainOfCustody.AcquisitionStartUTC)
}

func TestRunnerExitCodeVerbatim(t *testing.T) {
	runner := testRunner(t)
	runner.Exec = func(path string, args []string) (int, error) { return 3, nil }

	// a non-zero exit code is the collector's own signal, not a wrapper failure
	assert.Equal(t, Completed, runner.Run())

	records, err := runner.Log.Records()
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	if assert.NotNil(t, records[1].ExitCode) {
		assert.Equal(t, 3, *records[1].ExitCode)
	}
}

func TestRunnerFailed(t *testing.T) {
	runner := testRunner(t)
	runner.Exec = func(path string, args []string) (int, error) {
		return 0, errors.New("executable file not found")
	}

	assert.Equal(t, Failed, runner.Run())

	records, err := runner.Log.Records()
	assert.NoError(t, err)
	assert.Len(t, records, 2)

	// exactly one error event and no end event
	assert.Equal(t, kapetriage.EventStart, records[0].Event)
	errorEvent := records[1]
	assert.Equal(t, kapetriage.EventError, errorEvent.Event)
	assert.Contains(t, errorEvent.Message, "executable file not found")
	assert.NotEmpty(t, errorEvent.Stack)
	assert.Equal(t, "CASE-42", errorEvent.CaseID)
	assert.Equal(t, "IR-7", errorEvent.IncidentID)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "completed", Completed.String())
	assert.Equal(t, "failed", Failed.String())
}

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

package kapetriage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestValidateRecords(t *testing.T) {
	auditLog := testAuditLog(t)

	meta := Resolve(CaseMetadata{}, fixedEnv{
		hostname: "HOST1",
		now:      time.Date(2025, 1, 1, 12, 10, 0, 0, time.UTC),
	}, "/media/usb")
	spec := RunSpec{
		Kape:       "/media/usb/kape/kape.exe",
		OutputPath: auditLog.Dir,
		USBRoot:    "/media/usb",
		TaskName:   "KapeTriage-deadbeef",
		System:     "HOST1",
		Metadata:   meta,
	}
	record := AcquisitionRecord{
		CaseMetadata:        meta,
		AcquisitionStartUTC: "2025-01-01T12:10:00Z",
		ScriptVersion:       Version,
	}

	now := time.Date(2025, 1, 1, 12, 10, 0, 0, time.UTC)
	assert.NoError(t, auditLog.AppendRecord(StartEvent(now, spec, record)))
	record.AcquisitionEndUTC = "2025-01-01T12:15:30Z"
	assert.NoError(t, auditLog.AppendRecord(EndEvent(now.Add(330*time.Second), spec, record, 0, 330*time.Second)))

	flaws, err := ValidateRecords(auditLog.Fs, auditLog.Dir)
	assert.NoError(t, err)
	assert.Empty(t, flaws)
}

func TestValidateRecordsFlaws(t *testing.T) {
	fsys := afero.NewMemMapFs()
	dir := "/case"
	assert.NoError(t, fsys.MkdirAll(dir, 0755))

	content := `[
		{"time": "2025-01-01T12:10:00Z"},
		{"event": "error", "time": "2025-01-01T12:10:00Z"}
	]`
	assert.NoError(t, afero.WriteFile(fsys, filepath.Join(dir, RecordLogName), []byte(content), 0644))

	flaws, err := ValidateRecords(fsys, dir)
	assert.NoError(t, err)
	// first record misses the event tag, second misses the error message
	assert.Len(t, flaws, 2)
}

func TestValidateRecordsNotAnArray(t *testing.T) {
	fsys := afero.NewMemMapFs()
	dir := "/case"
	assert.NoError(t, fsys.MkdirAll(dir, 0755))
	assert.NoError(t, afero.WriteFile(fsys, filepath.Join(dir, RecordLogName), []byte(`{"event": "start"}`), 0644))

	_, err := ValidateRecords(fsys, dir)
	assert.Error(t, err)
}

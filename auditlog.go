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
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Log file names inside a case folder.
const (
	LineLogName   = "runlog.txt"
	RecordLogName = "runlog.json"
)

// AuditLog writes the per-case run log in two independent forms: a flat
// timestamped text line per message and an ordered JSON array of structured
// records. One writer per case folder is the supported usage; the structured
// sink rewrites the whole array on append and is not safe against concurrent
// writers.
type AuditLog struct {
	Fs  afero.Fs
	Dir string
	Now func() time.Time
}

// NewAuditLog creates an audit log over an existing case folder.
func NewAuditLog(fsys afero.Fs, dir string) *AuditLog {
	return &AuditLog{Fs: fsys, Dir: dir, Now: time.Now}
}

// AppendLine appends a single timestamped message to the text log and flushes
// it to the medium.
func (l *AuditLog) AppendLine(message string) error {
	file, err := l.Fs.OpenFile(filepath.Join(l.Dir, LineLogName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrap(err, "could not open line log")
	}
	line := l.Now().Format("2006-01-02 15:04:05") + " - " + message + "\n"
	if _, err := file.WriteString(line); err != nil {
		file.Close() // nolint:errcheck
		return errors.Wrap(err, "could not append to line log")
	}
	if err := file.Sync(); err != nil {
		file.Close() // nolint:errcheck
		return errors.Wrap(err, "could not flush line log")
	}
	return file.Close()
}

// AppendRecord reads the existing record file, appends the event and rewrites
// the whole array. Unreadable or unparsable prior content degrades to an
// empty sequence instead of failing the write, so previously appended records
// of the current run are never lost to a later parse error.
func (l *AuditLog) AppendRecord(event LogEvent) error {
	records, err := l.Records()
	if err != nil {
		records = nil
	}
	records = append(records, event)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not marshal records")
	}
	err = afero.WriteFile(l.Fs, filepath.Join(l.Dir, RecordLogName), data, 0644)
	return errors.Wrap(err, "could not write record log")
}

// Records returns the structured records in emission order. A missing file
// yields no records, unparsable content yields an empty sequence.
func (l *AuditLog) Records() ([]LogEvent, error) {
	data, err := afero.ReadFile(l.Fs, filepath.Join(l.Dir, RecordLogName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "could not read record log")
	}
	var records []LogEvent
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, nil
	}
	return records, nil
}

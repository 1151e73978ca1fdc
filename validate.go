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
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/qri-io/jsonschema"
	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

// ValidateRecords checks every record of a case folder's structured run log
// against the log event schema and reports all flaws.
func ValidateRecords(fsys afero.Fs, dir string) (flaws []string, err error) {
	schema := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(logEventSchema), schema); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal log event schema")
	}

	data, err := afero.ReadFile(fsys, filepath.Join(dir, RecordLogName))
	if err != nil {
		return nil, errors.Wrap(err, "could not read record log")
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(err, "record log is not a JSON array")
	}

	for i, record := range records {
		eventTag := gjson.GetBytes(record, "event")
		if !eventTag.Exists() {
			flaws = append(flaws, fmt.Sprintf("record %d needs to have an event tag", i))
			continue
		}

		valErrs, err := schema.ValidateBytes(context.Background(), record)
		if err != nil {
			return nil, err
		}
		for _, valErr := range valErrs {
			flaws = append(flaws, fmt.Sprintf("record %d (%s): %s", i, eventTag.String(), valErr))
		}
	}
	return flaws, nil
}

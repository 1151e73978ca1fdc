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
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultsName is the optional engagement defaults file at the media root.
const DefaultsName = "triage.yml"

// EngagementDefaults pre-seed metadata for a whole engagement so operators do
// not retype them per host. Command line flags still win.
type EngagementDefaults struct {
	IncidentID       string `yaml:"incidentId"`
	OperatorName     string `yaml:"operatorName"`
	OperatorID       string `yaml:"operatorId"`
	AuthorisationRef string `yaml:"authorisationRef"`
	Notes            string `yaml:"notes"`
	Target           string `yaml:"target"`
}

// LoadDefaults reads the defaults file from the media root. A missing file is
// not an error and yields empty defaults.
func LoadDefaults(fsys afero.Fs, root string) (EngagementDefaults, error) {
	defaults := EngagementDefaults{}
	data, err := afero.ReadFile(fsys, filepath.Join(root, DefaultsName))
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return defaults, errors.Wrap(err, "could not read defaults file")
	}
	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return EngagementDefaults{}, errors.Wrap(err, "could not parse defaults file")
	}
	return defaults, nil
}

// Merge fills empty fields of the partial metadata from the defaults.
func (d EngagementDefaults) Merge(partial CaseMetadata) CaseMetadata {
	if partial.IncidentID == "" {
		partial.IncidentID = d.IncidentID
	}
	if partial.OperatorName == "" {
		partial.OperatorName = d.OperatorName
	}
	if partial.OperatorID == "" {
		partial.OperatorID = d.OperatorID
	}
	if partial.AuthorisationRef == "" {
		partial.AuthorisationRef = d.AuthorisationRef
	}
	if partial.Notes == "" {
		partial.Notes = d.Notes
	}
	return partial
}

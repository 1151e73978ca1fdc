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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fixedEnv struct {
	hostname string
	username string
	domain   string
	now      time.Time
}

func (e fixedEnv) Hostname() string { return e.hostname }
func (e fixedEnv) Username() string { return e.username }
func (e fixedEnv) Domain() string   { return e.domain }
func (e fixedEnv) Now() time.Time   { return e.now }

func TestResolve(t *testing.T) {
	env := fixedEnv{
		hostname: "HOST1",
		username: "jdoe",
		domain:   "CORP",
		now:      time.Date(2025, 1, 1, 12, 10, 0, 0, time.UTC),
	}

	type args struct {
		partial CaseMetadata
		env     Environment
		usbRoot string
	}
	tests := []struct {
		name string
		args args
		want CaseMetadata
	}{
		{
			"All Defaults",
			args{CaseMetadata{}, env, "/mnt/usb"},
			CaseMetadata{
				CaseID:           "AUTO-20250101121000-HOST1",
				IncidentID:       "AUTO-20250101121000-HOST1",
				OperatorName:     "jdoe",
				OperatorID:       `CORP\jdoe`,
				AuthorisationRef: "AUTO",
				EvidenceDeviceID: "/mnt/usb",
				Hostname:         "HOST1",
				Notes:            "",
			},
		},
		{
			"Supplied Fields Win",
			args{
				CaseMetadata{CaseID: "CASE-42", OperatorName: "Jane", Notes: "onsite"},
				env, "/mnt/usb",
			},
			CaseMetadata{
				CaseID:           "CASE-42",
				IncidentID:       "AUTO-20250101121000-HOST1",
				OperatorName:     "Jane",
				OperatorID:       `CORP\jdoe`,
				AuthorisationRef: "AUTO",
				EvidenceDeviceID: "/mnt/usb",
				Hostname:         "HOST1",
				Notes:            "onsite",
			},
		},
		{
			"No User No Domain",
			args{CaseMetadata{}, fixedEnv{hostname: "HOST2", now: env.now}, "E:"},
			CaseMetadata{
				CaseID:           "AUTO-20250101121000-HOST2",
				IncidentID:       "AUTO-20250101121000-HOST2",
				OperatorName:     "Unknown",
				OperatorID:       "Unknown",
				AuthorisationRef: "AUTO",
				EvidenceDeviceID: "E:",
				Hostname:         "HOST2",
				Notes:            "",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.args.partial, tt.args.env, tt.args.usbRoot)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveFullyPopulated(t *testing.T) {
	env := fixedEnv{hostname: "HOST1", now: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)}
	got := Resolve(CaseMetadata{}, env, "/mnt/usb")

	// every field except the Notes sentinel must be populated
	assert.NotEmpty(t, got.CaseID)
	assert.NotEmpty(t, got.IncidentID)
	assert.NotEmpty(t, got.OperatorName)
	assert.NotEmpty(t, got.OperatorID)
	assert.NotEmpty(t, got.AuthorisationRef)
	assert.NotEmpty(t, got.EvidenceDeviceID)
	assert.NotEmpty(t, got.Hostname)
}

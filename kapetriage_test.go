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

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestCollectorArgs(t *testing.T) {
	type args struct {
		stealth bool
	}
	tests := []struct {
		name    string
		args    args
		wantGui bool
	}{
		{"Stealth", args{true}, false},
		{"Foreground", args{false}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CollectorArgs("C:", `E:\CASE-20250101-1210-HOST1`, "KapeTriage", "HOST1", tt.args.stealth)

			assert.Contains(t, got, "--tsource")
			assert.Contains(t, got, "C:")
			assert.Contains(t, got, `"E:\\CASE-20250101-1210-HOST1"`)
			assert.Contains(t, got, "HOST1")
			if tt.wantGui {
				assert.Contains(t, got, "--gui")
			} else {
				assert.NotContains(t, got, "--gui")
			}
		})
	}
}

func TestRunSpecRoundTrip(t *testing.T) {
	fsys := afero.NewMemMapFs()
	dir := "/case"
	assert.NoError(t, fsys.MkdirAll(dir, 0755))

	spec := RunSpec{
		Kape:          "/media/usb/kape/kape.exe",
		Args:          []string{"--tsource", "C:"},
		OutputPath:    dir,
		USBRoot:       "/media/usb",
		TaskName:      "KapeTriage-deadbeef",
		System:        "HOST1",
		ScriptVersion: Version,
		Metadata:      CaseMetadata{CaseID: "CASE-42", Hostname: "HOST1"},
	}
	assert.NoError(t, WriteRunSpec(fsys, dir, spec))

	got, err := ReadRunSpec(fsys, dir)
	assert.NoError(t, err)
	assert.Equal(t, &spec, got)
}

func TestReadRunSpecMissing(t *testing.T) {
	fsys := afero.NewMemMapFs()
	_, err := ReadRunSpec(fsys, "/nowhere")
	assert.Error(t, err)
}

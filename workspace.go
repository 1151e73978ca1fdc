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
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// WorkspaceName computes the case folder name for a host at a point in time.
// Two runs within the same minute on the same host map to the same folder;
// disambiguation happens at the task name, not the folder.
func WorkspaceName(hostname string, now time.Time) string {
	return "CASE-" + now.Format("20060102-1504") + "-" + hostname
}

// BuildWorkspace creates the case folder under the media root and returns its
// path. Creating an already existing folder is not an error.
func BuildWorkspace(fsys afero.Fs, root, hostname string, now time.Time) (string, error) {
	dir := filepath.Join(root, WorkspaceName(hostname, now))
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(err, "could not create case folder")
	}
	return dir, nil
}

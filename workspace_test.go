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

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestWorkspaceName(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 10, 0, 0, time.UTC)
	assert.Equal(t, "CASE-20250101-1210-HOST1", WorkspaceName("HOST1", now))
}

func TestBuildWorkspace(t *testing.T) {
	fsys := afero.NewMemMapFs()
	now := time.Date(2025, 1, 1, 12, 10, 0, 0, time.UTC)

	dir, err := BuildWorkspace(fsys, "/media/usb", "HOST1", now)
	assert.NoError(t, err)
	assert.Equal(t, "/media/usb/CASE-20250101-1210-HOST1", dir)

	exists, err := afero.DirExists(fsys, dir)
	assert.NoError(t, err)
	assert.True(t, exists)

	// same arguments map to the same folder without error
	again, err := BuildWorkspace(fsys, "/media/usb", "HOST1", now)
	assert.NoError(t, err)
	assert.Equal(t, dir, again)
}

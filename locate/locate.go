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

// Package locate finds the collector executable on removable media with a
// bounded-depth search.
package locate

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// ErrNotFound is returned when no match exists within the depth bound.
var ErrNotFound = errors.New("collector executable not found")

var errFound = errors.New("found")

// Find searches root for a file named filename, descending at most maxDepth
// directory levels. The first match in traversal order wins; with duplicate
// names on the medium the tie-break is not deterministic. Unreadable entries
// are skipped, they never abort the search.
func Find(fsys afero.Fs, root, filename string, maxDepth int) (string, error) {
	root = filepath.Clean(root)

	var found string
	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || rel == "." {
			return nil
		}
		depth := strings.Count(rel, string(filepath.Separator)) + 1

		if info.IsDir() {
			if depth >= maxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if depth <= maxDepth && strings.EqualFold(info.Name(), filename) {
			found = path
			return errFound
		}
		return nil
	})
	if err != nil && err != errFound {
		return "", errors.Wrap(err, "search failed")
	}
	if found == "" {
		return "", ErrNotFound
	}
	return found, nil
}

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

package cmd

import (
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/forensicanalysis/kapetriage"
	"github.com/forensicanalysis/kapetriage/catalog"
	"github.com/forensicanalysis/kapetriage/wrapper"
)

// Run is the kapetriage run commandline subcommand. It is the body of the
// scheduled task and normally invoked by the OS scheduler, not by operators.
func Run() *cobra.Command {
	return &cobra.Command{
		Use:   "run <casedir>",
		Short: "Execute the acquisition wrapper for a prepared case folder",
		Args:  requireOneExistingDir("case folder"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCase(afero.NewOsFs(), args[0])
		},
	}
}

func runCase(fsys afero.Fs, dir string) error {
	spec, err := kapetriage.ReadRunSpec(fsys, dir)
	if err != nil {
		return err
	}

	runner := wrapper.New(kapetriage.NewAuditLog(fsys, dir), *spec)
	state := runner.Run()

	status := catalog.StatusCompleted
	if state == wrapper.Failed {
		status = catalog.StatusFailed
	}
	updateCatalog(spec.USBRoot, spec.TaskName, status)

	// a failed run stays silent towards the scheduler, the error event in the
	// audit log is the record
	return nil
}

func updateCatalog(root, taskName, status string) {
	if root == "" {
		return
	}
	c, err := catalog.Open(filepath.Join(root, catalog.FileName))
	if err != nil {
		log.Printf("could not open case catalog: %v", err)
		return
	}
	defer c.Close()
	if err := c.SetStatus(taskName, status); err != nil {
		log.Printf("could not update case catalog: %v", err)
	}
}

func requireOneExistingDir(noun string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.Errorf("requires exactly one %s", noun)
		}
		if _, err := os.Stat(args[0]); os.IsNotExist(err) {
			return errors.Wrap(os.ErrNotExist, args[0])
		}
		return nil
	}
}

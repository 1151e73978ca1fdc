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
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/forensicanalysis/kapetriage/catalog"
)

// Cases is the kapetriage cases commandline subcommand.
func Cases() *cobra.Command {
	return &cobra.Command{
		Use:   "cases <usbroot>",
		Short: "List acquisitions recorded in the case catalog",
		Args:  requireOneExistingDir("media root"),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Open(filepath.Join(args[0], catalog.FileName))
			if err != nil {
				return err
			}
			defer c.Close()

			entries, err := c.List()
			if err != nil {
				return err
			}
			for _, entry := range entries {
				fmt.Printf("%s  %s  %s  %s  %s\n",
					entry.CreatedTime, entry.TaskName, entry.CaseID, entry.Status, entry.Directory)
			}
			return nil
		},
	}
}

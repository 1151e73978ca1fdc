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
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/forensicanalysis/kapetriage"
)

// Log is the kapetriage log commandline subcommand.
func Log() *cobra.Command {
	var event string
	logCommand := &cobra.Command{
		Use:   "log <casedir>",
		Short: "Print the structured run log of a case folder",
		Args:  requireOneExistingDir("case folder"),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(filepath.Join(args[0], kapetriage.RecordLogName))
			if err != nil {
				return err
			}
			records := gjson.ParseBytes(data)
			if !records.IsArray() {
				return errors.New("run log is not a JSON array")
			}
			for _, record := range records.Array() {
				if event != "" && record.Get("event").String() != event {
					continue
				}
				fmt.Println(record.Raw)
			}
			return nil
		},
	}
	logCommand.Flags().StringVar(&event, "event", "", "only print records with this event tag (start, end, error)")
	return logCommand
}

// Validate is the kapetriage validate commandline subcommand.
func Validate() *cobra.Command {
	var noFail bool
	validateCommand := &cobra.Command{
		Use:   "validate <casedir>",
		Short: "Validate the structured run log records of a case folder",
		Args:  requireOneExistingDir("case folder"),
		RunE: func(cmd *cobra.Command, args []string) error {
			flaws, err := kapetriage.ValidateRecords(afero.NewOsFs(), args[0])
			if err != nil {
				return err
			}
			if len(flaws) > 0 {
				for _, flaw := range flaws {
					fmt.Println(flaw)
				}
				if noFail {
					return nil
				}
				return fmt.Errorf("%d invalid records", len(flaws))
			}
			return nil
		},
	}
	validateCommand.Flags().BoolVar(&noFail, "no-fail", false, "return exit code 0")
	return validateCommand
}

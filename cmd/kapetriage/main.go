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

// Package kapetriage implements the kapetriage command line tool that
// schedules and records forensic triage acquisitions from removable media.
//     acquire   Schedule a triage acquisition from removable media
//     run       Execute the acquisition wrapper for a prepared case folder
//     cases     List acquisitions recorded in the case catalog
//     log       Print the structured run log of a case folder
//     validate  Validate the structured run log records of a case folder
//
// Usage
//
// Schedule an acquisition with engagement metadata
//     kapetriage acquire --incident-id IR-2020-042 --operator-name "J. Doe"
// Inspect a finished case folder
//     kapetriage log E:\CASE-20200101-1210-HOST1 --event error
//     kapetriage validate E:\CASE-20200101-1210-HOST1
// List all acquisitions on the medium
//     kapetriage cases E:\
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/forensicanalysis/kapetriage/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "kapetriage",
		Short: "Schedule and record forensic triage acquisitions",
	}
	rootCmd.AddCommand(cmd.Acquire(), cmd.Run(), cmd.Cases(), cmd.Log(), cmd.Validate())
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

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
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/forensicanalysis/kapetriage"
	"github.com/forensicanalysis/kapetriage/catalog"
	"github.com/forensicanalysis/kapetriage/locate"
	"github.com/forensicanalysis/kapetriage/scheduler"
)

const (
	collectorName = "kape.exe"
	searchDepth   = 6
	defaultTarget = "KapeTriage"
)

// Acquire is the kapetriage acquire commandline subcommand.
func Acquire() *cobra.Command {
	var meta kapetriage.CaseMetadata
	var root, target string
	var stealth bool

	acquireCommand := &cobra.Command{
		Use:   "acquire",
		Short: "Schedule a triage acquisition from removable media",
		RunE: func(cmd *cobra.Command, args []string) error {
			return newAcquirer().acquire(meta, root, target, stealth)
		},
	}

	flags := acquireCommand.Flags()
	flags.StringVar(&meta.CaseID, "case-id", "", "case identifier")
	flags.StringVar(&meta.IncidentID, "incident-id", "", "incident identifier")
	flags.StringVar(&meta.OperatorName, "operator-name", "", "name of the acquiring operator")
	flags.StringVar(&meta.OperatorID, "operator-id", "", "identifier of the acquiring operator")
	flags.StringVar(&meta.AuthorisationRef, "authorisation-ref", "", "authorisation reference")
	flags.StringVar(&meta.EvidenceDeviceID, "evidence-device-id", "", "identifier of the evidence device")
	flags.StringVar(&meta.Notes, "notes", "", "free form notes")
	flags.StringVar(&root, "root", "", "removable media root (default: volume of this executable)")
	flags.StringVar(&target, "target", "", "collector target profile")
	flags.BoolVar(&stealth, "stealth", false, "suppress any visible collector window")
	return acquireCommand
}

// caseRecorder is the catalog surface the acquire flow needs.
type caseRecorder interface {
	Insert(entry catalog.Entry) error
	Close() error
}

// acquirer bundles the host facing parts of the acquire flow. Production code
// uses newAcquirer, tests substitute fakes.
type acquirer struct {
	fs          afero.Fs
	env         kapetriage.Environment
	elevated    func() bool
	executable  func() (string, error)
	scheduler   scheduler.Scheduler
	openCatalog func(path string) (caseRecorder, error)
}

func newAcquirer() *acquirer {
	return &acquirer{
		fs:         afero.NewOsFs(),
		env:        kapetriage.OSEnvironment(),
		elevated:   isElevated,
		executable: os.Executable,
		scheduler:  scheduler.NewSchtasks(),
		openCatalog: func(path string) (caseRecorder, error) {
			return catalog.Open(path)
		},
	}
}

func (a *acquirer) acquire(partial kapetriage.CaseMetadata, root, target string, stealth bool) error {
	if !a.elevated() {
		return errors.New("administrative privileges are required to schedule the acquisition task")
	}

	executable, err := a.executable()
	if err != nil {
		return errors.Wrap(err, "could not locate own executable")
	}
	if root == "" {
		root = filepath.VolumeName(executable) + string(filepath.Separator)
	}

	kapePath, err := locate.Find(a.fs, root, collectorName, searchDepth)
	if err != nil {
		return errors.Wrapf(err, "no %s below %s", collectorName, root)
	}

	defaults, err := kapetriage.LoadDefaults(a.fs, root)
	if err != nil {
		log.Printf("ignoring defaults file: %v", err)
	}
	partial = defaults.Merge(partial)
	if target == "" {
		target = defaults.Target
	}
	if target == "" {
		target = defaultTarget
	}

	now := a.env.Now()
	meta := kapetriage.Resolve(partial, a.env, root)
	dir, err := kapetriage.BuildWorkspace(a.fs, root, meta.Hostname, now)
	if err != nil {
		return err
	}

	task := scheduler.NewTaskDescriptor(executable, []string{"run", dir})
	spec := kapetriage.RunSpec{
		Kape:          kapePath,
		Args:          kapetriage.CollectorArgs(systemDrive(), dir, target, meta.Hostname, stealth),
		OutputPath:    dir,
		USBRoot:       root,
		TaskName:      task.Name,
		System:        meta.Hostname,
		Stealth:       stealth,
		ScriptVersion: kapetriage.Version,
		Metadata:      meta,
	}
	if err := kapetriage.WriteRunSpec(a.fs, dir, spec); err != nil {
		return err
	}

	a.recordCase(root, task.Name, meta, dir, now.UTC().Format("2006-01-02T15:04:05Z"))

	orchestrator := scheduler.NewOrchestrator(a.fs, dir, a.scheduler)
	if orchestrator.Launch(task) {
		fmt.Println("Scheduled acquisition task", task.Name)
	} else {
		fmt.Println("Task scheduling failed, see", filepath.Join(dir, scheduler.ErrorFileName))
	}
	fmt.Println("Case folder:", dir)
	return nil
}

// recordCase inserts the catalog row. The catalog is an index, failing to
// write it must not abort the acquisition.
func (a *acquirer) recordCase(root, taskName string, meta kapetriage.CaseMetadata, dir, created string) {
	c, err := a.openCatalog(filepath.Join(root, catalog.FileName))
	if err != nil {
		log.Printf("could not open case catalog: %v", err)
		return
	}
	defer c.Close()
	err = c.Insert(catalog.Entry{
		TaskName:    taskName,
		CaseID:      meta.CaseID,
		IncidentID:  meta.IncidentID,
		Hostname:    meta.Hostname,
		Directory:   dir,
		CreatedTime: created,
		Status:      catalog.StatusScheduled,
	})
	if err != nil {
		log.Printf("could not record case in catalog: %v", err)
	}
}

func systemDrive() string {
	if drive := os.Getenv("SystemDrive"); drive != "" {
		return drive
	}
	return "C:"
}

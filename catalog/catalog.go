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

// Package catalog keeps a small sqlite index of all acquisitions scheduled
// from one removable medium.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"crawshaw.io/sqlite"
	"github.com/fatih/structs"
	"github.com/pkg/errors"
	"github.com/stoewer/go-strcase"
)

// FileName of the catalog database at the media root.
const FileName = "triage.db"

const catalogApplicationID = 1801675124
const catalogVersion = 1

// Entry states.
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Entry is one scheduled acquisition. The orchestrating process inserts it,
// the detached wrapper updates the status on its terminal transition.
type Entry struct {
	TaskName    string
	CaseID      string
	IncidentID  string
	Hostname    string
	Directory   string
	CreatedTime string
	Status      string
}

// Catalog is a sqlite backed index of acquisitions.
type Catalog struct {
	conn *sqlite.Conn
}

// Open opens or creates a catalog database.
func Open(url string) (*Catalog, error) {
	conn, err := sqlite.OpenConn(url, 0)
	if err != nil {
		return nil, err
	}
	c := &Catalog{conn: conn}

	version, err := pragma(conn, "user_version")
	if err != nil {
		conn.Close() // nolint:errcheck
		return nil, err
	}

	if version == 0 {
		if err := setPragma(conn, "application_id", catalogApplicationID); err != nil {
			conn.Close() // nolint:errcheck
			return nil, err
		}
		if err := setPragma(conn, "user_version", catalogVersion); err != nil {
			conn.Close() // nolint:errcheck
			return nil, err
		}
		err = c.exec("CREATE TABLE IF NOT EXISTS `cases` (" +
			"task_name TEXT PRIMARY KEY, case_id TEXT, incident_id TEXT, " +
			"hostname TEXT, directory TEXT, created_time TEXT, status TEXT)")
		if err != nil {
			conn.Close() // nolint:errcheck
			return nil, err
		}
		return c, nil
	}

	applicationID, err := pragma(conn, "application_id")
	if err != nil {
		conn.Close() // nolint:errcheck
		return nil, err
	}
	if applicationID != catalogApplicationID {
		conn.Close() // nolint:errcheck
		msg := "wrong file format (application_id is %d, requires %d)"
		return nil, fmt.Errorf(msg, applicationID, catalogApplicationID)
	}
	if version != catalogVersion {
		conn.Close() // nolint:errcheck
		msg := "wrong file format (user_version is %d, requires %d)"
		return nil, fmt.Errorf(msg, version, catalogVersion)
	}
	return c, nil
}

// Insert adds an entry, the struct fields map to snake_case columns.
func (c *Catalog) Insert(entry Entry) error {
	m := structs.Map(entry)

	var columns []string
	for field := range m {
		columns = append(columns, strcase.SnakeCase(field))
	}
	sort.Strings(columns)

	var params []string
	for _, column := range columns {
		params = append(params, "$"+column)
	}

	query := fmt.Sprintf("INSERT INTO `cases` (%s) VALUES (%s)",
		strings.Join(columns, ", "), strings.Join(params, ", ")) // #nosec
	stmt, err := c.conn.Prepare(query)
	if err != nil {
		return errors.Wrapf(err, "could not prepare statement %s", query)
	}
	for field, value := range m {
		stmt.SetText("$"+strcase.SnakeCase(field), fmt.Sprint(value))
	}
	if _, err := stmt.Step(); err != nil {
		return errors.Wrapf(err, "could not exec statement %s", query)
	}
	return stmt.Finalize()
}

// SetStatus updates the status of an entry by task name.
func (c *Catalog) SetStatus(taskName, status string) error {
	stmt, err := c.conn.Prepare("UPDATE `cases` SET status = $status WHERE task_name = $task_name")
	if err != nil {
		return errors.Wrap(err, "could not prepare status update")
	}
	stmt.SetText("$status", status)
	stmt.SetText("$task_name", taskName)
	if _, err := stmt.Step(); err != nil {
		return errors.Wrap(err, "could not update status")
	}
	return stmt.Finalize()
}

// List returns all entries ordered by creation time.
func (c *Catalog) List() ([]Entry, error) {
	stmt, err := c.conn.Prepare("SELECT task_name, case_id, incident_id, hostname, " +
		"directory, created_time, status FROM `cases` ORDER BY created_time")
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for {
		hasRow, err := stmt.Step()
		if err != nil {
			return nil, err
		}
		if !hasRow {
			break
		}
		entries = append(entries, Entry{
			TaskName:    stmt.GetText("task_name"),
			CaseID:      stmt.GetText("case_id"),
			IncidentID:  stmt.GetText("incident_id"),
			Hostname:    stmt.GetText("hostname"),
			Directory:   stmt.GetText("directory"),
			CreatedTime: stmt.GetText("created_time"),
			Status:      stmt.GetText("status"),
		})
	}
	return entries, stmt.Finalize()
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.conn.Close()
}

func (c *Catalog) exec(query string) error {
	stmt, err := c.conn.Prepare(query)
	if err != nil {
		return err
	}
	if _, err := stmt.Step(); err != nil {
		return err
	}
	return stmt.Finalize()
}

func pragma(conn *sqlite.Conn, name string) (int64, error) {
	stmt, err := conn.Prepare("PRAGMA " + name)
	if err != nil {
		return 0, err
	}
	_, err = stmt.Step()
	if err != nil {
		return 0, err
	}
	i := stmt.GetInt64(name)
	return i, stmt.Finalize()
}

func setPragma(conn *sqlite.Conn, name string, i int64) error {
	stmt, err := conn.Prepare(fmt.Sprintf("PRAGMA %s = %d", name, i))
	if err != nil {
		return err
	}
	_, err = stmt.Step()
	if err != nil {
		return err
	}
	return stmt.Finalize()
}

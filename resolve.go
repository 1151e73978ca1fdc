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
	"os"
	"os/user"
	"strings"
	"time"

	"github.com/imdario/mergo"
)

// Environment provides the host facts the metadata resolver falls back to.
// Production code uses OSEnvironment, tests substitute fixed values.
type Environment interface {
	Hostname() string
	Username() string
	Domain() string
	Now() time.Time
}

type osEnvironment struct{}

// OSEnvironment returns an Environment backed by the operating system.
func OSEnvironment() Environment {
	return osEnvironment{}
}

func (osEnvironment) Hostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "UNKNOWN-HOST"
	}
	return hostname
}

func (osEnvironment) Username() string {
	current, err := user.Current()
	if err != nil {
		return ""
	}
	// on Windows user.Current reports DOMAIN\user
	name := current.Username
	if i := strings.LastIndex(name, `\`); i >= 0 {
		name = name[i+1:]
	}
	return name
}

func (osEnvironment) Domain() string {
	return os.Getenv("USERDOMAIN")
}

func (osEnvironment) Now() time.Time {
	return time.Now()
}

// Resolve fills every unset field of the given partial metadata with its
// documented default. It never fails and always yields a fully populated
// record; Notes defaults to the empty string sentinel.
func Resolve(partial CaseMetadata, env Environment, usbRoot string) CaseMetadata {
	hostname := env.Hostname()
	stamp := env.Now().UTC().Format("20060102150405")

	operator := env.Username()
	if operator == "" {
		operator = "Unknown"
	}
	operatorID := operator
	if domain := env.Domain(); domain != "" {
		operatorID = domain + `\` + operator
	}

	defaults := CaseMetadata{
		CaseID:           "AUTO-" + stamp + "-" + hostname,
		IncidentID:       "AUTO-" + stamp + "-" + hostname,
		OperatorName:     operator,
		OperatorID:       operatorID,
		AuthorisationRef: "AUTO",
		EvidenceDeviceID: usbRoot,
		Hostname:         hostname,
	}

	meta := partial
	if err := mergo.Merge(&meta, defaults); err != nil {
		return defaults
	}
	return meta
}

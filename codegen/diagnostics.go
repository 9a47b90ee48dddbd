// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package codegen

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Severity of a diagnostic. The generator currently only reports errors;
// the level exists so the sink's contract matches what emitters of
// warnings would need.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic is one reported problem, attached to the offending element
// (a type or declaration name, usually with a position prefix).
type Diagnostic struct {
	Severity Severity
	Element  string
	Message  string
}

func (d Diagnostic) String() string {
	if d.Element == "" {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Element, d.Severity, d.Message)
}

// Reporter collects diagnostics and prints them as they arrive, so a run
// surfaces every problem from every declaration in one pass instead of
// stopping at the first. Errors are colored when the output is a terminal.
type Reporter struct {
	out   io.Writer
	color bool
	diags []Diagnostic
}

// NewReporter returns a Reporter printing to out.
func NewReporter(out io.Writer) *Reporter {
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Reporter{out: out, color: color}
}

// Errorf reports an ERROR diagnostic against the offending element.
func (r *Reporter) Errorf(element, format string, args ...interface{}) {
	r.report(Diagnostic{
		Severity: SeverityError,
		Element:  element,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (r *Reporter) report(d Diagnostic) {
	r.diags = append(r.diags, d)
	line := d.String()
	if r.color && d.Severity == SeverityError {
		line = "\x1b[31m" + line + "\x1b[0m"
	}
	fmt.Fprintln(r.out, line)
}

// HasErrors reports whether any ERROR diagnostic was collected.
func (r *Reporter) HasErrors() bool {
	for _, d := range r.diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Diagnostics returns everything reported so far, in order.
func (r *Reporter) Diagnostics() []Diagnostic {
	return r.diags
}

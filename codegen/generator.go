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

// Package codegen generates aggregated adapter-factory dispatch tables.
//
// For every interface marked //jsonadapt:factory it builds one dispatch
// program over the package's //jsonadapt:value types and emits it as a
// generated source file. Construction is a pure function over the
// extracted model; configuration problems in one declaration are reported
// through the diagnostics sink and do not stop the others.
package codegen

import (
	"fmt"
	"go/types"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

// Options configures a generator run.
type Options struct {
	// Patterns are package patterns in the go/packages sense, e.g. "./...".
	Patterns []string

	// Dir is the working directory for package loading and config lookup.
	// Empty means the process working directory.
	Dir string

	// Force rewrites generated files even when the fingerprint is current.
	Force bool

	// ConfigFile overrides the default per-directory config discovery.
	ConfigFile string
}

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedDeps |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo

// Run executes the generator. Configuration errors are reported per
// declaration and the run continues, so one bad aggregator does not block
// the others; the returned error is non-nil when anything failed.
// Internal invariant violations (a marked value type without its factory)
// abort immediately.
func Run(opts *Options) error {
	reporter := NewReporter(os.Stderr)
	if err := run(opts, reporter); err != nil {
		return err
	}
	if reporter.HasErrors() {
		return fmt.Errorf("jsonadapt: %d error(s)", len(reporter.Diagnostics()))
	}
	return nil
}

func run(opts *Options, reporter *Reporter) error {
	cfg, err := loadOptionsConfig(opts)
	if err != nil {
		return err
	}

	patterns := opts.Patterns
	force := opts.Force
	if cfg != nil {
		if len(patterns) == 0 {
			patterns = cfg.Packages
		}
		force = force || cfg.Force
	}
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	loadCfg := &packages.Config{
		Mode: loadMode,
		Dir:  opts.Dir,
	}
	pkgs, err := packages.Load(loadCfg, patterns...)
	if err != nil {
		return fmt.Errorf("loading packages %v: %w", patterns, err)
	}

	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			for _, pkgErr := range pkg.Errors {
				log.Printf("package error: %s", pkgErr)
			}
		}
		if err := processPackage(pkg, force, reporter); err != nil {
			return fmt.Errorf("processing package %s: %w", pkg.PkgPath, err)
		}
	}
	return nil
}

func loadOptionsConfig(opts *Options) (*Config, error) {
	if opts.ConfigFile != "" {
		return LoadConfig(opts.ConfigFile)
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	return FindConfig(dir)
}

// processPackage extracts the package model and builds one dispatch table
// per aggregator declaration. Declaration-level validation failures become
// diagnostics and skip only that declaration.
func processPackage(pkg *packages.Package, force bool, reporter *Reporter) error {
	model, err := parsePackage(pkg)
	if err != nil {
		return err
	}
	if len(model.Aggregators) == 0 {
		if len(model.Candidates) > 0 {
			log.Printf("package %s: %d value type(s) but no //jsonadapt:factory declaration", pkg.PkgPath, len(model.Candidates))
		}
		return nil
	}

	dir, err := packageDir(pkg)
	if err != nil {
		return err
	}
	capability := lookupCapability(pkg)

	for _, agg := range model.Aggregators {
		if !validateAggregator(agg, capability, reporter) {
			continue
		}

		program, err := BuildDispatch(agg.Decl, model.Candidates)
		if err != nil {
			return err
		}

		written, err := writeProgram(dir, program, force)
		if err != nil {
			// Emission failure drops this declaration's output only.
			reporter.Errorf(agg.Decl.Name, "failed to write dispatch table: %v", err)
			continue
		}
		if written {
			log.Printf("Generated dispatch table for %s.%s (%d candidate(s))",
				pkg.PkgPath, agg.Decl.Name, len(model.Candidates))
		} else {
			log.Printf("Dispatch table for %s.%s is up to date", pkg.PkgPath, agg.Decl.Name)
		}
	}
	return nil
}

// validateAggregator gates dispatch-table construction: the declaration
// must be an interface (the abstract form of an aggregator) and its
// embedding ancestry must reach jsonadapt.Factory.
func validateAggregator(agg aggregatorDecl, capability *types.Named, reporter *Reporter) bool {
	element := fmt.Sprintf("%s: %s", agg.Pos, agg.Decl.Name)

	if agg.Named == nil {
		reporter.Errorf(element, "cannot resolve declaration")
		return false
	}
	if _, ok := agg.Named.Underlying().(*types.Interface); !ok {
		reporter.Errorf(element, "must be an interface")
		return false
	}
	if capability == nil || !Implements(agg.Named, capability) {
		reporter.Errorf(element, "must embed jsonadapt.Factory")
		return false
	}
	return true
}

func packageDir(pkg *packages.Package) (string, error) {
	if len(pkg.GoFiles) == 0 {
		return "", fmt.Errorf("package %s has no Go files", pkg.PkgPath)
	}
	return filepath.Dir(pkg.GoFiles[0]), nil
}

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

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jsonadapt/jsonadapt/codegen"
)

var (
	pkgFlag     = flag.String("pkg", "", "package pattern to generate for, e.g. ./... (default: config file or .)")
	dirFlag     = flag.String("dir", "", "working directory for package loading")
	configFlag  = flag.String("config", "", "path to a .jsonadapt.yaml config file")
	forceFlag   = flag.Bool("force", false, "rewrite generated files even when up to date")
	helpFlag    = flag.Bool("help", false, "show help message")
	versionFlag = flag.Bool("version", false, "show version information")
)

const version = "1.0.0"

func main() {
	flag.Parse()

	if *helpFlag {
		showHelp()
		return
	}
	if *versionFlag {
		fmt.Printf("jsonadapt version %s\n", version)
		return
	}

	opts := &codegen.Options{
		Dir:        *dirFlag,
		Force:      *forceFlag,
		ConfigFile: *configFlag,
	}
	if *pkgFlag != "" {
		opts.Patterns = append(opts.Patterns, *pkgFlag)
	}
	opts.Patterns = append(opts.Patterns, flag.Args()...)

	if err := codegen.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "jsonadapt: %v\n", err)
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Printf(`jsonadapt - adapter-factory dispatch table generator

Usage:
  jsonadapt [options] [packages]

Options:
  -pkg string
        package pattern to generate for, e.g. ./...
  -dir string
        working directory for package loading
  -config string
        path to a .jsonadapt.yaml config file
  -force
        rewrite generated files even when up to date
  -help
        show this help message
  -version
        show version information

jsonadapt scans the given packages for //jsonadapt:value types and
//jsonadapt:factory interface declarations, and generates one dispatch
table per factory declaration.

Examples:
  # Generate for the current package
  jsonadapt

  # Generate for a whole module
  jsonadapt -pkg ./...

  # Always rewrite, ignoring fingerprints
  jsonadapt -force ./models

Installation:
  go install github.com/jsonadapt/jsonadapt/cmd/jsonadapt
`)
}

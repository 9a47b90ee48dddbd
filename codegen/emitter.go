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
	"bytes"
	"encoding/binary"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"

	"github.com/spaolacci/murmur3"
)

// fingerprint hashes everything that influences the rendered table: the
// declaration, the flag, and each branch in order. Two builds over the
// same model always agree, so the generator can skip rewriting files whose
// on-disk fingerprint matches.
func fingerprint(p *DispatchProgram) uint64 {
	h := murmur3.New64()
	write := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	writeInt := func(v int) {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(v))
		h.Write(b[:])
	}

	write(p.Decl.PkgPath)
	write(p.Decl.Name)
	writeInt(boolToInt(p.NullSafe))
	for _, branch := range append(append([]Branch{}, p.Generic...), p.Plain...) {
		write(branch.Candidate.Ident.Path())
		write(branch.Candidate.Ident.Name())
		write(branch.Candidate.FactoryName)
		writeInt(branch.Candidate.GenericArity)
		writeInt(branch.Candidate.FactoryParamCount)
		writeInt(boolToInt(branch.Invoke))
	}
	return h.Sum64()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// generatedFileName returns the output file name for a declaration,
// e.g. AppFactory -> app_factory_jsonadapt_gen.go.
func generatedFileName(decl FactoryDeclaration) string {
	return toSnakeCase(decl.Name) + "_jsonadapt_gen.go"
}

func implTypeName(decl FactoryDeclaration) string {
	return "jsonadapt" + decl.Name
}

func classVarName(decl FactoryDeclaration, candidate CandidateType) string {
	return "jsonadapt" + decl.Name + candidate.Name + "Class"
}

func fingerprintConst(decl FactoryDeclaration, fp uint64) string {
	return fmt.Sprintf("const jsonadapt%sTableHash uint64 = 0x%016x", decl.Name, fp)
}

// renderProgram renders one dispatch table to formatted Go source.
// Rendering is deterministic: the same program always yields the same
// bytes.
func renderProgram(p *DispatchProgram) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "// Code generated by jsonadapt. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", p.Decl.PkgName)
	fmt.Fprintf(&buf, "import (\n")
	fmt.Fprintf(&buf, "\t%q\n", runtimePkgPath)
	fmt.Fprintf(&buf, ")\n\n")

	// The fingerprint lets the generator detect a stale file without
	// re-parsing it.
	fmt.Fprintf(&buf, "%s\n\n", fingerprintConst(p.Decl, fingerprint(p)))

	candidates := p.Candidates()
	if len(candidates) > 0 {
		fmt.Fprintf(&buf, "var (\n")
		for _, candidate := range candidates {
			fmt.Fprintf(&buf, "\t%s = jsonadapt.ClassOf(%q, %q)\n",
				classVarName(p.Decl, candidate), candidate.Ident.Path(), candidate.Ident.Name())
		}
		fmt.Fprintf(&buf, ")\n\n")
	}

	impl := implTypeName(p.Decl)
	fmt.Fprintf(&buf, "type %s struct{}\n\n", impl)
	fmt.Fprintf(&buf, "// New%s returns the generated dispatch factory for %s.\n", p.Decl.Name, p.Decl.Name)
	fmt.Fprintf(&buf, "func New%s() %s {\n", p.Decl.Name, p.Decl.Name)
	fmt.Fprintf(&buf, "\treturn %s{}\n", impl)
	fmt.Fprintf(&buf, "}\n\n")
	fmt.Fprintf(&buf, "var _ %s = %s{}\n\n", p.Decl.Name, impl)

	renderCreate(&buf, p)

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated code for %s: %w", p.Decl.Name, err)
	}
	return formatted, nil
}

// renderCreate emits the dispatch method. The order is fixed: annotation
// gate, generic group inside a parameterized-type guard, plain group, then
// the terminal no-match. Within each group the first branch is an if and
// the rest are else-if, so exactly one branch can fire per request.
func renderCreate(buf *bytes.Buffer, p *DispatchProgram) {
	impl := implTypeName(p.Decl)
	fmt.Fprintf(buf, "func (%s) Create(typ jsonadapt.TypeSpec, annotations jsonadapt.Annotations, ctx *jsonadapt.Context) jsonadapt.ErasedAdapter {\n", impl)

	// Adapters from this table only serve un-annotated usages.
	fmt.Fprintf(buf, "\tif !annotations.IsEmpty() {\n")
	fmt.Fprintf(buf, "\t\treturn nil\n")
	fmt.Fprintf(buf, "\t}\n")

	if len(p.Generic) > 0 {
		fmt.Fprintf(buf, "\tif parameterized, ok := typ.(jsonadapt.Parameterized); ok {\n")
		fmt.Fprintf(buf, "\t\trawType := parameterized.RawType()\n")
		for i, branch := range p.Generic {
			if i == 0 {
				fmt.Fprintf(buf, "\t\tif rawType.Equal(%s) {\n", classVarName(p.Decl, branch.Candidate))
			} else {
				fmt.Fprintf(buf, "\t\t} else if rawType.Equal(%s) {\n", classVarName(p.Decl, branch.Candidate))
			}
			if branch.Invoke {
				call := fmt.Sprintf("jsonadapt.Erase(%s(ctx, parameterized.TypeArguments()))", branch.Candidate.FactoryName)
				fmt.Fprintf(buf, "\t\t\treturn %s\n", wrapNullSafe(call, p.NullSafe))
			}
		}
		fmt.Fprintf(buf, "\t\t}\n")
		fmt.Fprintf(buf, "\t\treturn nil\n")
		fmt.Fprintf(buf, "\t}\n")
	}

	for i, branch := range p.Plain {
		if i == 0 {
			fmt.Fprintf(buf, "\tif typ.Equal(%s) {\n", classVarName(p.Decl, branch.Candidate))
		} else {
			fmt.Fprintf(buf, "\t} else if typ.Equal(%s) {\n", classVarName(p.Decl, branch.Candidate))
		}
		call := fmt.Sprintf("jsonadapt.Erase(%s(ctx))", branch.Candidate.FactoryName)
		fmt.Fprintf(buf, "\t\treturn %s\n", wrapNullSafe(call, p.NullSafe))
	}
	if len(p.Plain) > 0 {
		fmt.Fprintf(buf, "\t}\n")
	}

	fmt.Fprintf(buf, "\treturn nil\n")
	fmt.Fprintf(buf, "}\n")
}

func wrapNullSafe(call string, nullSafe bool) string {
	if nullSafe {
		return "jsonadapt.NullSafe(" + call + ")"
	}
	return call
}

// upToDate reports whether the generated file for the program already
// exists with the same fingerprint.
func upToDate(dir string, p *DispatchProgram) bool {
	existing, err := os.ReadFile(filepath.Join(dir, generatedFileName(p.Decl)))
	if err != nil {
		return false
	}
	return strings.Contains(string(existing), fingerprintConst(p.Decl, fingerprint(p)))
}

// writeProgram renders the program and writes it next to the package
// sources. Returns false without writing when the existing output is
// already current and force is unset.
func writeProgram(dir string, p *DispatchProgram, force bool) (bool, error) {
	if !force && upToDate(dir, p) {
		return false, nil
	}
	formatted, err := renderProgram(p)
	if err != nil {
		return false, err
	}
	outputFile := filepath.Join(dir, generatedFileName(p.Decl))
	if err := os.WriteFile(outputFile, formatted, 0644); err != nil {
		return false, fmt.Errorf("writing %s: %w", outputFile, err)
	}
	return true, nil
}

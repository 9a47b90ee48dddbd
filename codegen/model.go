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
	"unicode"

	"github.com/jsonadapt/jsonadapt"
)

// CandidateType describes one value type eligible for dispatch. Instances
// are derived once per build from the marked types in a package and are
// immutable afterwards.
type CandidateType struct {
	Ident             jsonadapt.Class // registered identity (import path + name)
	Name              string          // type name within its package
	GenericArity      int             // number of type parameters; 0 = plain
	FactoryName       string          // qualifying factory function, same package
	FactoryParamCount int             // 1 = context only, 2 = context + type args
}

// Plain reports whether the candidate has no type parameters.
func (c CandidateType) Plain() bool { return c.GenericArity == 0 }

// FactoryDeclaration is a user-declared aggregator: an interface marked
// //jsonadapt:factory whose embedding ancestry reaches jsonadapt.Factory.
// Validation happens before construction; a FactoryDeclaration handed to
// the builder is already known to be well-formed.
type FactoryDeclaration struct {
	PkgPath  string
	PkgName  string
	Name     string
	NullSafe bool // from the "nullsafe" directive argument
}

// Branch is one mutually exclusive arm of a dispatch table: an identity
// match against the candidate plus, when Invoke is set, a construction
// call of its factory.
//
// Invoke is false only for generic candidates whose factory takes no
// type-argument parameter: such a branch matches structurally but has an
// empty body, so a parameterized request for it falls through to the
// group's trailing no-match. That asymmetry is deliberate and is covered
// by a regression test; see the package tests.
type Branch struct {
	Candidate CandidateType
	Invoke    bool
}

// DispatchProgram is the ordered dispatch table built for one aggregator.
// It is write-once: the builder fills it and only the emitter reads it.
//
// The rendered program always begins with the annotation exclusion gate,
// then the Generic branches inside a parameterized-type guard (with a
// trailing no-match inside the guard), then the Plain branches, then the
// terminal no-match. Branch order within each group is the candidates'
// declaration order; first match wins.
type DispatchProgram struct {
	Decl     FactoryDeclaration
	NullSafe bool
	Generic  []Branch
	Plain    []Branch
}

// Candidates returns all branch candidates in table order, generic group
// first. Used by the emitter to declare identity vars and by fingerprinting.
func (p *DispatchProgram) Candidates() []CandidateType {
	out := make([]CandidateType, 0, len(p.Generic)+len(p.Plain))
	for _, b := range p.Generic {
		out = append(out, b.Candidate)
	}
	for _, b := range p.Plain {
		out = append(out, b.Candidate)
	}
	return out
}

// toSnakeCase converts CamelCase to snake_case. Runs of capitals are kept
// together, so HTTPFactory becomes http_factory rather than h_t_t_p_factory.
func toSnakeCase(s string) string {
	runes := []rune(s)
	var result []rune
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				result = append(result, '_')
			}
		}
		result = append(result, unicode.ToLower(r))
	}
	return string(result)
}

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

import "fmt"

// BuildDispatch constructs the dispatch table for one validated aggregator
// declaration over the closed candidate set.
//
// Candidates are partitioned into the generic group (arity > 0) and the
// plain group (arity == 0), preserving their relative declaration order
// within each group; that order is the generated branch order, so the
// first declared candidate wins should identities ever overlap. A generic
// candidate whose factory takes only the context gets a non-invoking
// branch: it still occupies its slot in the chain (the match is emitted)
// but produces nothing, preserving the fall-through to the generic group's
// no-match.
//
// A candidate without a factory reference violates the model's invariant -
// every candidate is extracted together with exactly one qualifying
// factory - and aborts the whole build. Skipping it instead would emit a
// table that silently returns no-match for a valid type.
func BuildDispatch(decl FactoryDeclaration, candidates []CandidateType) (*DispatchProgram, error) {
	program := &DispatchProgram{
		Decl:     decl,
		NullSafe: decl.NullSafe,
	}

	for _, candidate := range candidates {
		if candidate.FactoryName == "" || candidate.FactoryParamCount < 1 {
			return nil, fmt.Errorf("internal: candidate %s has no qualifying adapter factory", candidate.Ident)
		}
		if candidate.GenericArity > 0 {
			program.Generic = append(program.Generic, Branch{
				Candidate: candidate,
				Invoke:    candidate.FactoryParamCount > 1,
			})
		} else {
			program.Plain = append(program.Plain, Branch{
				Candidate: candidate,
				Invoke:    true,
			})
		}
	}

	return program, nil
}

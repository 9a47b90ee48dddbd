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
	"go/types"

	mapset "github.com/deckarep/golang-set/v2"
)

// Implements reports whether t or any ancestor in its embedding graph
// reaches the capability interface.
//
// The walk mirrors nominal-inheritance capability checks: for struct
// types, embedded fields form the ancestor chain (a worklist, since Go
// permits multiple embedding); at each ancestor, directly embedded
// interfaces are compared against the capability and then searched
// recursively through their own embedded interfaces, since interfaces can
// embed interfaces and form a tree rather than a chain. For a t that is
// itself an interface, its embedded interfaces are the starting set.
//
// Go's instantiated type graph is acyclic, but the walk carries a visited
// set anyway so that pathological inputs terminate. Pure query, no
// side effects.
func Implements(t types.Type, capability *types.Named) bool {
	start, ok := types.Unalias(t).(*types.Named)
	if !ok || capability == nil {
		return false
	}

	visited := mapset.NewThreadUnsafeSet[*types.TypeName]()
	work := []*types.Named{start}

	for len(work) > 0 {
		cur := work[0]
		work = work[1:]
		if !visited.Add(cur.Obj()) {
			continue
		}

		switch u := cur.Underlying().(type) {
		case *types.Interface:
			if searchEmbedded(u, capability, visited) {
				return true
			}
		case *types.Struct:
			for i := 0; i < u.NumFields(); i++ {
				field := u.Field(i)
				if !field.Embedded() {
					continue
				}
				ft := types.Unalias(field.Type())
				if ptr, isPtr := ft.(*types.Pointer); isPtr {
					ft = types.Unalias(ptr.Elem())
				}
				named, isNamed := ft.(*types.Named)
				if !isNamed {
					continue
				}
				if iface, isIface := named.Underlying().(*types.Interface); isIface {
					if types.Identical(named, capability) {
						return true
					}
					if searchEmbedded(iface, capability, visited) {
						return true
					}
				} else {
					// Embedded concrete type: the superclass analog,
					// searched after the current ancestor's interfaces.
					work = append(work, named)
				}
			}
		}
	}
	return false
}

// searchEmbedded checks each interface directly embedded in iface for
// identity with the capability, recursing depth-first into the embedded
// interface's own embeddings before moving to the next sibling.
func searchEmbedded(iface *types.Interface, capability *types.Named, visited mapset.Set[*types.TypeName]) bool {
	for i := 0; i < iface.NumEmbeddeds(); i++ {
		embedded := types.Unalias(iface.EmbeddedType(i))
		named, ok := embedded.(*types.Named)
		if !ok {
			// Type-set terms (unions, ~T) cannot carry the capability.
			continue
		}
		if types.Identical(named, capability) {
			return true
		}
		if !visited.Add(named.Obj()) {
			continue
		}
		if inner, ok := named.Underlying().(*types.Interface); ok {
			if searchEmbedded(inner, capability, visited) {
				return true
			}
		}
	}
	return false
}

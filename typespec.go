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

package jsonadapt

import "strings"

// TypeSpec describes a requested value type at dispatch time.
//
// Dispatch tables compare TypeSpec values against the identities registered
// at generation time. There are exactly two implementations: Class for a
// plain type reference and Parameterized for a generic usage. TypeSpec is
// deliberately not reflection-based; identity comparison must not depend on
// how the host runtime represents instantiated generics.
type TypeSpec interface {
	// Equal reports whether other denotes the same type usage.
	// A Class never equals a Parameterized, even with the same raw type.
	Equal(other TypeSpec) bool

	// String returns a human-readable form, e.g. "pkg/path.Name[arg]".
	String() string
}

// Class identifies a plain (non-parameterized) value type by import path
// and type name. Class values are comparable and are the unit of identity
// in generated dispatch tables.
type Class struct {
	path string
	name string
}

// ClassOf returns the registered identity for the named type.
func ClassOf(path, name string) Class {
	return Class{path: path, name: name}
}

// Path returns the import path of the type's package.
func (c Class) Path() string { return c.path }

// Name returns the type's name within its package.
func (c Class) Name() string { return c.name }

func (c Class) Equal(other TypeSpec) bool {
	o, ok := other.(Class)
	return ok && o == c
}

func (c Class) String() string {
	if c.path == "" {
		return c.name
	}
	return c.path + "." + c.name
}

// Parameterized describes a generic type usage: a raw Class plus the actual
// type arguments requested at the usage site. The argument slice is owned by
// the Parameterized value and must not be mutated after construction.
type Parameterized struct {
	raw  Class
	args []TypeSpec
}

// Parameterize returns the descriptor for raw instantiated with args.
func Parameterize(raw Class, args ...TypeSpec) Parameterized {
	return Parameterized{raw: raw, args: args}
}

// RawType returns the erased, non-parameterized identity.
func (p Parameterized) RawType() Class { return p.raw }

// TypeArguments returns the actual type arguments in declaration order.
func (p Parameterized) TypeArguments() []TypeSpec { return p.args }

func (p Parameterized) Equal(other TypeSpec) bool {
	o, ok := other.(Parameterized)
	if !ok || o.raw != p.raw || len(o.args) != len(p.args) {
		return false
	}
	for i, arg := range p.args {
		if !arg.Equal(o.args[i]) {
			return false
		}
	}
	return true
}

func (p Parameterized) String() string {
	var sb strings.Builder
	sb.WriteString(p.raw.String())
	sb.WriteByte('[')
	for i, arg := range p.args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

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

/*
Package jsonadapt is the runtime support library for the jsonadapt code
generator.

jsonadapt generates aggregated adapter factories for JSON value types.
Each value type declares a factory function producing an adapter for
itself; the generator collects the closed set of value types in a package
and emits one dispatch table per aggregator declaration, so a runtime
serialization framework can resolve adapters with a single call.

# Quick Start

Mark value types and declare their adapter factories:

	//jsonadapt:value
	type User struct {
		ID   int64
		Name string
	}

	func UserAdapter(ctx *jsonadapt.Context) jsonadapt.Adapter[User] {
		return userAdapter{}
	}

Generic value types take the requested type arguments as well:

	//jsonadapt:value
	type Box[T any] struct {
		Value T
	}

	func BoxAdapter(ctx *jsonadapt.Context, args []jsonadapt.TypeSpec) jsonadapt.Adapter[Box[any]] {
		return boxAdapter{args: args}
	}

Declare the aggregator as an interface embedding jsonadapt.Factory and run
the generator:

	//jsonadapt:factory nullsafe
	type AppFactory interface {
		jsonadapt.Factory
	}

	//go:generate jsonadapt -pkg .

The generated NewAppFactory constructor returns a Factory whose Create
method dispatches over the marked value types:

	ctx := jsonadapt.NewContext(NewAppFactory())
	adapter, err := ctx.Adapter(jsonadapt.ClassOf("example.com/demo", "User"))

# Type Descriptors

Requested types are described by TypeSpec values, never by reflection.
A plain type is a Class (an import path plus a type name, registered at
generation time); a generic usage is a Parameterized pairing the raw Class
with its actual type arguments. Generated dispatch tables compare these
registered identities directly.

# No-Match Semantics

A Factory returns a nil ErasedAdapter when its table has no entry for the
requested type. Callers must treat nil as "try another factory", not as an
error; Context.Adapter does exactly that across its factory chain.
*/
package jsonadapt

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

import (
	"errors"
	"fmt"
)

// ErrNoAdapter is returned by Context.Adapter when every factory in the
// chain declined the requested type.
var ErrNoAdapter = errors.New("jsonadapt: no adapter for type")

// Context is the serialization context passed through to adapter factory
// functions. It owns an ordered chain of factories; adapter lookups walk
// the chain until one factory produces a match.
//
// Context does not cache adapters. Frameworks that resolve the same type
// repeatedly should memoize the result themselves, or use the threadsafe
// package for concurrent lookups.
type Context struct {
	factories []Factory
}

// NewContext returns a Context dispatching over the given factories in
// order. The slice is copied; later mutation of the argument has no effect.
func NewContext(factories ...Factory) *Context {
	c := &Context{factories: make([]Factory, len(factories))}
	copy(c.factories, factories)
	return c
}

// Adapter resolves an adapter for an un-annotated usage of typ.
func (c *Context) Adapter(typ TypeSpec) (ErasedAdapter, error) {
	return c.AdapterFor(typ, Annotations{})
}

// AdapterFor resolves an adapter for typ at a request site carrying the
// given annotations. Factories are consulted in chain order; the first
// non-nil result wins.
func (c *Context) AdapterFor(typ TypeSpec, annotations Annotations) (ErasedAdapter, error) {
	for _, f := range c.factories {
		if a := f.Create(typ, annotations, c); a != nil {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoAdapter, typ)
}

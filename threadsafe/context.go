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

// Package threadsafe provides a thread-safe wrapper around jsonadapt.Context
// using sync.Pool.
package threadsafe

import (
	"sync"

	"github.com/jsonadapt/jsonadapt"
)

// Context is a thread-safe wrapper around jsonadapt.Context using sync.Pool.
// It provides the same lookup API but is safe for concurrent use: each
// lookup runs against a pooled inner context, so factories never observe
// interleaved calls on the same instance.
type Context struct {
	pool sync.Pool
}

// New creates a thread-safe Context dispatching over the given factories.
func New(factories ...jsonadapt.Factory) *Context {
	c := &Context{}
	c.pool = sync.Pool{
		New: func() any {
			return jsonadapt.NewContext(factories...)
		},
	}
	return c
}

func (c *Context) acquire() *jsonadapt.Context {
	return c.pool.Get().(*jsonadapt.Context)
}

func (c *Context) release(inner *jsonadapt.Context) {
	c.pool.Put(inner)
}

// Adapter resolves an adapter for an un-annotated usage of typ.
func (c *Context) Adapter(typ jsonadapt.TypeSpec) (jsonadapt.ErasedAdapter, error) {
	inner := c.acquire()
	defer c.release(inner)
	return inner.Adapter(typ)
}

// AdapterFor resolves an adapter for typ with the given annotations.
func (c *Context) AdapterFor(typ jsonadapt.TypeSpec, annotations jsonadapt.Annotations) (jsonadapt.ErasedAdapter, error) {
	inner := c.acquire()
	defer c.release(inner)
	return inner.AdapterFor(typ, annotations)
}

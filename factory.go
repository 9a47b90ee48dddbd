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

// Factory is the dispatch contract implemented by generated aggregators.
//
// An aggregator declaration must be an interface whose embedding ancestry
// reaches Factory; the generator verifies this before emitting a table.
type Factory interface {
	// Create returns an adapter for the requested type, or nil when this
	// factory's table has no entry for it. A nil result is not an error;
	// it means "try another factory".
	//
	// Create never serves annotated requests: any marker in annotations
	// yields nil regardless of the requested type.
	Create(typ TypeSpec, annotations Annotations, ctx *Context) ErasedAdapter
}

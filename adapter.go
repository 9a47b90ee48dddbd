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
	"bytes"
	"fmt"
)

// Adapter converts values of a single type to and from JSON.
//
// Factory functions for value types return Adapter instantiated with
// exactly that type; the generator verifies this at build time. jsonadapt
// itself never implements the conversion - adapters are user code, the
// generated tables only select them.
type Adapter[T any] interface {
	// ToJSON encodes v.
	ToJSON(v T) ([]byte, error)

	// FromJSON decodes data into a value of type T.
	FromJSON(data []byte) (T, error)
}

// ErasedAdapter is the type-erased form returned by dispatch tables.
// It is what a serialization framework works with when the concrete value
// type is only known at runtime.
type ErasedAdapter interface {
	// ToJSONValue encodes v, which must hold the adapter's value type.
	ToJSONValue(v any) ([]byte, error)

	// FromJSONValue decodes data into a value of the adapter's type.
	FromJSONValue(data []byte) (any, error)
}

// erasedAdapter adapts a typed Adapter to the erased interface.
// The concrete type check happens on every call; generated dispatch
// guarantees the match, so failures indicate caller misuse.
type erasedAdapter[T any] struct {
	inner Adapter[T]
}

// Erase wraps a typed adapter for use behind ErasedAdapter.
func Erase[T any](a Adapter[T]) ErasedAdapter {
	return erasedAdapter[T]{inner: a}
}

func (e erasedAdapter[T]) ToJSONValue(v any) ([]byte, error) {
	tv, ok := v.(T)
	if !ok {
		return nil, fmt.Errorf("jsonadapt: adapter for %T got %T", tv, v)
	}
	return e.inner.ToJSON(tv)
}

func (e erasedAdapter[T]) FromJSONValue(data []byte) (any, error) {
	v, err := e.inner.FromJSON(data)
	if err != nil {
		return nil, err
	}
	return v, nil
}

var jsonNull = []byte("null")

// nullSafeAdapter special-cases absent values before delegating.
type nullSafeAdapter struct {
	inner ErasedAdapter
}

// NullSafe decorates an adapter so that a nil value encodes to JSON null
// and JSON null decodes to a nil value, without consulting the underlying
// adapter. All other inputs are delegated unchanged.
func NullSafe(a ErasedAdapter) ErasedAdapter {
	return nullSafeAdapter{inner: a}
}

func (n nullSafeAdapter) ToJSONValue(v any) ([]byte, error) {
	if v == nil {
		return jsonNull, nil
	}
	return n.inner.ToJSONValue(v)
}

func (n nullSafeAdapter) FromJSONValue(data []byte) (any, error) {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return nil, nil
	}
	return n.inner.FromJSONValue(data)
}

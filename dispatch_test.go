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
	"testing"

	"github.com/stretchr/testify/require"
)

// The factory below mirrors the exact shape the generator emits for a
// table with two plain candidates, one generic candidate with a
// type-argument-aware factory, and one generic candidate whose factory
// takes only the context (the non-invoking branch). Keeping the mirror in
// sync with the emitter is what the codegen package's emitter tests are
// for; this file tests the dispatch semantics the emitted shape must have.

var (
	userClass  = ClassOf("example.com/demo", "User")
	orderClass = ClassOf("example.com/demo", "Order")
	boxClass   = ClassOf("example.com/demo", "Box")
	gapClass   = ClassOf("example.com/demo", "Gap")
	otherClass = ClassOf("example.com/demo", "Unrelated")
)

type dispatchCalls struct {
	user, order, box int
	boxArgs          []TypeSpec
}

type demoFactory struct {
	nullSafe bool
	calls    *dispatchCalls
}

func (f demoFactory) Create(typ TypeSpec, annotations Annotations, ctx *Context) ErasedAdapter {
	if !annotations.IsEmpty() {
		return nil
	}
	if parameterized, ok := typ.(Parameterized); ok {
		rawType := parameterized.RawType()
		if rawType.Equal(boxClass) {
			f.calls.box++
			f.calls.boxArgs = parameterized.TypeArguments()
			return f.wrap(Erase[testUser](echoAdapter[testUser]{payload: []byte(`"box"`)}))
		} else if rawType.Equal(gapClass) {
		}
		return nil
	}
	if typ.Equal(userClass) {
		f.calls.user++
		return f.wrap(Erase[testUser](echoAdapter[testUser]{payload: []byte(`"user"`)}))
	} else if typ.Equal(orderClass) {
		f.calls.order++
		return f.wrap(Erase[testUser](echoAdapter[testUser]{payload: []byte(`"order"`)}))
	}
	return nil
}

func (f demoFactory) wrap(a ErasedAdapter) ErasedAdapter {
	if f.nullSafe {
		return NullSafe(a)
	}
	return a
}

func newDemoFactory(nullSafe bool) (demoFactory, *dispatchCalls) {
	calls := &dispatchCalls{}
	return demoFactory{nullSafe: nullSafe, calls: calls}, calls
}

func TestPlainDispatch(t *testing.T) {
	factory, calls := newDemoFactory(false)
	ctx := NewContext(factory)

	adapter := factory.Create(userClass, Annotations{}, ctx)
	require.NotNil(t, adapter)
	require.Equal(t, 1, calls.user)
	require.Equal(t, 0, calls.order)
	require.Equal(t, 0, calls.box)

	data, err := adapter.ToJSONValue(testUser{})
	require.NoError(t, err)
	require.Equal(t, []byte(`"user"`), data)
}

func TestPlainBranchesAreMutuallyExclusive(t *testing.T) {
	factory, calls := newDemoFactory(false)
	ctx := NewContext(factory)

	require.NotNil(t, factory.Create(orderClass, Annotations{}, ctx))
	require.Equal(t, 0, calls.user)
	require.Equal(t, 1, calls.order)
}

func TestGenericDispatchWithNullSafe(t *testing.T) {
	factory, calls := newDemoFactory(true)
	ctx := NewContext(factory)

	adapter := factory.Create(Parameterize(boxClass, userClass), Annotations{}, ctx)
	require.NotNil(t, adapter)
	require.Equal(t, 1, calls.box)
	require.Equal(t, []TypeSpec{userClass}, calls.boxArgs)

	// The null-safety decorator must wrap the produced adapter.
	v, err := adapter.FromJSONValue([]byte("null"))
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestUnmatchedTypeReturnsNoMatch(t *testing.T) {
	factory, calls := newDemoFactory(false)
	ctx := NewContext(factory)

	require.Nil(t, factory.Create(otherClass, Annotations{}, ctx))
	require.Nil(t, factory.Create(Parameterize(otherClass, userClass), Annotations{}, ctx))
	require.Equal(t, &dispatchCalls{}, calls)
}

func TestAnnotatedRequestDominates(t *testing.T) {
	factory, calls := newDemoFactory(false)
	ctx := NewContext(factory)
	marks := NewAnnotations("Compact")

	require.Nil(t, factory.Create(userClass, marks, ctx))
	require.Nil(t, factory.Create(Parameterize(boxClass, userClass), marks, ctx))
	require.Equal(t, &dispatchCalls{}, calls)
}

// A generic candidate whose factory takes only the context matches
// structurally but its branch body is empty, so the request falls through
// to the generic group's no-match. The generator preserves this behavior
// rather than guessing at intent.
func TestGenericContextOnlyFactoryNeverDispatches(t *testing.T) {
	factory, calls := newDemoFactory(false)
	ctx := NewContext(factory)

	require.Nil(t, factory.Create(Parameterize(gapClass, userClass), Annotations{}, ctx))
	require.Equal(t, &dispatchCalls{}, calls)

	// The raw reference does not match the plain chain either; the
	// candidate is generic, so only parameterized requests reach it.
	require.Nil(t, factory.Create(gapClass, Annotations{}, ctx))
}

// declineFactory always reports no-match.
type declineFactory struct{}

func (declineFactory) Create(TypeSpec, Annotations, *Context) ErasedAdapter { return nil }

func TestContextWalksFactoryChain(t *testing.T) {
	factory, _ := newDemoFactory(false)
	ctx := NewContext(declineFactory{}, factory)

	adapter, err := ctx.Adapter(userClass)
	require.NoError(t, err)
	require.NotNil(t, adapter)

	_, err = ctx.Adapter(otherClass)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNoAdapter))
}

func TestContextAdapterForPassesAnnotations(t *testing.T) {
	factory, _ := newDemoFactory(false)
	ctx := NewContext(factory)

	_, err := ctx.AdapterFor(userClass, NewAnnotations("Compact"))
	require.True(t, errors.Is(err, ErrNoAdapter))
}

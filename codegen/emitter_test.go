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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullProgram(t *testing.T, nullSafe bool) *DispatchProgram {
	t.Helper()
	program, err := BuildDispatch(testDecl(nullSafe), []CandidateType{
		candidate("Box", 1, 2),
		candidate("Gap", 1, 1),
		candidate("User", 0, 1),
		candidate("Order", 0, 1),
	})
	require.NoError(t, err)
	return program
}

func TestRenderProgramShape(t *testing.T) {
	src, err := renderProgram(fullProgram(t, false))
	require.NoError(t, err)
	code := string(src)

	assert.Contains(t, code, "// Code generated by jsonadapt. DO NOT EDIT.")
	assert.Contains(t, code, "package models")
	assert.Contains(t, code, `"github.com/jsonadapt/jsonadapt"`)
	assert.Contains(t, code, "func NewAppFactory() AppFactory")
	assert.Contains(t, code, "var _ AppFactory = jsonadaptAppFactory{}")
	assert.Contains(t, code, `jsonadapt.ClassOf("example.com/demo/models", "User")`)

	// The annotation gate is the very first instruction of Create.
	createAt := strings.Index(code, ") Create(")
	gateAt := strings.Index(code, "if !annotations.IsEmpty()")
	guardAt := strings.Index(code, "typ.(jsonadapt.Parameterized)")
	require.True(t, createAt >= 0 && gateAt > createAt)
	require.True(t, guardAt > gateAt)

	// Generic group extracts the raw type once and dispatches on it.
	assert.Contains(t, code, "rawType := parameterized.RawType()")
	assert.Contains(t, code, "if rawType.Equal(jsonadaptAppFactoryBoxClass) {")
	assert.Contains(t, code, "} else if rawType.Equal(jsonadaptAppFactoryGapClass) {")
	assert.Contains(t, code, "BoxAdapter(ctx, parameterized.TypeArguments())")

	// Plain group chains in declaration order.
	assert.Contains(t, code, "if typ.Equal(jsonadaptAppFactoryUserClass) {")
	assert.Contains(t, code, "} else if typ.Equal(jsonadaptAppFactoryOrderClass) {")
	assert.Contains(t, code, "jsonadapt.Erase(UserAdapter(ctx))")
	assert.Contains(t, code, "jsonadapt.Erase(OrderAdapter(ctx))")
}

func TestRenderProgramGapBranchHasEmptyBody(t *testing.T) {
	src, err := renderProgram(fullProgram(t, false))
	require.NoError(t, err)
	code := string(src)

	// The branch is emitted (the raw-type comparison exists) but its
	// factory is never called.
	assert.Contains(t, code, "jsonadaptAppFactoryGapClass")
	assert.NotContains(t, code, "GapAdapter(")
}

func TestRenderProgramNullSafeWrapsEveryConstruction(t *testing.T) {
	src, err := renderProgram(fullProgram(t, true))
	require.NoError(t, err)
	code := string(src)

	// Three invoking branches (Box, User, Order), each wrapped exactly once.
	assert.Equal(t, 3, strings.Count(code, "jsonadapt.NullSafe(jsonadapt.Erase("))

	src, err = renderProgram(fullProgram(t, false))
	require.NoError(t, err)
	assert.NotContains(t, string(src), "jsonadapt.NullSafe(")
}

func TestRenderProgramIsDeterministic(t *testing.T) {
	a, err := renderProgram(fullProgram(t, true))
	require.NoError(t, err)
	b, err := renderProgram(fullProgram(t, true))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestRenderProgramOnlyPlainCandidates(t *testing.T) {
	program, err := BuildDispatch(testDecl(false), []CandidateType{
		candidate("User", 0, 1),
	})
	require.NoError(t, err)

	src, err := renderProgram(program)
	require.NoError(t, err)
	code := string(src)

	assert.NotContains(t, code, "Parameterized")
	assert.Contains(t, code, "if typ.Equal(jsonadaptAppFactoryUserClass) {")
}

func TestRenderProgramOnlyGenericCandidates(t *testing.T) {
	program, err := BuildDispatch(testDecl(false), []CandidateType{
		candidate("Box", 1, 2),
	})
	require.NoError(t, err)

	src, err := renderProgram(program)
	require.NoError(t, err)
	code := string(src)

	assert.Contains(t, code, "typ.(jsonadapt.Parameterized)")
	assert.NotContains(t, code, "typ.Equal(")
}

func TestRenderProgramEmptyTable(t *testing.T) {
	program, err := BuildDispatch(testDecl(false), nil)
	require.NoError(t, err)

	src, err := renderProgram(program)
	require.NoError(t, err)
	code := string(src)

	// Gate, then the terminal no-match; nothing else to dispatch.
	assert.Contains(t, code, "if !annotations.IsEmpty()")
	assert.NotContains(t, code, "Equal(")
}

func TestFingerprintReflectsModel(t *testing.T) {
	base := fingerprint(fullProgram(t, false))

	assert.NotEqual(t, base, fingerprint(fullProgram(t, true)))

	reordered, err := BuildDispatch(testDecl(false), []CandidateType{
		candidate("Box", 1, 2),
		candidate("Gap", 1, 1),
		candidate("Order", 0, 1),
		candidate("User", 0, 1),
	})
	require.NoError(t, err)
	assert.NotEqual(t, base, fingerprint(reordered))
}

func TestGeneratedFileName(t *testing.T) {
	assert.Equal(t, "app_factory_jsonadapt_gen.go", generatedFileName(testDecl(false)))
}

func TestWriteProgramSkipsWhenUpToDate(t *testing.T) {
	dir := t.TempDir()
	program := fullProgram(t, false)

	written, err := writeProgram(dir, program, false)
	require.NoError(t, err)
	require.True(t, written)

	// Second run with an unchanged model is a no-op.
	written, err = writeProgram(dir, program, false)
	require.NoError(t, err)
	require.False(t, written)

	// Force always rewrites.
	written, err = writeProgram(dir, program, true)
	require.NoError(t, err)
	require.True(t, written)

	// A model change invalidates the fingerprint.
	changed := fullProgram(t, true)
	written, err = writeProgram(dir, changed, false)
	require.NoError(t, err)
	require.True(t, written)

	data, err := os.ReadFile(filepath.Join(dir, generatedFileName(program.Decl)))
	require.NoError(t, err)
	assert.Contains(t, string(data), "jsonadapt.NullSafe(")
}

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
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/jsonadapt/jsonadapt"
)

// runtimePkgPath is the import path of the runtime support package the
// generated code and the recognized factory signatures refer to.
const runtimePkgPath = "github.com/jsonadapt/jsonadapt"

const (
	valueDirective   = "jsonadapt:value"
	factoryDirective = "jsonadapt:factory"
	nullSafeArg      = "nullsafe"
)

// aggregatorDecl pairs a FactoryDeclaration with the symbols needed for
// validation and reporting. Only the parser and generator see go/types;
// the builder works on the plain model.
type aggregatorDecl struct {
	Decl  FactoryDeclaration
	Named *types.Named
	Pos   token.Position
}

// packageModel is everything discovery extracts from one loaded package:
// the closed, ordered candidate set and the aggregator declarations to
// build tables for.
type packageModel struct {
	Candidates  []CandidateType
	Aggregators []aggregatorDecl
}

// directiveArgs returns the arguments of the first matching jsonadapt
// directive in the comment group, and whether one was present.
// Directives follow the //go:generate shape: no space after the slashes,
// so "// jsonadapt:value" is ordinary prose, not a marker.
func directiveArgs(doc *ast.CommentGroup, directive string) ([]string, bool) {
	if doc == nil {
		return nil, false
	}
	for _, comment := range doc.List {
		rest, ok := strings.CutPrefix(comment.Text, "//"+directive)
		if !ok {
			continue
		}
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			continue
		}
		return strings.Fields(rest), true
	}
	return nil, false
}

// parsePackage discovers marked declarations in source order and resolves
// them against the package's type information. Candidate order is the
// declaration order across the package's files, which becomes the branch
// order of every generated table.
//
// A marked value type without exactly one qualifying factory function is a
// hard error that aborts the whole build: it means upstream validation
// failed, and proceeding would produce an incomplete dispatch table.
func parsePackage(pkg *packages.Package) (*packageModel, error) {
	if pkg.Types == nil {
		return nil, fmt.Errorf("package %s has no type information", pkg.PkgPath)
	}

	model := &packageModel{}

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}
			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				doc := typeSpec.Doc
				if doc == nil {
					doc = genDecl.Doc
				}

				if _, marked := directiveArgs(doc, valueDirective); marked {
					candidate, err := resolveCandidate(pkg, typeSpec.Name.Name)
					if err != nil {
						return nil, err
					}
					model.Candidates = append(model.Candidates, candidate)
				}

				if args, marked := directiveArgs(doc, factoryDirective); marked {
					agg, err := resolveAggregator(pkg, typeSpec, args)
					if err != nil {
						return nil, err
					}
					model.Aggregators = append(model.Aggregators, agg)
				}
			}
		}
	}

	return model, nil
}

// resolveCandidate looks up a marked value type and its factory function.
func resolveCandidate(pkg *packages.Package, name string) (CandidateType, error) {
	obj := pkg.Types.Scope().Lookup(name)
	if obj == nil {
		return CandidateType{}, fmt.Errorf("marked type %s not found in package %s", name, pkg.PkgPath)
	}
	named, ok := types.Unalias(obj.Type()).(*types.Named)
	if !ok {
		return CandidateType{}, fmt.Errorf("marked type %s.%s is not a named type", pkg.PkgPath, name)
	}

	factoryName, paramCount := findFactory(pkg, named)
	if factoryName == "" {
		return CandidateType{}, fmt.Errorf(
			"no adapter factory for %s.%s: need an exported func(*jsonadapt.Context) jsonadapt.Adapter[%s] or func(*jsonadapt.Context, []jsonadapt.TypeSpec) jsonadapt.Adapter[%s]",
			pkg.PkgPath, name, name, name)
	}

	return CandidateType{
		Ident:             jsonadapt.ClassOf(pkg.PkgPath, name),
		Name:              name,
		GenericArity:      named.TypeParams().Len(),
		FactoryName:       factoryName,
		FactoryParamCount: paramCount,
	}, nil
}

// resolveAggregator validates nothing; it only extracts the declaration.
// Interface-ness and capability checks happen in the generator so their
// failures become diagnostics rather than fatal errors.
func resolveAggregator(pkg *packages.Package, typeSpec *ast.TypeSpec, args []string) (aggregatorDecl, error) {
	name := typeSpec.Name.Name
	obj := pkg.Types.Scope().Lookup(name)
	if obj == nil {
		return aggregatorDecl{}, fmt.Errorf("marked factory %s not found in package %s", name, pkg.PkgPath)
	}
	named, _ := types.Unalias(obj.Type()).(*types.Named)

	nullSafe := false
	for _, arg := range args {
		if strings.EqualFold(arg, nullSafeArg) {
			nullSafe = true
		}
	}

	return aggregatorDecl{
		Decl: FactoryDeclaration{
			PkgPath:  pkg.PkgPath,
			PkgName:  pkg.Name,
			Name:     name,
			NullSafe: nullSafe,
		},
		Named: named,
		Pos:   pkg.Fset.Position(typeSpec.Pos()),
	}, nil
}

// findFactory scans the package scope for the candidate's qualifying
// factory: an exported package-level function taking *jsonadapt.Context
// (optionally followed by []jsonadapt.TypeSpec) and returning
// jsonadapt.Adapter instantiated with exactly the candidate type. The
// first match in scope order wins.
func findFactory(pkg *packages.Package, candidate *types.Named) (string, int) {
	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		fn, ok := scope.Lookup(name).(*types.Func)
		if !ok || !fn.Exported() {
			continue
		}
		sig, ok := fn.Type().(*types.Signature)
		if !ok || sig.Recv() != nil {
			continue
		}
		paramCount, ok := factoryParams(sig)
		if !ok {
			continue
		}
		if !factoryReturns(sig, candidate) {
			continue
		}
		return name, paramCount
	}
	return "", 0
}

// factoryParams validates the parameter list and returns its length.
func factoryParams(sig *types.Signature) (int, bool) {
	params := sig.Params()
	switch params.Len() {
	case 1:
		return 1, isContextPtr(params.At(0).Type())
	case 2:
		if !isContextPtr(params.At(0).Type()) {
			return 0, false
		}
		slice, ok := types.Unalias(params.At(1).Type()).(*types.Slice)
		return 2, ok && isRuntimeNamed(slice.Elem(), "TypeSpec")
	default:
		return 0, false
	}
}

// factoryReturns checks the single result is Adapter[C] with C being the
// candidate itself, or an instantiation of it for generic candidates.
func factoryReturns(sig *types.Signature, candidate *types.Named) bool {
	results := sig.Results()
	if results.Len() != 1 {
		return false
	}
	ret, ok := types.Unalias(results.At(0).Type()).(*types.Named)
	if !ok || !isRuntimeObj(ret.Obj(), "Adapter") || ret.TypeArgs().Len() != 1 {
		return false
	}
	elem, ok := types.Unalias(ret.TypeArgs().At(0)).(*types.Named)
	if !ok {
		return false
	}
	if candidate.TypeParams().Len() == 0 {
		return elem.Obj() == candidate.Obj()
	}
	return elem.Origin().Obj() == candidate.Obj()
}

func isContextPtr(t types.Type) bool {
	ptr, ok := types.Unalias(t).(*types.Pointer)
	return ok && isRuntimeNamed(ptr.Elem(), "Context")
}

func isRuntimeNamed(t types.Type, name string) bool {
	named, ok := types.Unalias(t).(*types.Named)
	return ok && isRuntimeObj(named.Obj(), name)
}

func isRuntimeObj(obj *types.TypeName, name string) bool {
	return obj != nil && obj.Pkg() != nil && obj.Pkg().Path() == runtimePkgPath && obj.Name() == name
}

// lookupCapability resolves the jsonadapt.Factory interface through the
// package's imports. Packages declaring aggregators necessarily import the
// runtime package, since the declaration embeds the capability.
func lookupCapability(pkg *packages.Package) *types.Named {
	for _, imp := range pkg.Types.Imports() {
		if imp.Path() != runtimePkgPath {
			continue
		}
		obj, ok := imp.Scope().Lookup("Factory").(*types.TypeName)
		if !ok {
			continue
		}
		if named, ok := types.Unalias(obj.Type()).(*types.Named); ok {
			return named
		}
	}
	return nil
}

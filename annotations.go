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

import mapset "github.com/deckarep/golang-set/v2"

// Annotation marks a request site with a qualifier, e.g. "Compact" or
// "ISO8601". Generated dispatch tables only serve un-annotated requests;
// annotated usages are expected to be handled by a more specific factory.
type Annotation string

// Annotations is the set of markers attached to a dispatch request.
// The zero value is the empty set.
type Annotations struct {
	set mapset.Set[Annotation]
}

// NewAnnotations returns the set containing the given markers.
func NewAnnotations(marks ...Annotation) Annotations {
	return Annotations{set: mapset.NewThreadUnsafeSet(marks...)}
}

// IsEmpty reports whether no markers are attached.
func (a Annotations) IsEmpty() bool {
	return a.set == nil || a.set.Cardinality() == 0
}

// Contains reports whether the marker is attached.
func (a Annotations) Contains(mark Annotation) bool {
	return a.set != nil && a.set.Contains(mark)
}

func (a Annotations) String() string {
	if a.set == nil {
		return "Set{}"
	}
	return a.set.String()
}

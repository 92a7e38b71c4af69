// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package libref parses the link-reference strings a module may export to its
// consumers. Three forms exist:
//
//   - ":name" points at another module in the same package
//   - "//package:module" points at a module in a named external package
//   - anything else non-empty is a literal linker flag used verbatim
//
// A string that starts like a local or external reference but does not match
// the form exactly is a hard parse error, never a literal.
package libref

import (
	"fmt"
	"regexp"
)

var ErrInvalidReference = fmt.Errorf("invalid library reference")

var (
	localRe    = regexp.MustCompile(`^:([^:]+)$`)
	externalRe = regexp.MustCompile(`^//([^/:]+):([^/:]+)$`)
)

// Reference is one exported link reference. The concrete type is one of
// Literal, Local, or External.
type Reference interface {
	isReference()
	String() string
}

// Literal is an opaque linker flag passed through to the consumer unchanged.
type Literal struct {
	Flag string
}

func (Literal) isReference() {}

func (l Literal) String() string {
	return l.Flag
}

// Local names a module inside the same package as the referrer.
type Local struct {
	Module string
}

func (Local) isReference() {}

func (l Local) String() string {
	return ":" + l.Module
}

// External names a module inside another package.
type External struct {
	Package string
	Module  string
}

func (External) isReference() {}

func (e External) String() string {
	return fmt.Sprintf("//%s:%s", e.Package, e.Module)
}

func Parse(ref string) (Reference, error) {
	switch {
	case ref == "":
		return nil, fmt.Errorf("%w: reference must not be empty", ErrInvalidReference)
	case len(ref) >= 2 && ref[:2] == "//":
		m := externalRe.FindStringSubmatch(ref)
		if m == nil {
			return nil, fmt.Errorf("%w: %q must have the form //package:module", ErrInvalidReference, ref)
		}
		return External{Package: m[1], Module: m[2]}, nil
	case ref[0] == ':':
		m := localRe.FindStringSubmatch(ref)
		if m == nil {
			return nil, fmt.Errorf("%w: %q must have the form :module", ErrInvalidReference, ref)
		}
		return Local{Module: m[1]}, nil
	default:
		return Literal{Flag: ref}, nil
	}
}

// ParseAll parses every reference in refs, failing on the first malformed one.
func ParseAll(refs []string) ([]Reference, error) {
	parsed := make([]Reference, 0, len(refs))
	for _, r := range refs {
		ref, err := Parse(r)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, ref)
	}
	return parsed, nil
}

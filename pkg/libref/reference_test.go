// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package libref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		ref  string
		want Reference
	}{
		{"-lfoo", Literal{Flag: "-lfoo"}},
		{"-L/opt/libs -lfoo", Literal{Flag: "-L/opt/libs -lfoo"}},
		{":foo", Local{Module: "foo"}},
		{"//bar:baz", External{Package: "bar", Module: "baz"}},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := Parse(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ref, got.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"",
		":",
		":foo:bar",
		"//foo",
		"//foo:",
		"//:bar",
		"//foo:ba:r",
		"//foo:/bar",
		"//fo/o:bar",
	}

	for _, ref := range tests {
		t.Run(ref, func(t *testing.T) {
			_, err := Parse(ref)
			assert.ErrorIs(t, err, ErrInvalidReference)
		})
	}
}

func TestParseAll(t *testing.T) {
	refs, err := ParseAll([]string{"-landroid", ":util"})
	require.NoError(t, err)
	assert.Equal(t, []Reference{Literal{Flag: "-landroid"}, Local{Module: "util"}}, refs)

	_, err = ParseAll([]string{"-landroid", ":no:pe"})
	assert.ErrorIs(t, err, ErrInvalidReference)
}

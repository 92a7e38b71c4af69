// Copyright (c) 2017-2026 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package prebuilt

import (
	"fmt"
	"strings"
)

// Rejection records why one variant was excluded during resolution.
type Rejection struct {
	Directory string
	Reason    string
}

// NoMatchingLibraryError reports that none of a module's variants is
// compatible with the requirement. Rejections are sorted by variant
// directory name so the output is reproducible.
type NoMatchingLibraryError struct {
	Module     string
	Rejections []Rejection
}

func (e *NoMatchingLibraryError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "no compatible library found for %s. Rejected the following libraries:", e.Module)
	for _, r := range e.Rejections {
		fmt.Fprintf(&b, "\n    %s: %s", r.Directory, r.Reason)
	}
	return b.String()
}

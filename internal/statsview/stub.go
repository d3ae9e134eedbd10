// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

//go:build !statsview
// +build !statsview

package statsview

import (
	"io"
)

// Launch does nothing without the statsview build tag.
func Launch(output io.Writer) {
	io.WriteString(output, "stats server not available: rebuild with -tags statsview\n")
}

// Available returns false without the statsview build tag.
func Available() bool {
	return false
}

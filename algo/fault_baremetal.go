//go:build baremetal

package algo

import _ "unsafe" // for go:linkname

// The linker script provides _abort, an undefined-instruction stub the
// debugger observes as a hard fault.
//
//go:linkname abort _abort
func abort()

func fault() {
	abort()
	for {
	}
}

package algo

import "errors"

// ErrFault is the panic value raised by Fault on hosted builds, where a test
// harness stands in for the debugger's fault vector.
var ErrFault = errors.New("flashalgo: host contract violation")

// Fault halts the algorithm deterministically. On target hardware it aborts
// into a fault the debugger observes; on hosted builds it panics with
// ErrFault. It never returns.
func Fault() {
	fault()
	for {
	}
}

// TrapOnPanic routes a panic out of algorithm code into Fault so that no
// unwind ever crosses the entry-point ABI. The generated entry points defer
// it when the manifest enables the panicHandler feature.
func TrapOnPanic() {
	if r := recover(); r != nil {
		fault()
	}
}

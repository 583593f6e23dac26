package compute

import "context"

// Backend runs independent row computations. fn must only touch state owned
// by its row.
type Backend interface {
	Name() string
	Available() bool
	Rows(ctx context.Context, n int, fn func(row int)) error
	Cleanup()
}

var activeBackend Backend

func init() {
	activeBackend = AutoSelectBackend(0)
}

func SetBackend(b Backend) {
	if activeBackend != nil {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

func GetBackend() Backend {
	return activeBackend
}

// AutoSelectBackend returns a CPU pool with the given worker count (0 means
// one per CPU), or the serial backend on single-core machines.
func AutoSelectBackend(workers int) Backend {
	cpu := NewCPUBackend(workers)
	if cpu.Available() {
		return cpu
	}
	return NewSerialBackend()
}

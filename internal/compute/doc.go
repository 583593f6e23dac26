// Package compute provides the row-parallel execution backends used to build
// escape matrices and blur passes.
//
// The package automatically selects the best available backend:
//
//   - CPU: errgroup worker pool bounded by runtime.NumCPU
//   - Serial: single goroutine, used on one-core machines and in tests
//
// # Usage
//
//	backend := compute.GetBackend()
//	err := backend.Rows(ctx, height, func(row int) { ... })
//
// Rows are handed out in small chunks so rows near the set boundary, which
// iterate to the budget, do not serialize behind one worker. The context is
// checked before every row; a cancelled frame returns ctx.Err().
package compute

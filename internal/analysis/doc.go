// Package analysis summarizes rendered frames.
//
//   - [NewHistogram]: distribution of escape values over a matrix
//   - [Summarize]: bounded share and escape range of a matrix
//   - [Timings]: frame time statistics for benchmarks
//   - [ExponentSweep]: how the bounded share changes with the exponent
//
// # Benchmarks
//
//	samples := make([]time.Duration, 0, n)
//	for i := 0; i < n; i++ {
//	    f, _ := rctx.RenderFrame(ctx, vp, params, opts)
//	    samples = append(samples, f.Elapsed)
//	}
//	stats := analysis.Timings(samples)
package analysis

// Package benchman is a scoped stopwatch for old fashioned one-shot
// benchmarks, as opposed to statistical benchmarks.
//
// A BenchMan hands out stopwatches tied to a tag. Each stopwatch records its
// elapsed time exactly once when it is stopped, usually by deferring Stop at
// the top of the measured scope:
//
//	bm := benchman.New("bm_tag")
//	func() {
//		defer bm.Stopwatch("sw_tag").Stop()
//		for i := 1; i < 10; i++ {
//			sum += i
//		}
//	}()
//	fmt.Print(bm)
//
// Results accumulate per tag across any number of goroutines. Tags are
// reported in the order they were first requested, and tags which have not
// yet recorded a sample are left out of the report.
package benchman

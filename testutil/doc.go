// Package testutil provides testing utilities for rankgo.
//
// This package is intended for use in tests and benchmarks only. It provides
// deterministic candidate sources so match behaviour can be exercised without
// a real query-evaluation pipeline:
//
//	src := testutil.NewPairSource().
//	    Append(1, 100).
//	    Append(2, 50)
//	mset, err := enq.Run(ctx, src)
package testutil

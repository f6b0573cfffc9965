// Package async runs a function in its own goroutine and hands back a Future for
// its result.
//
//	future := async.Async(ctx, req, record)
//
//	// Do other work...
//
//	res, err := future.Await()
//
// AwaitWithTimeout bounds the wait without cancelling the computation:
//
//	res, err := future.AwaitWithTimeout(50 * time.Millisecond)
//	if errors.Is(err, async.ErrTimeout) {
//		// still running
//	}
//
// WaitAll collects the results of several futures, returning the first error seen:
//
//	results, err := async.WaitAll(f1, f2, f3)
//
// If ctx is already cancelled when Async is called, fn is not run and the future
// completes with ctx.Err(). Callers that want work to outlive a request should pass
// context.WithoutCancel(ctx).
package async

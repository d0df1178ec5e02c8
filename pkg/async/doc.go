// Package async provides a generic Future that settles exactly once.
//
// A Future can be settled by a background goroutine started with Async, or by any caller
// holding it through Resolve. The second form makes it usable as a shared in-flight cache
// cell: the first requester stores an unsettled future under a key and performs the work,
// later requesters find the same future and wait on it.
//
//	f := async.NewFuture[string]()
//	go func() {
//		data, err := os.ReadFile(path)
//		f.Resolve(string(data), err)
//	}()
//	src, err := f.Await()
//
// Running work in the background:
//
//	future := async.Async(ctx, 123, fetchUser)
//	user, err := future.AwaitWithTimeout(50 * time.Millisecond)
//	if errors.Is(err, async.ErrTimeout) {
//		log.Println("operation timed out")
//	}
//
// # Errors
//
//   - ErrTimeout: returned when AwaitWithTimeout exceeds its duration
//   - ErrNoFutures: returned when AwaitAny is called with no futures
package async

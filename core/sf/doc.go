// Package sf provides a generic single-flight mechanism for deduplicating
// concurrent function calls with the same key.
//
// If multiple goroutines call [Singleflight.Do] with the same key
// concurrently, only the first call executes the function; the others block
// until it completes and receive the same result. The evict package uses it
// to load a missing key at most once per burst of concurrent misses.
//
//	loads := sf.New[*User]()
//	user, _, err := loads.Do("user:123", func() (*User, error) {
//	    return db.GetUser(ctx, "123")
//	})
package sf

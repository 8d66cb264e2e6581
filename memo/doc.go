// Package memo caches function results by their arguments.
//
// Memoizing is a promise about the function: the same arguments always give
// the same result and calling it has no side effect worth repeating. Under
// that promise a result stays valid for the life of the process, so the
// cache never evicts and never expires.
//
// Keys are built from the call's arguments. Comparable values key by value,
// other fmt.Stringer values key by their type and String(), and anything else is
// rejected with ErrUnhashableArgument. Named arguments are sorted by name.
//
// Float arguments follow ==, so -0 and +0 share an entry. A NaN argument
// keys as one entry per float type. NaN nested inside a struct or array
// never equals itself: such calls always recompute and each adds an
// entry that is never read back.
//
// Failures pass through untouched and are not cached.
//
// For recursive functions the recursion must call the memoized function,
// not the raw one:
//
//	var fib func(int) (uint64, error)
//	fib = memo.Memoize1(func(n int) (uint64, error) {
//	    if n < 2 {
//	        return uint64(n), nil
//	    }
//	    a, err := fib(n - 1)
//	    if err != nil {
//	        return 0, err
//	    }
//	    b, err := fib(n - 2)
//	    if err != nil {
//	        return 0, err
//	    }
//	    return a + b, nil
//	})
//
// WARNING: Do not memoize impure functions (e.g., those depending on time, I/O, etc).
package memo

package helper

// AssertAs asserts raw to T, reporting failure instead of panicking.
func AssertAs[T any](raw any) (res T, ok bool) {
	res, ok = raw.(T)
	return
}

package pointers

// Ptr returns a pointer to v, for optional response fields built from
// non-pointer model columns.
func Ptr[T any](v T) *T { return &v }

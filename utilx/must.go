package utilx

// Must unwraps a (value, error) pair and panics with the error when it is not nil.
// Meant for package-level fixtures and test setup, e.g.
//
//	var userSchema = utilx.Must(schemax.NewJSONSchema(ctx, raw))
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

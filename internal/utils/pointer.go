package utils

// Ptr returns a pointer to a copy of v. Request types use pointers to tell an
// explicit zero apart from an unset field.
//
//	req := ai.ChatRequest{Message: "hi", Temperature: utils.Ptr(0.0)}
func Ptr[T any](v T) *T {
	return &v
}

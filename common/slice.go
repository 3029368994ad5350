package common

// PopBack removes the last element; s must not be empty.
func PopBack[T any](s []T) (T, []T) {
	return s[len(s)-1], s[:len(s)-1]
}

func Reversed[T any](s []T) []T {
	out := make([]T, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

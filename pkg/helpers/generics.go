package helpers

// SafeLastN returns the trailing lastN elements of slice, or the whole
// slice when it is shorter.
func SafeLastN[T any](slice []T, lastN int) []T {
	if len(slice) > lastN {
		return slice[len(slice)-lastN:]
	}
	return slice
}

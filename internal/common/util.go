package common

// WipeByteArray overwrites b with zeros. Used on passwords read from the
// terminal once they have been handed to the vault.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}

package test

import "math/rand/v2"

const (
	loginAlphabet    = "abcdefghijklmnopqrstuvwxyz0123456789_"
	passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!#%&*+-="
)

// RandomLogin returns a fresh lowercase login starting with prefix.
func RandomLogin(prefix string) string {
	return prefix + randomFrom(loginAlphabet, 6+rand.IntN(6))
}

// RandomPassword returns a password of n characters, or 16 when n is not
// positive.
func RandomPassword(n int) string {
	if n <= 0 {
		n = 16
	}
	return randomFrom(passwordAlphabet, n)
}

func randomFrom(alphabet string, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(buf)
}

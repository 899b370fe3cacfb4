// Package common contains shared constants and helpers used across
// parley client components.
package common

// AuthHeaderName is the HTTP header used to carry the bearer token on
// outbound API requests.
const AuthHeaderName = "Authorization"

// LoginPath is the navigation target used when the current session is
// rejected by the server.
const LoginPath = "/login"

// WipeByteArray zeroes the buffer in place. Callers use it to scrub
// password bytes once they are no longer needed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

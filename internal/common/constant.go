package common

const (
	// AuthorizationHeaderName carries the bearer token on HTTP requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token value inside the Authorization header.
	BearerPrefix = "Bearer "

	// DateLayout is the wire and storage format of quiz dates.
	DateLayout = "2006-01-02"
)

// WipeByteArray overwrites b with zeros. Used for password buffers read
// from the terminal. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

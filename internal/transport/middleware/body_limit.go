package middleware

import "net/http"

// MaxBodyBytes caps request bodies at n bytes. Reads past the cap fail and
// the handler reports 413. n <= 0 yields nil, which Chain skips.
func MaxBodyBytes(n int64) Middleware {
	if n <= 0 {
		return nil
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}

package middlewares

import "net/http"

// LimitRequestBody caps how many bytes a handler may read from the body. Reading
// past the limit fails with *http.MaxBytesError.
func (m *Middlewares) LimitRequestBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := int64(m.InternalConfig.App.RequestBodyLimitInMegabyte) << 20
		if limit > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
		}
		next.ServeHTTP(w, r)
	})
}

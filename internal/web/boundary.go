package web

import (
	"bytes"
	"log"
	"net/http"
	"runtime/debug"
)

const fallbackMessage = "Something went wrong. Please refresh the page to try again."

// bufferedWriter holds the whole response until the handler returns.
type bufferedWriter struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func (b *bufferedWriter) Header() http.Header { return b.header }

func (b *bufferedWriter) WriteHeader(status int) {
	if b.status == 0 {
		b.status = status
	}
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

// Boundary renders pages into a buffer. If the handler panics, nothing it
// wrote reaches the client and the fallback page is sent instead.
func (s *Server) Boundary(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := &bufferedWriter{header: make(http.Header)}

		panicked := func() (failed bool) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.Printf("web: render panic on %s: %v\n%s", r.URL.Path, rec, debug.Stack())
					failed = true
				}
			}()
			next.ServeHTTP(buf, r)
			return false
		}()

		if panicked {
			s.writeFallback(w)
			return
		}

		for k, v := range buf.header {
			w.Header()[k] = v
		}
		if buf.status == 0 {
			buf.status = http.StatusOK
		}
		w.WriteHeader(buf.status)
		_, _ = w.Write(buf.body.Bytes())
	})
}

func (s *Server) writeFallback(w http.ResponseWriter) {
	var out bytes.Buffer
	err := s.tpl.ExecuteTemplate(&out, "fallback", map[string]any{"Message": fallbackMessage})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusInternalServerError)
	if err != nil {
		log.Printf("web: fallback template: %v", err)
		_, _ = w.Write([]byte(fallbackMessage))
		return
	}
	_, _ = w.Write(out.Bytes())
}

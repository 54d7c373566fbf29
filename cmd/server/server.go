package server

import (
	"context"
	"net/http"
	"time"

	"example.com/socialnet/internal/logger"
	"example.com/socialnet/internal/middleware"
	"example.com/socialnet/internal/store"
)

type Server struct {
	store store.StoreInterface
}

var logg = logger.New()

// routes binds the API endpoints. Method patterns keep GET and POST on
// the same path separated without a router dependency.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.homeHandler)
	mux.HandleFunc("GET /users", s.listUsersHandler)
	mux.HandleFunc("POST /users", s.createUserHandler)
	mux.HandleFunc("GET /posts", s.listPostsHandler)
	mux.HandleFunc("POST /posts", s.createPostHandler)

	return mux
}

// handler wraps the routes with the permissive CORS policy and
// per-request correlation IDs.
func (s *Server) handler() http.Handler {
	return middleware.CORS(middleware.RequestID(s.accessLog(s.routes())))
}

// accessLog emits one structured log line per completed request.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		reqID, _ := middleware.RequestIDFromContext(r.Context())
		logg.InfoReq("http", reqID,
			r.Method+" "+r.URL.Path+" -> "+http.StatusText(rec.status)+
				" in "+time.Since(start).String())
	})
}

// statusRecorder captures the response status for access logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Run starts the HTTP server and blocks until the context is canceled,
// then shuts down gracefully.
func Run(ctx context.Context, st store.StoreInterface, addr string) {
	s := &Server{store: st}

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.handler(),
		ReadTimeout:  10 * time.Second, // prevent slowloris attacks
		WriteTimeout: 10 * time.Second,
	}

	// --- Start server in a goroutine ---
	go func() {
		logg.Info("server", "Starting HTTP server on "+addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error("server", "Server stopped unexpectedly", err)
		}
	}()

	// --- Graceful shutdown ---
	<-ctx.Done()
	logg.Info("server", "Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("server", "Error during server shutdown", err)
	} else {
		logg.Info("server", "Server stopped gracefully")
	}
}

package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/filebox/core/handler"
	"github.com/dmitrymomot/filebox/core/logger"
)

// LoggingConfig configures the request logging middleware.
type LoggingConfig struct {
	// Skip disables the middleware for matching requests.
	Skip func(ctx handler.Context) bool

	// Logger is the slog logger to use (default: slog.Default()).
	Logger *slog.Logger

	// LogLevel for successful requests (default: slog.LevelInfo).
	LogLevel slog.Level

	// SlowRequestThreshold raises slow requests to warning level
	// (default: 5s).
	SlowRequestThreshold time.Duration

	// Component name for structured logging.
	Component string
}

// Logging logs one line per completed request: method, path, status,
// bytes written, and duration. Server errors log at error level, client
// errors at warn.
func Logging[C handler.Context]() handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{})
}

// LoggingWithLogger creates a logging middleware with a custom logger.
func LoggingWithLogger[C handler.Context](log *slog.Logger) handler.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{Logger: log})
}

// LoggingWithConfig creates a request logging middleware with custom
// configuration.
func LoggingWithConfig[C handler.Context](cfg LoggingConfig) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.LogLevel == 0 {
		cfg.LogLevel = slog.LevelInfo
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}
	if cfg.Component == "" {
		cfg.Component = "http"
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			start := time.Now()
			req := ctx.Request()
			requestID, _ := GetRequestID(ctx)

			response := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				tracked, ok := w.(responseTracker)
				if !ok {
					cw := &countingWriter{ResponseWriter: w}
					w, tracked = cw, cw
				}

				err := response(w, r)
				duration := time.Since(start)

				status := tracked.Status()
				if status == 0 {
					status = http.StatusOK
				}

				attrs := []slog.Attr{
					logger.Component(cfg.Component),
					logger.Method(req.Method),
					logger.Path(req.URL.Path),
					logger.StatusCode(status),
					logger.BytesOut(tracked.BytesWritten()),
					logger.Duration(duration),
				}
				if requestID != "" {
					attrs = append(attrs, logger.RequestID(requestID))
				}
				if req.URL.RawQuery != "" {
					attrs = append(attrs, logger.Query(req.URL.RawQuery))
				}

				level := cfg.LogLevel
				switch {
				case status >= 500:
					level = slog.LevelError
					attrs = append(attrs, logger.Error(err))
				case status >= 400:
					level = slog.LevelWarn
				case duration > cfg.SlowRequestThreshold:
					level = slog.LevelWarn
					attrs = append(attrs, slog.Bool("slow_request", true))
				}

				cfg.Logger.LogAttrs(req.Context(), level, "request completed", attrs...)
				return err
			}
		}
	}
}

// responseTracker reads status and size back from a write-tracking
// writer. The router wraps every response writer in one, so the
// middleware reuses it instead of stacking a second wrapper.
type responseTracker interface {
	Status() int
	BytesWritten() int64
}

// countingWriter is the fallback tracker for plain response writers.
type countingWriter struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (cw *countingWriter) WriteHeader(status int) {
	if cw.status == 0 {
		cw.status = status
		cw.ResponseWriter.WriteHeader(status)
	}
}

func (cw *countingWriter) Write(b []byte) (int, error) {
	if cw.status == 0 {
		cw.WriteHeader(http.StatusOK)
	}
	n, err := cw.ResponseWriter.Write(b)
	cw.bytes += int64(n)
	return n, err
}

func (cw *countingWriter) Status() int { return cw.status }

func (cw *countingWriter) BytesWritten() int64 { return cw.bytes }

func (cw *countingWriter) Flush() {
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

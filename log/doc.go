// Package log provides a simple, leveled logging interface for the
// ragpipe ingestion pipeline.
//
// The pipeline's degradation model (see the embedder package) absorbs
// transient failures instead of raising them, which makes logs the only
// place where silent degradation becomes visible. Every zero-vector
// fallback after retry exhaustion is reported at warn level through this
// package.
//
// # Log Levels
//
// The package supports five log levels, in order of increasing severity:
//
//   - LogLevelDebug: Detailed debugging information for development
//   - LogLevelInfo: General informational messages about normal operation
//   - LogLevelWarn: Warning messages, including embedding degradation
//   - LogLevelError: Error messages for failures that need attention
//   - LogLevelNone: Disables all logging output
//
// # Example Usage
//
// Basic logging:
//
//	logger := log.NewDefaultLogger(log.LogLevelInfo)
//	logger.Info("ingestion starting: %d documents", len(docs))
//	logger.Warn("embedding degraded to zero vector for chunk %d", i)
//
// Custom output:
//
//	file, _ := os.OpenFile("ingest.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
//	defer file.Close()
//	logger := log.NewCustomLogger(file, log.LogLevelDebug)
//
// # golog Integration
//
// For users who prefer the `github.com/kataras/golog` library, a minimal
// wrapper is provided:
//
//	glogger := golog.New()
//	glogger.SetPrefix("[ingest] ")
//	logger := log.NewGologLogger(glogger)
//	logger.Info("collection ready")
//
// # Custom Loggers
//
// Any type implementing the four-method Logger interface can be plugged
// into the pipeline:
//
//	type CustomLogger struct{}
//
//	func (l *CustomLogger) Debug(format string, v ...any) {}
//	func (l *CustomLogger) Info(format string, v ...any)  {}
//	func (l *CustomLogger) Warn(format string, v ...any)  {}
//	func (l *CustomLogger) Error(format string, v ...any) {}
//
// # Thread Safety
//
// The DefaultLogger implementation is thread-safe and can be used
// concurrently from multiple goroutines; the underlying log.Logger from
// Go's standard library handles synchronization internally.
package log

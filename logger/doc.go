// Package logger provides structured logging for the diarize tool using
// zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields. Standard output is
// reserved for diarization results, so the default destination is stderr.
//
// # Configuration
//
//	logging:
//	  level: "warn"
//	  format: "console"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.WithComponent("runner")
//	log.Info("pipeline loaded", logger.Fields("backend", "pyannote"))
package logger

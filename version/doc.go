// Package version exposes build metadata for the diarize binary.
//
// Values are injected with -ldflags at build time:
//
//	go build -ldflags "-X github.com/kbukum/diarize/version.Version=1.2.0 \
//	    -X github.com/kbukum/diarize/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/diarize
//
// Missing values fall back to the module build info recorded by the Go
// toolchain (VCS revision, modification flag, commit time).
package version

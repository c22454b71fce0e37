// Package runner turns an audio file into speaker-attributed text.
//
// A Runner holds the credential and backend selection. Each Diarize call
// acquires a fresh pipeline from the registry, runs it once, validates the
// returned segments, formats them and optionally writes the text to a file.
// Nothing is retried and nothing is cached between calls.
package runner

// Package pyannote implements a diarization backend that talks to a pyannote
// pipeline server over HTTP.
//
// The server loads the pretrained pipeline named by Config.Model with the
// Hugging Face token sent as a bearer credential, and exposes:
//
//	GET  /health   -> 200 when ready
//	POST /diarize  -> multipart form: audio (file), model, [num|min|max]_speakers
//	                  JSON {"segments":[{"speaker_id","start_time","end_time"}],"num_speakers"}
package pyannote

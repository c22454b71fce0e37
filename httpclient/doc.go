// Package httpclient provides the HTTP client used by remote diarization
// backends: base URL resolution, bearer authentication, multipart uploads
// and typed errors classified from status codes.
//
// Requests are sent exactly once. There is no retry layer; a failed call is
// reported to the caller as is.
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "http://localhost:8388",
//	    Timeout: 5 * time.Minute,
//	    Auth:    httpclient.BearerAuth(token),
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    Path:   "/diarize",
//	    Body:   &httpclient.MultipartBody{Files: []httpclient.FileField{...}},
//	})
package httpclient

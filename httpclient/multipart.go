package httpclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"sort"
)

// MultipartBody represents a multipart/form-data request body.
// Pass it as the Body of a Request; the client sets the Content-Type
// with the boundary. Fields are written in sorted key order.
type MultipartBody struct {
	// Fields are simple key-value form fields.
	Fields map[string]string
	// Files are file upload fields.
	Files []FileField
}

// FileField represents a file to upload in a multipart request.
type FileField struct {
	// FieldName is the form field name (e.g., "audio").
	FieldName string
	// FileName is the file name sent to the server.
	FileName string
	// ContentType is the MIME type (e.g., "audio/wav"). If empty, uses application/octet-stream.
	ContentType string
	// Data is the file content. Used if Reader is nil.
	Data []byte
	// Reader is read to EOF when Data is nil, e.g. an opened audio file.
	Reader io.Reader
}

// encode returns a reader that produces the multipart body as it is read
// and the content-type header. File readers are consumed lazily, so an audio
// file is never held in memory. A failure while writing surfaces as a
// *BodyError from the reader.
func (m *MultipartBody) encode() (io.Reader, string, error) {
	pr, pw := io.Pipe()
	w := multipart.NewWriter(pw)
	contentType := w.FormDataContentType()
	go func() {
		if err := m.writeTo(w); err != nil {
			pw.CloseWithError(&BodyError{Err: err})
			return
		}
		_ = pw.Close()
	}()
	return pr, contentType, nil
}

func (m *MultipartBody) writeTo(w *multipart.Writer) error {
	keys := make([]string, 0, len(m.Fields))
	for k := range m.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, m.Fields[k]); err != nil {
			return err
		}
	}

	for _, f := range m.Files {
		var part io.Writer
		var err error

		if f.ContentType != "" {
			header := make(textproto.MIMEHeader)
			header.Set("Content-Disposition",
				`form-data; name="`+escapeQuotes(f.FieldName)+`"; filename="`+escapeQuotes(f.FileName)+`"`)
			header.Set("Content-Type", f.ContentType)
			part, err = w.CreatePart(header)
		} else {
			part, err = w.CreateFormFile(f.FieldName, f.FileName)
		}
		if err != nil {
			return err
		}

		if f.Data != nil {
			if _, err := part.Write(f.Data); err != nil {
				return err
			}
		} else if f.Reader != nil {
			if _, err := io.Copy(part, f.Reader); err != nil {
				return fmt.Errorf("read %s: %w", f.FileName, err)
			}
		}
	}

	return w.Close()
}

// BodyError reports a failure while producing a streamed request body.
type BodyError struct {
	Err error
}

func (e *BodyError) Error() string { return "encode body: " + e.Err.Error() }

func (e *BodyError) Unwrap() error { return e.Err }

// escapeQuotes replaces special characters in header values.
func escapeQuotes(s string) string {
	var buf bytes.Buffer
	for _, b := range []byte(s) {
		if b == '"' || b == '\\' {
			buf.WriteByte('\\')
		}
		buf.WriteByte(b)
	}
	return buf.String()
}

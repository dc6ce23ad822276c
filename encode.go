package routedoc

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
)

// Encoder encodes route results to a wire format.
type Encoder interface {
	ContentType() string
	Encode(w io.Writer, v any) error
}

// jsonCodec implements Encoder for JSON.
type jsonCodec struct{}

func (jsonCodec) ContentType() string { return "application/json" }

func (jsonCodec) Encode(w io.Writer, v any) error {
	return json.NewEncoder(w).Encode(v)
}

// xmlCodec implements Encoder for XML.
type xmlCodec struct{}

func (xmlCodec) ContentType() string { return "application/xml" }

func (xmlCodec) Encode(w io.Writer, v any) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(v)
}

// codecRegistry holds the response encoders. Index 0 is always JSON.
type codecRegistry struct {
	encoders []Encoder
}

func newCodecRegistry(userEncoders []Encoder) *codecRegistry {
	cr := &codecRegistry{encoders: make([]Encoder, 0, 2+len(userEncoders))}
	cr.encoders = append(cr.encoders, jsonCodec{}, xmlCodec{})
	cr.encoders = append(cr.encoders, userEncoders...)
	return cr
}

// acceptRange is one media range of an Accept header.
type acceptRange struct {
	mediaType string
	quality   float64
}

func parseAccept(accept string) []acceptRange {
	var out []acceptRange
	for part := range strings.SplitSeq(accept, ",") {
		mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		q := 1.0
		if qs, ok := params["q"]; ok {
			if parsed, err := strconv.ParseFloat(qs, 64); err == nil {
				q = parsed
			}
		}
		out = append(out, acceptRange{mediaType: mediaType, quality: q})
	}
	return out
}

// matches reports whether the range admits mediaType.
func (a acceptRange) matches(mediaType string) bool {
	if a.quality <= 0 {
		return false
	}
	if a.mediaType == "*/*" || a.mediaType == mediaType {
		return true
	}
	if prefix, ok := strings.CutSuffix(a.mediaType, "/*"); ok {
		return strings.HasPrefix(mediaType, prefix+"/")
	}
	return false
}

// accepts reports whether an Accept header admits mediaType. An empty
// header admits everything.
func accepts(accept, mediaType string) bool {
	if strings.TrimSpace(accept) == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return false
	}
	for _, a := range parseAccept(accept) {
		if a.matches(mediaType) {
			return true
		}
	}
	return false
}

// negotiate picks an encoder based on the Accept header value.
// Returns (JSON, true) for empty or */* accept values.
// Returns (nil, false) if an explicit Accept has no match.
func (cr *codecRegistry) negotiate(accept string) (Encoder, bool) {
	if accept == "" {
		return cr.encoders[0], true
	}

	var best Encoder
	bestQ := -1.0
	for _, a := range parseAccept(accept) {
		if a.quality <= bestQ || a.quality <= 0 {
			continue
		}
		for _, enc := range cr.encoders {
			if a.matches(enc.ContentType()) {
				best, bestQ = enc, a.quality
				break
			}
		}
	}
	return best, best != nil
}

// bufferedResponse holds a response until filters have run, so after
// filters can still change headers, status and body.
type bufferedResponse struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{header: make(http.Header)}
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(code int) {
	if b.status == 0 {
		b.status = code
	}
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

// reset drops status, body and content headers; other headers stay.
func (b *bufferedResponse) reset() {
	b.status = 0
	b.body.Reset()
	b.header.Del("Content-Type")
	b.header.Del("Content-Length")
}

func (b *bufferedResponse) flush(w http.ResponseWriter) error {
	for k, v := range b.header {
		w.Header()[k] = v
	}
	status := b.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, err := w.Write(b.body.Bytes())
	return err
}

// setContentType sets Content-Type unless the route already did. A
// concrete preferred type wins over the fallback.
func setContentType(w http.ResponseWriter, preferred, fallback string) {
	if w.Header().Get("Content-Type") != "" {
		return
	}
	if preferred != "" && !strings.Contains(preferred, "*") {
		w.Header().Set("Content-Type", preferred)
		return
	}
	w.Header().Set("Content-Type", fallback)
}

// render writes a route result according to the binding's dispatch options.
func (cr *codecRegistry) render(w http.ResponseWriter, r *http.Request, result any, opts DispatchOptions) error {
	if sc, ok := result.(StatusCoder); ok {
		w.WriteHeader(sc.StatusCode())
	}

	switch {
	case opts.Engine != nil:
		mv, ok := result.(ModelAndView)
		if !ok {
			if p, isPtr := result.(*ModelAndView); isPtr && p != nil {
				mv, ok = *p, true
			}
		}
		if !ok {
			return fmt.Errorf("template route returned %T, want ModelAndView", result)
		}
		setContentType(w, opts.AcceptType, "text/html; charset=utf-8")
		return opts.Engine.Render(w, mv)

	case opts.Transformer != nil:
		body, err := opts.Transformer(result)
		if err != nil {
			return err
		}
		setContentType(w, opts.AcceptType, "text/plain; charset=utf-8")
		_, err = w.Write(body)
		return err
	}

	switch v := result.(type) {
	case nil:
		return nil
	case string:
		setContentType(w, opts.AcceptType, "text/plain; charset=utf-8")
		_, err := io.WriteString(w, v)
		return err
	case []byte:
		setContentType(w, opts.AcceptType, "application/octet-stream")
		_, err := w.Write(v)
		return err
	}

	enc, ok := cr.negotiate(r.Header.Get("Accept"))
	if !ok {
		return Halt(http.StatusNotAcceptable, "")
	}
	w.Header().Set("Content-Type", enc.ContentType())
	return enc.Encode(w, result)
}

// writeErrorResponse writes an error as an RFC 9457 problem details response.
func writeErrorResponse(w http.ResponseWriter, err error) {
	status := ErrorStatus(err)

	var pd *ProblemDetail
	if !errors.As(err, &pd) {
		pd = &ProblemDetail{
			Type:   "about:blank",
			Title:  http.StatusText(status),
			Status: status,
			Detail: err.Error(),
		}
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(pd.Status)
	//nolint:errcheck,errchkjson,gosec // best-effort after WriteHeader
	json.NewEncoder(w).Encode(pd)
}

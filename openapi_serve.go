package routedoc

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"gopkg.in/yaml.v3"
)

// WriteJSON writes the document as indented JSON to w.
func (d *Document) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// WriteYAML writes the document as YAML to w.
func (d *Document) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}

// documentRoute renders the service document on every request, so routes
// declared after ServeDocs are still included.
func (s *Service) documentRoute(write func(ctx context.Context, w io.Writer) error, contentType string) Route {
	return func(w http.ResponseWriter, r *http.Request) (any, error) {
		w.Header().Set("Content-Type", contentType)
		if err := write(r.Context(), w); err != nil {
			return nil, err
		}
		return nil, nil
	}
}

func (s *Service) writeJSON(ctx context.Context, w io.Writer) error {
	doc, err := s.Document(ctx)
	if err != nil {
		return err
	}
	return doc.WriteJSON(w)
}

func (s *Service) writeYAML(ctx context.Context, w io.Writer) error {
	doc, err := s.Document(ctx)
	if err != nil {
		return err
	}
	return doc.WriteYAML(w)
}

func (s *Service) writeOpenAPI3(ctx context.Context, w io.Writer) error {
	doc, err := s.Document(ctx)
	if err != nil {
		return err
	}
	doc3, err := doc.OpenAPI3(ctx)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(doc3)
}

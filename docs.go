package routedoc

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Document asset names under the doc route.
const (
	SwaggerJSONFile = "swagger.json"
	SwaggerYAMLFile = "swagger.yaml"
	OpenAPI3File    = "openapi.json"
	docsIndexFile   = "index.html"
)

var docsEngine = NewHTMLEngine(template.Must(template.New("docs").Parse(docsHTML)))

type docsPage struct {
	Title   string
	SpecURL string
}

// DocRoute returns the route the docs UI is served at (service name + doc path).
func (s *Service) DocRoute() string { return s.cfg.docRoute() }

// ServeDocs registers the docs UI page and the document routes with the
// delegate. These routes are not part of the document.
func (s *Service) ServeDocs() error {
	root := s.DocRoute()
	page := docsPage{Title: s.cfg.Title, SpecURL: composePath(root, SwaggerJSONFile)}

	routes := []struct {
		pattern string
		route   Route
		opts    DispatchOptions
	}{
		{
			pattern: root,
			route: func(w http.ResponseWriter, _ *http.Request) (any, error) {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				return ModelAndView{Model: page, View: "docs"}, nil
			},
			opts: DispatchOptions{Engine: docsEngine},
		},
		{pattern: composePath(root, SwaggerJSONFile), route: s.documentRoute(s.writeJSON, "application/json")},
		{pattern: composePath(root, SwaggerYAMLFile), route: s.documentRoute(s.writeYAML, "application/yaml")},
		{pattern: composePath(root, OpenAPI3File), route: s.documentRoute(s.writeOpenAPI3, "application/json")},
	}

	for _, rt := range routes {
		if err := s.delegate.Route(http.MethodGet, rt.pattern, rt.route, rt.opts); err != nil {
			return err
		}
	}
	s.logger.Debug("docs served", slog.String("route", root))
	return nil
}

// uiFolders computes where assets are written and which directory is
// served statically: assets live at root + docRoute, so stripping the
// doc route from the asset folder yields the static root.
func uiFolders(root, docRoute string) (assetDir, staticRoot string) {
	assetDir = filepath.Join(root, filepath.FromSlash(docRoute))
	staticRoot = strings.TrimSuffix(assetDir, filepath.FromSlash(strings.TrimSuffix(docRoute, "/")))
	return filepath.Clean(assetDir), filepath.Clean(staticRoot)
}

// GenerateDoc assembles the document and writes it, with the docs page,
// into root + DocRoute. It returns the directory to serve statically so
// that the assets appear under DocRoute.
func (s *Service) GenerateDoc(ctx context.Context, root string) (string, error) {
	doc, err := s.Document(ctx)
	if err != nil {
		return "", err
	}

	assetDir, staticRoot := uiFolders(root, s.DocRoute())
	if err := os.MkdirAll(assetDir, 0o755); err != nil {
		return "", fmt.Errorf("create ui folder: %w", err)
	}

	var jsonBuf, yamlBuf, page bytes.Buffer
	if err := doc.WriteJSON(&jsonBuf); err != nil {
		return "", err
	}
	if err := doc.WriteYAML(&yamlBuf); err != nil {
		return "", err
	}
	err = docsEngine.Render(&page, ModelAndView{
		View:  "docs",
		Model: docsPage{Title: s.cfg.Title, SpecURL: SwaggerJSONFile},
	})
	if err != nil {
		return "", err
	}

	files := map[string][]byte{
		SwaggerJSONFile: jsonBuf.Bytes(),
		SwaggerYAMLFile: yamlBuf.Bytes(),
		docsIndexFile:   page.Bytes(),
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(assetDir, name), data, 0o644); err != nil { //nolint:gosec // public docs
			return "", fmt.Errorf("write %s: %w", name, err)
		}
	}

	s.logger.Debug("ui folder deployed",
		slog.String("assets", assetDir),
		slog.String("static_root", staticRoot),
	)
	return staticRoot, nil
}

const docsHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/@stoplight/elements/styles.min.css">
  <script src="https://unpkg.com/@stoplight/elements/web-components.min.js"></script>
</head>
<body>
  <elements-api
    apiDescriptionUrl="{{.SpecURL}}"
    router="hash"
    layout="sidebar"
  />
</body>
</html>`

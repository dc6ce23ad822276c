// Command sample demonstrates github.com/bjaus/routedoc with a small shop
// API whose routes and documentation come from the same declarations.
//
// Run:
//
//	go run ./cmd/sample
//	go run ./cmd/sample --config shop.toml
//
// Print the document:
//
//	go run ./cmd/sample --spec                     Swagger 2.0 JSON to stdout
//	go run ./cmd/sample --spec --format yaml -o swagger.yaml
//	go run ./cmd/sample --spec --openapi3          converted OpenAPI 3 JSON
//
// Then explore:
//
//	GET    http://localhost:8080/shop/doc                  docs UI
//	GET    http://localhost:8080/shop/doc/swagger.json     Swagger 2.0 document
//	GET    http://localhost:8080/shop/api/users            list users
//	POST   http://localhost:8080/shop/api/users            create user
//	GET    http://localhost:8080/shop/api/users/{id}       get user (JSON, XML or CSV)
//	DELETE http://localhost:8080/shop/api/users/{id}       delete user
//	GET    http://localhost:8080/shop/api/orders           list orders
//	POST   http://localhost:8080/shop/api/orders           place order
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	flag "github.com/spf13/pflag"

	"github.com/bjaus/routedoc"
)

var (
	configFlag   = flag.StringP("config", "c", "", "TOML configuration file")
	specFlag     = flag.Bool("spec", false, "Print the API document and exit")
	formatFlag   = flag.String("format", "json", "Document format for --spec: json or yaml")
	openapi3Flag = flag.Bool("openapi3", false, "Convert the document to OpenAPI 3 (requires --spec)")
	outFlag      = flag.StringP("output", "o", "", "Output file for --spec (default stdout)")
	addrFlag     = flag.String("addr", ":8080", "Listen address")
	uiDirFlag    = flag.String("ui-dir", "", "Write the docs UI to this directory and serve it statically")
	verboseFlag  = flag.BoolP("verbose", "v", false, "Debug logging")
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *verboseFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("sample failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := loadConfig(*configFlag)
	if err != nil {
		return err
	}

	mux := routedoc.NewMux(routedoc.WithMuxLogger(logger))
	mux.Use(routedoc.Recovery(logger), routedoc.Logger(logger))

	svc, err := routedoc.New(mux, *cfg, routedoc.WithLogger(logger))
	if err != nil {
		return err
	}

	store := newStore()
	if err := svc.Register(usersBinder{store: store}, ordersBinder{store: store}); err != nil {
		return err
	}
	svc.Exception(errNotFound, func(err error, w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusNotFound)
		//nolint:errcheck,errchkjson // best-effort after WriteHeader
		json.NewEncoder(w).Encode(routedoc.ProblemDetail{
			Type:   "about:blank",
			Title:  "Not Found",
			Status: http.StatusNotFound,
			Detail: err.Error(),
		})
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *specFlag {
		return writeSpec(ctx, svc, *formatFlag, *openapi3Flag, *outFlag)
	}

	if *uiDirFlag != "" {
		staticRoot, err := svc.GenerateDoc(ctx, *uiDirFlag)
		if err != nil {
			return err
		}
		if err := mux.Static("/", os.DirFS(staticRoot)); err != nil {
			return err
		}
	} else if err := svc.ServeDocs(); err != nil {
		return err
	}

	logger.Info("starting server",
		slog.String("addr", *addrFlag),
		slog.String("docs", svc.DocRoute()),
	)
	if err := mux.ListenAndServe(ctx, *addrFlag); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server stopped")
	return nil
}

func loadConfig(path string) (*routedoc.Config, error) {
	cfg := &routedoc.Config{
		ServiceName: "shop",
		BasePath:    "/api",
		Host:        "localhost:8080",
		Title:       "Shop API",
		Description: "Users and orders, documented from their route declarations.",
		Version:     "1.0.0",
		License:     &routedoc.License{Name: "MIT", URL: "https://opensource.org/licenses/MIT"},
	}
	if path != "" {
		loaded, err := routedoc.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func writeSpec(ctx context.Context, svc *routedoc.Service, format string, v3 bool, path string) (err error) {
	doc, err := svc.Document(ctx)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if path != "" {
		f, cerr := os.Create(path) //nolint:gosec // user-provided output path
		if cerr != nil {
			return fmt.Errorf("create output file: %w", cerr)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	if v3 {
		doc3, err := doc.OpenAPI3(ctx)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc3)
	}

	switch format {
	case "json":
		return doc.WriteJSON(w)
	case "yaml":
		return doc.WriteYAML(w)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

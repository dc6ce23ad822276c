package routedoc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
)

// OpenAPI3 converts the document to OpenAPI 3 and validates the result.
// References are resolved by round-tripping through the kin-openapi loader.
func (d *Document) OpenAPI3(ctx context.Context) (*openapi3.T, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("%w: encode document: %w", ErrAssembly, err)
	}

	var doc2 openapi2.T
	if err := json.Unmarshal(data, &doc2); err != nil {
		return nil, fmt.Errorf("%w: decode swagger 2.0: %w", ErrAssembly, err)
	}

	converted, err := openapi2conv.ToV3(&doc2)
	if err != nil {
		return nil, fmt.Errorf("%w: convert to openapi 3: %w", ErrAssembly, err)
	}

	raw, err := json.Marshal(converted)
	if err != nil {
		return nil, fmt.Errorf("%w: encode openapi 3: %w", ErrAssembly, err)
	}

	loader := &openapi3.Loader{Context: ctx}
	doc3, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: load openapi 3: %w", ErrAssembly, err)
	}
	if err := doc3.Validate(ctx); err != nil {
		return nil, fmt.Errorf("%w: validate openapi 3: %w", ErrAssembly, err)
	}
	return doc3, nil
}

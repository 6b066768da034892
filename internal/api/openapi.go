package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/swaggo/swag"
)

var (
	openAPIOnce sync.Once
	openAPIDoc  []byte
	openAPIErr  error
)

// SwaggerJSON renders the registered swagger 2.0 document.
func SwaggerJSON() (string, error) {
	return swag.ReadDoc(SwaggerInfo.InstanceName())
}

// OpenAPI3 converts the swagger document to OpenAPI 3 and validates it.
func OpenAPI3(ctx context.Context) (*openapi3.T, error) {
	raw, err := SwaggerJSON()
	if err != nil {
		return nil, fmt.Errorf("read swagger doc: %w", err)
	}

	var v2 openapi2.T
	if err := json.Unmarshal([]byte(raw), &v2); err != nil {
		return nil, fmt.Errorf("parse swagger doc: %w", err)
	}

	v3, err := openapi2conv.ToV3(&v2)
	if err != nil {
		return nil, fmt.Errorf("convert to openapi3: %w", err)
	}

	if err := v3.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi3 doc: %w", err)
	}
	return v3, nil
}

func openAPIJSON() ([]byte, error) {
	openAPIOnce.Do(func() {
		doc, err := OpenAPI3(context.Background())
		if err != nil {
			openAPIErr = err
			return
		}
		openAPIDoc, openAPIErr = json.Marshal(doc)
	})
	return openAPIDoc, openAPIErr
}

// RegisterDocsRoutes mounts /swagger/doc.json and /openapi.json.
func RegisterDocsRoutes(r chi.Router) {
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, _ *http.Request) {
		doc, err := SwaggerJSON()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	})

	r.Get("/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		doc, err := openAPIJSON()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(doc)
	})
}

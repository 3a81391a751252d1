package handler

import (
	_ "embed"
	"net/http"
)

// The OpenAPI 3 description of every route, compiled into the binary.
//
//go:embed openapi.json
var openAPISpec []byte

// HandleAPISpec serves the OpenAPI document. Point Swagger UI, Postman or a
// client generator at it.
//
// HTTP: GET /apispec_1.json
func HandleAPISpec(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(openAPISpec)
}

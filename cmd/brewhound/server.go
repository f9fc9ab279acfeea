package main

import (
	"net/http"

	"brewhound/internal/http/middleware"
	"brewhound/internal/httpapi"
	"brewhound/internal/store"
	"brewhound/internal/suggest"
)

func newHTTPHandler(cfg Config, st *store.Store, debouncer *suggest.Debouncer) http.Handler {
	api := httpapi.New(st, debouncer)

	handler := api.Routes()
	handler = middleware.RequestLogging()(handler)
	handler = middleware.Recovery()(handler)
	handler = middleware.CORS(cfg.AllowedOrigins)(handler)
	return handler
}

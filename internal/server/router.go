package server

import (
	"context"
	"net/http"

	"machcat/internal/handlers"
	applog "machcat/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")

	routes := []struct {
		pattern string
		handler http.HandlerFunc
	}{
		{"GET /healthz", handlers.Health},
		{"GET /materials", handlers.ListMaterials},
		{"GET /materials/{id}", handlers.GetMaterial},
		{"GET /validate", handlers.Validate},
	}
	for _, route := range routes {
		mux.HandleFunc(route.pattern, route.handler)
		applog.Debug(context.Background(), "route registered", "pattern", route.pattern)
	}
	return mux
}

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chathandler "github.com/solacehq/solace/backend/internal/handler/chat"
	middlewarePkg "github.com/solacehq/solace/backend/internal/middleware"
	chatservice "github.com/solacehq/solace/backend/internal/service/chat"
)

// NewRouter wires HTTP routes to the conversation engine.
func NewRouter(chatSvc *chatservice.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	chatHandler := chathandler.New(chatSvc)
	wsHandler := chathandler.NewWebSocketHandler(chatSvc)

	r.Route("/api", func(api chi.Router) {
		chatHandler.RegisterRoutes(api)
		wsHandler.RegisterWebSocketRoutes(api)
	})

	return r
}

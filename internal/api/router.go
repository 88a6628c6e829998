package api

import (
	"fmt"
	"log"
	"net/http"

	_ "github.com/rahulm-dev/inkwell/docs"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/rahulm-dev/inkwell/internal/api/handlers"
	"github.com/rahulm-dev/inkwell/internal/api/middleware"
	"github.com/rahulm-dev/inkwell/internal/config"
	"github.com/rs/cors"
)

func SetupRouter() http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(config.Envs.CorsConfig)

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	mainMux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	authMux := http.NewServeMux()
	authMux.HandleFunc("/register", handlers.RegisterUser)
	authMux.HandleFunc("/login", handlers.LoginUser)
	authMux.HandleFunc("/token/refresh", handlers.RefreshToken)
	authMux.HandleFunc("/logout", handlers.Logout)
	authMux.HandleFunc("/google/login", handlers.HandleGoogleLogin)
	authMux.HandleFunc("/google/callback", handlers.HandleGoogleCallback)

	mainMux.Handle("/api/v1/auth/",
		http.StripPrefix("/api/v1/auth", authMux),
	)

	// ---------- PROTECTED ROUTES ----------
	protectedMux := http.NewServeMux()

	protectedMux.HandleFunc("/contents", handlers.ContentCollection)
	protectedMux.HandleFunc("/contents/search", handlers.SearchContents)
	protectedMux.HandleFunc("/contents/{id}", handlers.ContentDetail)
	protectedMux.HandleFunc("/contents/{id}/document", handlers.DownloadContentDocument)
	protectedMux.HandleFunc("/documents/presign", handlers.PresignDocumentUpload)

	mainMux.Handle("/api/v1/",
		http.StripPrefix(
			"/api/v1",
			middleware.AuthMiddleware(protectedMux),
		),
	)

	log.Println("Router initialized")
	handler := c.Handler(mainMux)
	handler = middleware.Logger(handler)
	return handler
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rahulm-dev/inkwell/internal/auth"
	"github.com/rahulm-dev/inkwell/internal/config"
	"github.com/rahulm-dev/inkwell/internal/models"
	"github.com/rahulm-dev/inkwell/internal/repositories"
	"github.com/rahulm-dev/inkwell/internal/utils"
)

type contextKey string

const UserKey contextKey = "user"

// AuthMiddleware verifies the Bearer access token and loads the caller
// into the request context. Disabled accounts are rejected here so no
// handler ever sees one.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			unauthorized(w)
			return
		}

		userID, err := auth.ParseAccessToken(tokenStr, []byte(config.Envs.JWTSecret))
		if err != nil {
			unauthorized(w)
			return
		}

		var user models.User
		if err := repositories.DB.Where("id = ?", userID).First(&user).Error; err != nil {
			unauthorized(w)
			return
		}
		if !user.Active {
			unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, &user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUser returns the authenticated caller placed in the context by
// AuthMiddleware, or nil outside the protected surface.
func CurrentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(UserKey).(*models.User)
	return user
}

func unauthorized(w http.ResponseWriter) {
	utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
		Success: false,
		Message: "Unauthorized",
	})
}

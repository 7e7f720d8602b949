package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fbraintech-stack/weekboard/internal/models"
	"github.com/fbraintech-stack/weekboard/internal/utils"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	ContextKeyAuthContext ContextKey = "authContext"
)

// AuthMiddleware handles JWT authentication and sets user context
type AuthMiddleware struct {
	jwtSecret []byte
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(secret []byte) *AuthMiddleware {
	return &AuthMiddleware{jwtSecret: secret}
}

// JWTAuth verifies the bearer token and populates AuthContext in the
// request context. Every board operation is scoped to the
// authenticated user; there is no role layer.
func (m *AuthMiddleware) JWTAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := utils.ParseToken(parts[1], m.jwtSecret)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token: "+err.Error())
			return
		}

		userIDHex, ok := claims["user_id"].(string)
		if !ok {
			utils.RespondWithError(w, http.StatusUnauthorized, "User ID claim missing or invalid")
			return
		}
		email, _ := claims["email"].(string)

		userID, err := primitive.ObjectIDFromHex(userIDHex)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid user ID format in token")
			return
		}

		authContext := &models.AuthContext{UserID: userID, Email: email}

		ctx := context.WithValue(r.Context(), ContextKeyAuthContext, authContext)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// GetAuthContext retrieves the AuthContext from the request's context
func GetAuthContext(r *http.Request) (*models.AuthContext, error) {
	val := r.Context().Value(ContextKeyAuthContext)
	authContext, ok := val.(*models.AuthContext)
	if !ok || authContext == nil {
		return nil, fmt.Errorf("authentication context not found or invalid in request")
	}
	return authContext, nil
}

package middleware

import (
	"net/http"

	"github.com/atlas-rh/pointage-backend-go/internal/domain/user"
	"github.com/atlas-rh/pointage-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireElevated requires RH, Chef_Dep or Chef_Projet role
func RequireElevated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrElevatedRoleRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrElevatedRoleRequired)
			return
		}

		if !user.Role(roleStr).IsElevated() {
			response.HandleError(w, user.ErrElevatedRoleRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireRH requires RH role
func RequireRH(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrRHRoleRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrRHRoleRequired)
			return
		}

		if !user.Role(roleStr).CanInvalidate() {
			response.HandleError(w, user.ErrRHRoleRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"net/http"

	"github.com/s4ngl/iu-icems-website-sub000/internal/auth"
	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
)

func IsAdminMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims := auth.GetUserClaims(r.Context())

			if claims != nil && claims.Role() == constants.RoleAdmin {
				next.ServeHTTP(w, r)
				return
			}
			http.Error(w, "Forbidden. Need admin perms", http.StatusForbidden)
		})
	}
}

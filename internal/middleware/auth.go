package middleware

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/s4ngl/iu-icems-website-sub000/internal/auth"
	"github.com/s4ngl/iu-icems-website-sub000/internal/common"
	"github.com/s4ngl/iu-icems-website-sub000/internal/constants"
	"github.com/s4ngl/iu-icems-website-sub000/internal/db/repositories"
)

const claimsCacheTTL = 5 * time.Minute

// AuthMiddleware resolves a bearer token to member claims. The token only
// proves the email; role and account status come from the members table so a
// role change takes effect without reissuing tokens. Lookups are cached
// briefly to keep the middleware off the hot path.
func AuthMiddleware(memberRepo *repositories.MemberRepositoryGORM, cache common.CacheInterface) func(http.Handler) http.Handler {
	secret := os.Getenv("JWT_SECRET")

	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "Unauthorized. Missing bearer token", http.StatusUnauthorized)
				return
			}

			email, err := auth.ParseToken(strings.TrimPrefix(authHeader, "Bearer "), secret)
			if err != nil {
				http.Error(w, "Unauthorized. Invalid token", http.StatusUnauthorized)
				return
			}

			val, err := cache.GetOrSet("claims:"+email, claimsCacheTTL, func() (any, error) {
				member, err := memberRepo.GetByEmail(r.Context(), email)
				if err != nil {
					return nil, err
				}
				return &auth.MemberClaims{
					MemberIDValue: member.ID,
					EmailValue:    member.Email,
					RoleValue:     member.Role,
					StatusValue:   member.AccountStatus,
				}, nil
			})
			if err != nil {
				http.Error(w, "Unauthorized. Unknown member", http.StatusUnauthorized)
				return
			}

			claims, ok := val.(*auth.MemberClaims)
			if !ok {
				http.Error(w, "Unauthorized. Unknown Error", http.StatusUnauthorized)
				return
			}

			if claims.StatusValue != constants.AccountActive {
				http.Error(w, "Unauthorized. Account is not active", http.StatusUnauthorized)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

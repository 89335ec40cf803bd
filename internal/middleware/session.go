package middleware

import (
	"net/http"
	"strings"

	"github.com/pachgroup/pachsite/internal/auth"
	"github.com/pachgroup/pachsite/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=session_mocks_test.go -package=middleware_test

type sessionVerifier interface {
	Verify(token string) (*auth.Session, error)
}

// AdminGuard protects the admin pages under prefix. The login page stays public.
// Requests without a valid session are redirected to loginPath; a session cookie
// that fails verification is cleared on the way.
func AdminGuard(verifier sessionVerifier, prefix, loginPath string, secureCookies bool) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if !underPath(path, prefix) || underPath(path, loginPath) {
				next.ServeHTTP(w, r)
				return
			}

			token := auth.SessionToken(r)
			if token == "" {
				log.Tracef("admin guard: no session for [%s], redirecting to login", path)
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}

			session, err := verifier.Verify(token)
			if err != nil {
				log.Debugf("admin guard: invalid session for [%s]: %s", path, err)
				auth.ClearSessionCookie(w, r, secureCookies)
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.ContextWithSession(r.Context(), session)))
		})
	}
}

// RequireSession rejects API requests without a valid session with 401.
func RequireSession(verifier sessionVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := verifier.Verify(auth.SessionToken(r))
			if err != nil {
				log.Tracef("require session: [%s %s] unauthorized: %s", r.Method, r.URL.Path, err)
				pkg.WriteJSONError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.ContextWithSession(r.Context(), session)))
		})
	}
}

// underPath reports whether path is base itself or below it.
func underPath(path, base string) bool {
	base = strings.TrimSuffix(base, "/")
	return path == base || strings.HasPrefix(path, base+"/")
}

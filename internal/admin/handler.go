package admin

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/pachgroup/pachsite/internal/auth"
	"github.com/pachgroup/pachsite/internal/middleware"
	"github.com/pachgroup/pachsite/internal/telemetry/metrics"
	"github.com/pachgroup/pachsite/internal/telemetry/tracing"
	"github.com/pachgroup/pachsite/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=admin_test

const (
	PagesPrefix = "/admin"
	LoginPage   = "/admin/login"
)

type credentialsValidator interface {
	Validate(username, password string) bool
}

type sessionTokens interface {
	Issue(username string) (string, error)
	Verify(token string) (*auth.Session, error)
}

type Handler struct {
	admin          credentialsValidator
	tokens         sessionTokens
	pagesDir       string
	secureCookies  bool
	metricsManager *metrics.Manager
}

func NewHandler(
	admin credentialsValidator,
	tokens sessionTokens,
	pagesDir string,
	secureCookies bool,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		admin:          admin,
		tokens:         tokens,
		pagesDir:       pagesDir,
		secureCookies:  secureCookies,
		metricsManager: metricsManager,
	}
}

// SetupRoutes registers the session endpoints and the admin pages.
// A nil rateLimiter leaves login unthrottled.
func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	loginAllowedPerMin int,
	trustProxyHeaders bool,
) {
	var login http.Handler = http.HandlerFunc(handler.handleLogin)
	if rateLimiter != nil {
		// throttle credential guessing per client
		login = middleware.RateLimit(rateLimiter, "login", loginAllowedPerMin, trustProxyHeaders, handler.metricsManager)(login)
	}

	authRouter := mainRouter.PathPrefix("/api/auth").Subrouter()
	authRouter.Handle("/login", login).Methods("POST", "OPTIONS").Name("login")
	authRouter.HandleFunc("/logout", handler.handleLogout).Methods("POST", "OPTIONS").Name("logout")
	authRouter.HandleFunc("/session", handler.handleSession).Methods("GET", "OPTIONS").Name("session")
	authRouter.HandleFunc("/check", handler.handleSession).Methods("GET", "OPTIONS").Name("session-check")

	guard := middleware.AdminGuard(handler.tokens, PagesPrefix, LoginPage, handler.secureCookies)
	pages := guard(http.HandlerFunc(handler.handlePage))
	mainRouter.Handle(PagesPrefix, pages).Methods("GET", "HEAD").Name("admin-root")
	mainRouter.PathPrefix(PagesPrefix+"/").Handler(pages).Methods("GET", "HEAD").Name("admin-pages")
}

// credentials fit in far less; bounds both the JSON and the form body
const maxLoginBodyBytes = 4 << 10

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.Start(r.Context(), "adminHandler.login")
	defer span.End()

	if r.Body != nil {
		r.Body = http.MaxBytesReader(w, r.Body, maxLoginBodyBytes)
	}

	var loginReq loginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), pkg.ContentTypeJSON) {
		if err := pkg.DecodeJSON(w, r, &loginReq); err != nil {
			log.Debugf("login, unmarshal json params: %s", err)
			pkg.WriteJSONError(w, http.StatusBadRequest, "Логин и пароль обязательны")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("login failed, parse form error: %s", err)
			pkg.WriteJSONError(w, http.StatusBadRequest, "Логин и пароль обязательны")
			return
		}
		loginReq = loginRequest{
			Username: r.Form.Get("username"),
			Password: r.Form.Get("password"),
		}
	}

	if loginReq.Username == "" || loginReq.Password == "" {
		handler.countLogin("bad_request")
		pkg.WriteJSONError(w, http.StatusBadRequest, "Логин и пароль обязательны")
		return
	}

	span.SetAttributes(attribute.String("login.username", loginReq.Username))
	if !handler.admin.Validate(loginReq.Username, loginReq.Password) {
		log.Warnf("failed login attempt for user: %s", loginReq.Username)
		handler.countLogin("denied")
		pkg.WriteJSONError(w, http.StatusUnauthorized, "Неверный логин или пароль")
		return
	}

	token, err := handler.tokens.Issue(strings.TrimSpace(loginReq.Username))
	if err != nil {
		log.Errorf("login failed, issue token: %s", err)
		handler.countLogin("error")
		pkg.WriteJSONError(w, http.StatusInternalServerError, "Ошибка сервера")
		return
	}

	auth.SetSessionCookie(w, r, token, handler.secureCookies)
	handler.countLogin("ok")
	log.Printf("admin login success: %s", loginReq.Username)
	pkg.WriteJSONSuccess(w)
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, r, handler.secureCookies)
	log.Trace("admin logout")
	pkg.WriteJSONSuccess(w)
}

type sessionUser struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type sessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *sessionUser `json:"user,omitempty"`
}

func (handler *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	token := auth.SessionToken(r)
	if token == "" {
		pkg.WriteJSON(w, http.StatusUnauthorized, sessionResponse{})
		return
	}

	session, err := handler.tokens.Verify(token)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidToken) {
			log.Errorf("verify session: %s", err)
		}
		pkg.WriteJSON(w, http.StatusUnauthorized, sessionResponse{})
		return
	}

	pkg.WriteJSON(w, http.StatusOK, sessionResponse{
		Authenticated: true,
		User: &sessionUser{
			Username: session.Username,
			Role:     session.Role,
		},
	})
}

// handlePage serves the login page and the dashboard shell from the pages directory.
func (handler *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	page := "index.html"
	if r.URL.Path == LoginPage || strings.HasPrefix(r.URL.Path, LoginPage+"/") {
		page = "login.html"
	}
	http.ServeFile(w, r, filepath.Join(handler.pagesDir, page))
}

func (handler *Handler) countLogin(result string) {
	if handler.metricsManager == nil {
		return
	}
	handler.metricsManager.CounterLogins.WithLabelValues(result).Inc()
}

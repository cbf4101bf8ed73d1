package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prasetyowira/certqr/api/middleware"
	"github.com/prasetyowira/certqr/constant"
	appLogger "github.com/prasetyowira/certqr/infrastructure/logger"
)

// Handlers is the set of endpoints the router exposes
type Handlers interface {
	IssueCertificate(w http.ResponseWriter, r *http.Request)
	ListCertificates(w http.ResponseWriter, r *http.Request)
	GetCertificate(w http.ResponseWriter, r *http.Request)
	GetCertificatePage(w http.ResponseWriter, r *http.Request)
	GetCertificateQRCode(w http.ResponseWriter, r *http.Request)
}

// Router represents the application router
type Router struct {
	handler   Handlers
	router    *chi.Mux
	username  string
	password  string
	staticDir string
}

// NewRouter creates a new router. staticDir, when set, is served under /certs
// so generated pages can be previewed at the same relative paths they will be
// hosted at.
func NewRouter(handler Handlers, username, password, staticDir string) *Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger())

	return &Router{
		handler:   handler,
		router:    r,
		username:  username,
		password:  password,
		staticDir: staticDir,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() {
	appLogger.Info(constant.MsgSettingUpRoutes, appLogger.LoggerInfo{
		ContextFunction: constant.CtxRouter,
	})

	creds := map[string]string{
		r.username: r.password,
	}

	r.router.With(
		chimiddleware.BasicAuth("certqr", creds),
	).Post(constant.RouteCertificates, r.handler.IssueCertificate)

	r.router.Get(constant.RouteCertificates, r.handler.ListCertificates)
	r.router.Get(constant.RouteCertificate, r.handler.GetCertificate)
	r.router.Get(constant.RouteCertificatePage, r.handler.GetCertificatePage)
	r.router.Get(constant.RouteCertificateQRCode, r.handler.GetCertificateQRCode)

	if r.staticDir != "" {
		fileServer := http.StripPrefix(constant.RouteStaticCerts+"/", http.FileServer(http.Dir(r.staticDir)))
		r.router.Handle(constant.RouteStaticCerts+"/*", fileServer)
	}

	r.router.Get(constant.RouteHealthcheck, func(w http.ResponseWriter, req *http.Request) {
		appLogger.CtxDebug(req.Context(), constant.MsgHealthcheckRequest, appLogger.LoggerInfo{
			ContextFunction: constant.CtxRouter,
		})

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(constant.MsgHealthy))
	})
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

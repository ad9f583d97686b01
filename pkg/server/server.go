// Package server assembles the echo application: ambient middleware, health,
// metrics and the /api routes of every entity.
package server

import (
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	adminrepo "github.com/Ramsey-B/babyshop/internal/repositories/admin"
	avisrepo "github.com/Ramsey-B/babyshop/internal/repositories/avis"
	cartebancairerepo "github.com/Ramsey-B/babyshop/internal/repositories/cartebancaire"
	commanderepo "github.com/Ramsey-B/babyshop/internal/repositories/commande"
	lignecommanderepo "github.com/Ramsey-B/babyshop/internal/repositories/lignecommande"
	produitrepo "github.com/Ramsey-B/babyshop/internal/repositories/produit"
	"github.com/Ramsey-B/babyshop/pkg/database"
	"github.com/Ramsey-B/babyshop/pkg/events"
	"github.com/Ramsey-B/babyshop/pkg/health"
	"github.com/Ramsey-B/babyshop/pkg/middleware"
	"github.com/Ramsey-B/babyshop/pkg/routes/admin"
	"github.com/Ramsey-B/babyshop/pkg/routes/avis"
	"github.com/Ramsey-B/babyshop/pkg/routes/cartebancaire"
	"github.com/Ramsey-B/babyshop/pkg/routes/commande"
	"github.com/Ramsey-B/babyshop/pkg/routes/lignecommande"
	"github.com/Ramsey-B/babyshop/pkg/routes/produit"
)

// AuthMode selects how /api requests are authenticated
type AuthMode int

const (
	AuthNone AuthMode = iota
	// AuthBasic checks admin credentials against the admins table.
	AuthBasic
	// AuthBearer verifies an OIDC id token.
	AuthBearer
)

// Options configures New
type Options struct {
	ServiceName  string
	AllowOrigins []string
	Publisher    events.Publisher
	Health       *health.Checker
	Logger       ectologger.Logger

	Auth     AuthMode
	Verifier middleware.TokenVerifier
}

// Repositories are the stores behind the /api routes
type Repositories struct {
	Admins         *adminrepo.Repository
	Avis           *avisrepo.Repository
	CarteBancaires *cartebancairerepo.Repository
	Commandes      *commanderepo.Repository
	LigneCommandes *lignecommanderepo.Repository
	Produits       *produitrepo.Repository
}

// NewRepositories creates every repository on db
func NewRepositories(db database.DB, logger ectologger.Logger) *Repositories {
	return &Repositories{
		Admins:         adminrepo.NewRepository(db, logger),
		Avis:           avisrepo.NewRepository(db, logger),
		CarteBancaires: cartebancairerepo.NewRepository(db, logger),
		Commandes:      commanderepo.NewRepository(db, logger),
		LigneCommandes: lignecommanderepo.NewRepository(db, logger),
		Produits:       produitrepo.NewRepository(db, logger),
	}
}

// New builds the echo application
func New(opts Options, repos *Repositories) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.Error(opts.Logger)

	if opts.ServiceName != "" {
		e.Use(otelecho.Middleware(opts.ServiceName))
	}
	e.Use(echomiddleware.Recover())
	if len(opts.AllowOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins:  opts.AllowOrigins,
			ExposeHeaders: []string{"X-babyshopApp-alert", "X-babyshopApp-error", "X-babyshopApp-params", echo.HeaderLocation},
		}))
	}
	e.Use(middleware.Context())
	e.Use(middleware.Metrics())
	e.Use(middleware.Logger(opts.Logger))

	if opts.Health != nil {
		opts.Health.RegisterRoutes(e)
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	switch opts.Auth {
	case AuthBasic:
		api.Use(middleware.BasicAuth(opts.Logger, repos.Admins))
	case AuthBearer:
		api.Use(middleware.Authentication(opts.Logger, opts.Verifier))
	}

	publisher := opts.Publisher
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}

	admin.NewHandler(repos.Admins, publisher, opts.Logger).Register(api.Group("/admins"))
	avis.Register(api.Group("/avis"), repos.Avis, publisher, opts.Logger)
	cartebancaire.Register(api.Group("/carte-bancaires"), repos.CarteBancaires, publisher, opts.Logger)
	commande.Register(api.Group("/commandes"), repos.Commandes, publisher, opts.Logger)
	lignecommande.Register(api.Group("/ligne-commandes"), repos.LigneCommandes, publisher, opts.Logger)
	produit.NewHandler(repos.Produits, publisher, opts.Logger).Register(api.Group("/produits"))

	return e
}

package cartebancaire

import (
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	carterepo "github.com/Ramsey-B/babyshop/internal/repositories/cartebancaire"
	"github.com/Ramsey-B/babyshop/pkg/events"
	"github.com/Ramsey-B/babyshop/pkg/models"
	"github.com/Ramsey-B/babyshop/pkg/routes/rest"
)

const (
	EntityName = "carteBancaire"
	BasePath   = "/api/carte-bancaires"
)

// Register registers payment card routes
func Register(g *echo.Group, repo carterepo.CarteBancaireRepository, publisher events.Publisher, logger ectologger.Logger) {
	rest.NewResource[models.CarteBancaire](EntityName, BasePath, repo, models.CarteBancaireIdentifier, publisher, logger).Register(g)
}

package commande

import (
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	commanderepo "github.com/Ramsey-B/babyshop/internal/repositories/commande"
	"github.com/Ramsey-B/babyshop/pkg/events"
	"github.com/Ramsey-B/babyshop/pkg/models"
	"github.com/Ramsey-B/babyshop/pkg/routes/rest"
)

const (
	EntityName = "commande"
	BasePath   = "/api/commandes"
)

// Register registers order routes
func Register(g *echo.Group, repo commanderepo.CommandeRepository, publisher events.Publisher, logger ectologger.Logger) {
	rest.NewResource[models.Commande](EntityName, BasePath, repo, models.CommandeIdentifier, publisher, logger).Register(g)
}

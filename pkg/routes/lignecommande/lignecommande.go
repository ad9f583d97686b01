package lignecommande

import (
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	lignerepo "github.com/Ramsey-B/babyshop/internal/repositories/lignecommande"
	"github.com/Ramsey-B/babyshop/pkg/events"
	"github.com/Ramsey-B/babyshop/pkg/models"
	"github.com/Ramsey-B/babyshop/pkg/routes/rest"
)

const (
	EntityName = "ligneCommande"
	BasePath   = "/api/ligne-commandes"
)

// Register registers order line routes
func Register(g *echo.Group, repo lignerepo.LigneCommandeRepository, publisher events.Publisher, logger ectologger.Logger) {
	rest.NewResource[models.LigneCommande](EntityName, BasePath, repo, models.LigneCommandeIdentifier, publisher, logger).Register(g)
}

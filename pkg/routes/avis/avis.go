package avis

import (
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	avisrepo "github.com/Ramsey-B/babyshop/internal/repositories/avis"
	"github.com/Ramsey-B/babyshop/pkg/events"
	"github.com/Ramsey-B/babyshop/pkg/models"
	"github.com/Ramsey-B/babyshop/pkg/routes/rest"
)

const (
	EntityName = "avis"
	BasePath   = "/api/avis"
)

// Register registers review routes
func Register(g *echo.Group, repo avisrepo.AvisRepository, publisher events.Publisher, logger ectologger.Logger) {
	rest.NewResource[models.Avis](EntityName, BasePath, repo, models.AvisIdentifier, publisher, logger).Register(g)
}

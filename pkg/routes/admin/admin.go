package admin

import (
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	adminrepo "github.com/Ramsey-B/babyshop/internal/repositories/admin"
	"github.com/Ramsey-B/babyshop/pkg/errors"
	"github.com/Ramsey-B/babyshop/pkg/events"
	"github.com/Ramsey-B/babyshop/pkg/models"
	"github.com/Ramsey-B/babyshop/pkg/routes/rest"
	"github.com/Ramsey-B/babyshop/pkg/utils"
)

const (
	EntityName = "admin"
	BasePath   = "/api/admins"
)

// Handler serves the admin accounts. Passwords are write only.
type Handler struct {
	*rest.Resource[models.Admin]
}

// NewHandler creates a new admin handler
func NewHandler(repo adminrepo.AdminRepository, publisher events.Publisher, logger ectologger.Logger) *Handler {
	return &Handler{
		Resource: rest.NewResource[models.Admin](EntityName, BasePath, repo, models.AdminIdentifier, publisher, logger),
	}
}

// Register registers admin routes
func (h *Handler) Register(g *echo.Group) {
	g.POST("", h.Create, requirePassword)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.PATCH("/:id", h.PartialUpdate)
	g.DELETE("/:id", h.Delete)
}

// requirePassword rejects an account creation without a password. The body is
// put back for the create handler.
func requirePassword(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := utils.PeekBody[models.Admin](c)
		if err != nil {
			return err
		}
		if body.MotDePasse == nil {
			return errors.NewBadRequestAlert("A new admin needs a password", EntityName, errors.KeyValidation)
		}
		return next(c)
	}
}

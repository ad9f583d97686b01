package produit

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectolinq"
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	produitrepo "github.com/Ramsey-B/babyshop/internal/repositories/produit"
	"github.com/Ramsey-B/babyshop/pkg/events"
	"github.com/Ramsey-B/babyshop/pkg/models"
	"github.com/Ramsey-B/babyshop/pkg/routes/rest"
	"github.com/Ramsey-B/babyshop/pkg/tracing"
)

const (
	EntityName = "produit"
	BasePath   = "/api/produits"
)

// Handler serves products, filtered by criteria on list and count
type Handler struct {
	*rest.Resource[models.Produit]
	repo produitrepo.ProduitRepository
}

// NewHandler creates a new product handler
func NewHandler(repo produitrepo.ProduitRepository, publisher events.Publisher, logger ectologger.Logger) *Handler {
	return &Handler{
		Resource: rest.NewResource[models.Produit](EntityName, BasePath, repo, models.ProduitIdentifier, publisher, logger),
		repo:     repo,
	}
}

// Register registers product routes
func (h *Handler) Register(g *echo.Group) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/count", h.Count)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.PATCH("/:id", h.PartialUpdate)
	g.DELETE("/:id", h.Delete)
}

// List returns the products matching the criteria query parameters
func (h *Handler) List(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "produit_handler.List")
	defer span.End()

	criteria, err := ParseCriteria(c)
	if err != nil {
		return err
	}

	items, err := h.repo.FindByCriteria(ctx, criteria)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to list produits")
	}

	return c.JSON(http.StatusOK, rest.NonNil(items))
}

// Count returns the number of products matching the criteria query parameters
func (h *Handler) Count(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "produit_handler.Count")
	defer span.End()

	criteria, err := ParseCriteria(c)
	if err != nil {
		return err
	}

	count, err := h.repo.CountByCriteria(ctx, criteria)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to count produits")
	}

	return c.JSON(http.StatusOK, count)
}

// ParseCriteria reads the product filters from the query string, e.g.
// ?nom.contains=coton&prix.lessThanOrEqual=20&id.in=1,2
func ParseCriteria(c echo.Context) (models.ProduitCriteria, error) {
	var criteria models.ProduitCriteria

	if v := c.QueryParam("nom.contains"); v != "" {
		criteria.NomContains = &v
	}
	if v := c.QueryParam("categorie.equals"); v != "" {
		criteria.CategorieEquals = &v
	}

	var err error
	if criteria.PrixGreaterThanOrEqual, err = parseFloat(c, "prix.greaterThanOrEqual"); err != nil {
		return criteria, err
	}
	if criteria.PrixLessThanOrEqual, err = parseFloat(c, "prix.lessThanOrEqual"); err != nil {
		return criteria, err
	}

	if v := c.QueryParam("stock.greaterThan"); v != "" {
		stock, err := strconv.Atoi(v)
		if err != nil {
			return criteria, httperror.NewHTTPErrorf(http.StatusBadRequest, "invalid stock.greaterThan '%s'", v)
		}
		criteria.StockGreaterThan = &stock
	}

	if v := c.QueryParam("gestionnairesId.equals"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return criteria, httperror.NewHTTPErrorf(http.StatusBadRequest, "invalid gestionnairesId.equals '%s'", v)
		}
		criteria.GestionnairesIDEquals = &id
	}

	// id.in accepts both a comma separated list and repeated parameters
	var rawIDs []string
	for _, v := range c.QueryParams()["id.in"] {
		rawIDs = append(rawIDs, strings.Split(v, ",")...)
	}
	rawIDs = ectolinq.Filter(rawIDs, func(s string) bool { return strings.TrimSpace(s) != "" })
	for _, raw := range rawIDs {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return criteria, httperror.NewHTTPErrorf(http.StatusBadRequest, "invalid id.in '%s'", raw)
		}
		criteria.IDIn = append(criteria.IDIn, id)
	}

	return criteria, nil
}

func parseFloat(c echo.Context, name string) (*float32, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return nil, httperror.NewHTTPErrorf(http.StatusBadRequest, "invalid %s '%s'", name, v)
	}
	prix := float32(f)
	return &prix, nil
}

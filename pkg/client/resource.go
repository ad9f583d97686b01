package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Gobusters/ectolinq"

	"github.com/Ramsey-B/babyshop/pkg/models"
	"github.com/Ramsey-B/babyshop/pkg/reconcile"
)

// Resource is the data service of one entity under path (e.g. "/api/produits")
type Resource[T any] struct {
	client   *Client
	path     string
	identify reconcile.Identify[T, int64]
}

// NewResource creates the data service of an entity
func NewResource[T any](c *Client, path string, identify reconcile.Identify[T, int64]) *Resource[T] {
	return &Resource[T]{client: c, path: path, identify: identify}
}

// Query lists the entities, filtered by params when the endpoint supports it
func (r *Resource[T]) Query(ctx context.Context, params url.Values) ([]*T, error) {
	var items []*T
	if err := r.client.do(ctx, request{method: http.MethodGet, path: r.path, query: params}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Find returns the entity with id. A missing entity is an *Error with status 404.
func (r *Resource[T]) Find(ctx context.Context, id int64) (*T, error) {
	var item T
	if err := r.client.do(ctx, request{method: http.MethodGet, path: r.itemPath(id)}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Count returns the number of entities matching params
func (r *Resource[T]) Count(ctx context.Context, params url.Values) (int64, error) {
	var count int64
	if err := r.client.do(ctx, request{method: http.MethodGet, path: r.path + "/count", query: params}, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// Create posts a new entity
func (r *Resource[T]) Create(ctx context.Context, entity *T) (*T, error) {
	var created T
	if err := r.client.do(ctx, request{method: http.MethodPost, path: r.path, body: entity}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces a persisted entity
func (r *Resource[T]) Update(ctx context.Context, entity *T) (*T, error) {
	id, err := r.requireID(entity)
	if err != nil {
		return nil, err
	}

	var updated T
	if err := r.client.do(ctx, request{method: http.MethodPut, path: r.itemPath(id), body: entity}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// PartialUpdate sends entity as a merge patch: nil fields are left untouched
func (r *Resource[T]) PartialUpdate(ctx context.Context, entity *T) (*T, error) {
	id, err := r.requireID(entity)
	if err != nil {
		return nil, err
	}

	var updated T
	req := request{method: http.MethodPatch, path: r.itemPath(id), contentType: contentTypeMergePatch, body: entity}
	if err := r.client.do(ctx, req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the entity with id
func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	return r.client.do(ctx, request{method: http.MethodDelete, path: r.itemPath(id)}, nil)
}

// GetIdentifier returns the identifier of entity
func (r *Resource[T]) GetIdentifier(entity *T) (int64, bool) {
	return r.identify(entity)
}

// Compare reports whether a and b are the same record
func (r *Resource[T]) Compare(a, b *T) bool {
	return reconcile.New(r.identify).Same(a, b)
}

// AddToCollectionIfMissing appends the selected entities missing from
// collection, see reconcile.AddAllToCollectionIfMissing.
func (r *Resource[T]) AddToCollectionIfMissing(collection []*T, selected ...*T) []*T {
	return reconcile.AddAllToCollectionIfMissing(collection, r.identify, selected...)
}

func (r *Resource[T]) itemPath(id int64) string {
	return r.path + "/" + strconv.FormatInt(id, 10)
}

func (r *Resource[T]) requireID(entity *T) (int64, error) {
	if entity == nil {
		return 0, fmt.Errorf("%s: entity is nil", r.path)
	}
	id, ok := r.identify(entity)
	if !ok {
		return 0, fmt.Errorf("%s: entity has no id", r.path)
	}
	return id, nil
}

// Services groups the data services of every entity
type Services struct {
	Admins         *Resource[models.Admin]
	Avis           *Resource[models.Avis]
	CarteBancaires *Resource[models.CarteBancaire]
	Commandes      *Resource[models.Commande]
	LigneCommandes *Resource[models.LigneCommande]
	Produits       *Resource[models.Produit]
}

// NewServices creates the data service of every entity
func NewServices(c *Client) *Services {
	return &Services{
		Admins:         NewResource(c, "/api/admins", models.AdminIdentifier),
		Avis:           NewResource(c, "/api/avis", models.AvisIdentifier),
		CarteBancaires: NewResource(c, "/api/carte-bancaires", models.CarteBancaireIdentifier),
		Commandes:      NewResource(c, "/api/commandes", models.CommandeIdentifier),
		LigneCommandes: NewResource(c, "/api/ligne-commandes", models.LigneCommandeIdentifier),
		Produits:       NewResource(c, "/api/produits", models.ProduitIdentifier),
	}
}

// ProduitParams encodes product criteria as query parameters
func ProduitParams(criteria models.ProduitCriteria) url.Values {
	params := url.Values{}
	if criteria.NomContains != nil {
		params.Set("nom.contains", *criteria.NomContains)
	}
	if criteria.CategorieEquals != nil {
		params.Set("categorie.equals", *criteria.CategorieEquals)
	}
	if criteria.PrixGreaterThanOrEqual != nil {
		params.Set("prix.greaterThanOrEqual", strconv.FormatFloat(float64(*criteria.PrixGreaterThanOrEqual), 'f', -1, 32))
	}
	if criteria.PrixLessThanOrEqual != nil {
		params.Set("prix.lessThanOrEqual", strconv.FormatFloat(float64(*criteria.PrixLessThanOrEqual), 'f', -1, 32))
	}
	if criteria.StockGreaterThan != nil {
		params.Set("stock.greaterThan", strconv.Itoa(*criteria.StockGreaterThan))
	}
	if criteria.GestionnairesIDEquals != nil {
		params.Set("gestionnairesId.equals", strconv.FormatInt(*criteria.GestionnairesIDEquals, 10))
	}
	if len(criteria.IDIn) > 0 {
		params.Set("id.in", strings.Join(ectolinq.Map(criteria.IDIn, func(id int64) string {
			return strconv.FormatInt(id, 10)
		}), ","))
	}
	return params
}

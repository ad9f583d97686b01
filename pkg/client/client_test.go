package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ramsey-B/babyshop/pkg/client"
	"github.com/Ramsey-B/babyshop/pkg/database/dbtest"
	"github.com/Ramsey-B/babyshop/pkg/models"
	"github.com/Ramsey-B/babyshop/pkg/server"
)

type fixture struct {
	services *client.Services
	repos    *server.Repositories
	url      string
}

func newFixture(t *testing.T, auth server.AuthMode) *fixture {
	t.Helper()

	logger := dbtest.Logger()
	repos := server.NewRepositories(dbtest.New(t), logger)
	repos.Admins.WithHashCost(bcrypt.MinCost)

	e := server.New(server.Options{Logger: logger, Auth: auth}, repos)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	return &fixture{
		services: client.NewServices(client.NewClient(client.Config{BaseURL: srv.URL}, logger)),
		repos:    repos,
		url:      srv.URL,
	}
}

func apiError(t *testing.T, err error) *client.Error {
	t.Helper()
	var apiErr *client.Error
	require.True(t, errors.As(err, &apiErr), "expected *client.Error, got %v", err)
	return apiErr
}

func TestProduitResource_CRUD(t *testing.T) {
	f := newFixture(t, server.AuthNone)
	produits := f.services.Produits
	ctx := context.Background()

	created, err := produits.Create(ctx, &models.Produit{
		Nom:       models.String("Body coton bio"),
		Prix:      models.Float32(12.5),
		Stock:     models.Int(30),
		Categorie: models.String("vetements"),
	})
	require.NoError(t, err)
	id, ok := produits.GetIdentifier(created)
	require.True(t, ok)

	found, err := produits.Find(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Body coton bio", *found.Nom)

	found.Nom = models.String("Body coton bio 3 mois")
	updated, err := produits.Update(ctx, found)
	require.NoError(t, err)
	assert.Equal(t, "Body coton bio 3 mois", *updated.Nom)

	patched, err := produits.PartialUpdate(ctx, &models.Produit{ID: &id, Stock: models.Int(5)})
	require.NoError(t, err)
	assert.Equal(t, 5, *patched.Stock)
	assert.Equal(t, "Body coton bio 3 mois", *patched.Nom, "a merge patch keeps the fields it does not set")

	list, err := produits.Query(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, produits.Compare(created, list[0]))

	require.NoError(t, produits.Delete(ctx, id))

	_, err = produits.Find(ctx, id)
	assert.Equal(t, http.StatusNotFound, apiError(t, err).StatusCode)
}

func TestProduitResource_Criteria(t *testing.T) {
	f := newFixture(t, server.AuthNone)
	produits := f.services.Produits
	ctx := context.Background()

	for _, p := range []*models.Produit{
		{Nom: models.String("Pyjama velours"), Prix: models.Float32(18), Stock: models.Int(4), Categorie: models.String("vetements")},
		{Nom: models.String("Biberon verre"), Prix: models.Float32(9), Stock: models.Int(0), Categorie: models.String("repas")},
		{Nom: models.String("Bavoir velours"), Prix: models.Float32(6), Stock: models.Int(12), Categorie: models.String("repas")},
	} {
		_, err := produits.Create(ctx, p)
		require.NoError(t, err)
	}

	params := client.ProduitParams(models.ProduitCriteria{
		NomContains:      models.String("velours"),
		StockGreaterThan: models.Int(0),
	})
	list, err := produits.Query(ctx, params)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	count, err := produits.Count(ctx, client.ProduitParams(models.ProduitCriteria{CategorieEquals: models.String("repas")}))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = produits.Query(ctx, url.Values{"prix.lessThanOrEqual": {"cheap"}})
	assert.Equal(t, http.StatusBadRequest, apiError(t, err).StatusCode)
}

func TestResource_AlertErrors(t *testing.T) {
	f := newFixture(t, server.AuthNone)
	ctx := context.Background()

	_, err := f.services.CarteBancaires.Create(ctx, &models.CarteBancaire{
		ID:     models.Int64(3),
		Numero: models.String("4111111111111111"),
	})
	apiErr := apiError(t, err)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "idexists", apiErr.ErrorKey)
	assert.Equal(t, "carteBancaire", apiErr.EntityName)

	_, err = f.services.CarteBancaires.Update(ctx, &models.CarteBancaire{
		ID:     models.Int64(404),
		Numero: models.String("4111111111111111"),
	})
	assert.Equal(t, "idnotfound", apiError(t, err).ErrorKey)

	_, err = f.services.CarteBancaires.Update(ctx, &models.CarteBancaire{Numero: models.String("4111111111111111")})
	require.Error(t, err)
	assert.False(t, errors.As(err, new(*client.Error)), "a transient entity is rejected before any request")
}

func TestAdminResource_PasswordNeverReturned(t *testing.T) {
	f := newFixture(t, server.AuthNone)
	ctx := context.Background()

	created, err := f.services.Admins.Create(ctx, &models.Admin{
		Identifiant: models.String("nounou"),
		MotDePasse:  models.String("tres-secret"),
	})
	require.NoError(t, err)
	assert.Nil(t, created.MotDePasse)

	_, err = f.services.Admins.Create(ctx, &models.Admin{Identifiant: models.String("sans-mot-de-passe")})
	assert.Equal(t, "validation", apiError(t, err).ErrorKey)
}

func TestClient_Authorization(t *testing.T) {
	f := newFixture(t, server.AuthBasic)
	ctx := context.Background()

	_, err := f.repos.Admins.Create(ctx, &models.Admin{
		Identifiant: models.String("gerant"),
		MotDePasse:  models.String("mot-de-passe"),
	})
	require.NoError(t, err)

	_, err = f.services.Produits.Query(ctx, nil)
	assert.Equal(t, http.StatusUnauthorized, apiError(t, err).StatusCode)

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth("gerant", "mot-de-passe")
	authed := client.NewServices(client.NewClient(client.Config{
		BaseURL:       f.url,
		Authorization: req.Header.Get("Authorization"),
	}, dbtest.Logger()))

	list, err := authed.Produits.Query(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestClient_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := client.NewClient(client.Config{BaseURL: srv.URL + "/"}, dbtest.Logger())
	_, err := client.NewServices(c).Avis.Find(context.Background(), 1)

	apiErr := apiError(t, err)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
	assert.Empty(t, apiErr.ErrorKey)
}

func TestResource_AddToCollectionIfMissing(t *testing.T) {
	produits := client.NewServices(client.NewClient(client.Config{}, dbtest.Logger())).Produits

	options := []*models.Produit{{ID: models.Int64(1)}, {ID: models.Int64(2)}}
	selected := &models.Produit{ID: models.Int64(7)}

	result := produits.AddToCollectionIfMissing(options, selected, nil, &models.Produit{ID: models.Int64(2)})

	require.Len(t, result, 3)
	assert.Same(t, selected, result[2])
	assert.Len(t, options, 2)
}

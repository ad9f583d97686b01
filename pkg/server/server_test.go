package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ramsey-B/babyshop/pkg/database/dbtest"
	"github.com/Ramsey-B/babyshop/pkg/health"
	"github.com/Ramsey-B/babyshop/pkg/middleware"
	"github.com/Ramsey-B/babyshop/pkg/models"
	"github.com/Ramsey-B/babyshop/pkg/routes/rest"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	db := dbtest.New(t)
	repos := NewRepositories(db, dbtest.Logger())
	repos.Admins.WithHashCost(bcrypt.MinCost)

	return New(Options{
		Logger: dbtest.Logger(),
		Health: health.NewChecker(db, "test"),
	}, repos)
}

func do(e *echo.Echo, method, target, contentType, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestCreate_LocationAndAlert(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/produits", echo.MIMEApplicationJSON, `{"nom":"Hochet","prix":7.5}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.Produit](t, rec)
	require.NotNil(t, created.ID)
	assert.Equal(t, "/api/produits/1", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, "babyshopApp.produit.created", rec.Header().Get(rest.HeaderAlert))
	assert.Equal(t, "1", rec.Header().Get(rest.HeaderParams))
}

func TestCreate_RejectsID(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/avis", echo.MIMEApplicationJSON, `{"id":5,"note":3}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[middleware.ErrorResponse](t, rec)
	assert.Equal(t, "idexists", body.Meta["error_key"])
	assert.Equal(t, "avis", body.Meta["entity_name"])
	assert.Equal(t, "error.idexists", rec.Header().Get("X-babyshopApp-error"))
}

func TestCreate_ValidationError(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/avis", echo.MIMEApplicationJSON, `{"note":9}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/api/produits", echo.MIMEApplicationJSON, `{"prix":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "nom is required")
}

func TestUpdate_IDChecks(t *testing.T) {
	e := newTestServer(t)
	rec := do(e, http.MethodPost, "/api/carte-bancaires", echo.MIMEApplicationJSON, `{"numero":"4111111111111111"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	cases := []struct {
		name    string
		target  string
		body    string
		wantKey string
	}{
		{name: "no body id", target: "/api/carte-bancaires/1", body: `{"numero":"4111111111111111"}`, wantKey: "idnull"},
		{name: "path and body differ", target: "/api/carte-bancaires/1", body: `{"id":2,"numero":"4111111111111111"}`, wantKey: "idinvalid"},
		{name: "unknown id", target: "/api/carte-bancaires/2", body: `{"id":2,"numero":"4111111111111111"}`, wantKey: "idnotfound"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, method := range []string{http.MethodPut, http.MethodPatch} {
				rec := do(e, method, tc.target, echo.MIMEApplicationJSON, tc.body)
				assert.Equal(t, http.StatusBadRequest, rec.Code, method)
				assert.Equal(t, tc.wantKey, decode[middleware.ErrorResponse](t, rec).Meta["error_key"], method)
			}
		})
	}

	rec = do(e, http.MethodPut, "/api/carte-bancaires/abc", echo.MIMEApplicationJSON, `{"id":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPartialUpdate_MergePatch(t *testing.T) {
	e := newTestServer(t)
	rec := do(e, http.MethodPost, "/api/commandes", echo.MIMEApplicationJSON, `{"statut":"EN_ATTENTE","montantTotal":42}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(e, http.MethodPatch, "/api/commandes/1", "application/merge-patch+json", `{"id":1,"statut":"LIVREE"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	patched := decode[models.Commande](t, rec)
	assert.Equal(t, models.StatutLivree, *patched.Statut)
	assert.Equal(t, float32(42), *patched.MontantTotal)
	assert.Equal(t, "babyshopApp.commande.updated", rec.Header().Get(rest.HeaderAlert))

	rec = do(e, http.MethodPatch, "/api/commandes/1", "application/merge-patch+json", `{"id":1,"statut":"PERDUE"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListGetDelete(t *testing.T) {
	e := newTestServer(t)
	for _, body := range []string{`{"quantite":1}`, `{"quantite":2}`} {
		rec := do(e, http.MethodPost, "/api/ligne-commandes", echo.MIMEApplicationJSON, body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := do(e, http.MethodGet, "/api/ligne-commandes", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]models.LigneCommande](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), *list[0].ID)
	assert.Equal(t, int64(2), *list[1].ID)

	rec = do(e, http.MethodDelete, "/api/ligne-commandes/1", "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "babyshopApp.ligneCommande.deleted", rec.Header().Get(rest.HeaderAlert))

	rec = do(e, http.MethodGet, "/api/ligne-commandes/1", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodGet, "/api/avis", "", "")
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestAdmins_PasswordWriteOnly(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/admins", echo.MIMEApplicationJSON, `{"identifiant":"papa","motDePasse":"biberon-du-soir"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "motDePasse")

	rec = do(e, http.MethodGet, "/api/admins/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "biberon")

	rec = do(e, http.MethodPost, "/api/admins", echo.MIMEApplicationJSON, `{"identifiant":"maman"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation", decode[middleware.ErrorResponse](t, rec).Meta["error_key"])
}

func TestProduits_CriteriaAndCount(t *testing.T) {
	e := newTestServer(t)
	rec := do(e, http.MethodPost, "/api/admins", echo.MIMEApplicationJSON, `{"identifiant":"gerante","motDePasse":"tres-secret"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	for _, body := range []string{
		`{"nom":"Couverture polaire","prix":25,"stock":3,"categorie":"sommeil","gestionnaires":[{"id":1}]}`,
		`{"nom":"Veilleuse","prix":15,"stock":0,"categorie":"sommeil"}`,
		`{"nom":"Tasse","prix":4,"stock":9,"categorie":"repas"}`,
	} {
		rec := do(e, http.MethodPost, "/api/produits", echo.MIMEApplicationJSON, body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	cases := []struct {
		query string
		want  int
	}{
		{query: "", want: 3},
		{query: "categorie.equals=sommeil", want: 2},
		{query: "categorie.equals=sommeil&stock.greaterThan=0", want: 1},
		{query: "prix.greaterThanOrEqual=5&prix.lessThanOrEqual=20", want: 1},
		{query: "nom.contains=VEIL", want: 1},
		{query: "gestionnairesId.equals=1", want: 1},
		{query: "id.in=1,3", want: 2},
		{query: "id.in=1&id.in=2", want: 2},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			rec := do(e, http.MethodGet, "/api/produits?"+tc.query, "", "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Len(t, decode[[]models.Produit](t, rec), tc.want)

			rec = do(e, http.MethodGet, "/api/produits/count?"+tc.query, "", "")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, int64(tc.want), decode[int64](t, rec))
		})
	}

	rec = do(e, http.MethodGet, "/api/produits?stock.greaterThan=many", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodGet, "/health/live", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	do(e, http.MethodGet, "/api/avis", "", "")
	rec = do(e, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

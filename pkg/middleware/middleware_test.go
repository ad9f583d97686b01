package middleware

import (
	stdcontext "context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	adminrepo "github.com/Ramsey-B/babyshop/internal/repositories/admin"
	"github.com/Ramsey-B/babyshop/pkg/context"
	"github.com/Ramsey-B/babyshop/pkg/database/dbtest"
	apperrors "github.com/Ramsey-B/babyshop/pkg/errors"
	"github.com/Ramsey-B/babyshop/pkg/metrics"
	"github.com/Ramsey-B/babyshop/pkg/models"
)

func silentLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(ectologger.EctoLogMessage) {})
}

func newServer(handler echo.HandlerFunc, mw ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = Error(silentLogger())
	e.Use(Context())
	e.Use(mw...)
	e.GET("/test", handler)
	return e
}

func serve(e *echo.Echo, req *http.Request) (*httptest.ResponseRecorder, ErrorResponse) {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestContext_RequestID(t *testing.T) {
	var seen string
	e := newServer(func(c echo.Context) error {
		seen = context.GetRequestID(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-1")
	rec, _ := serve(e, req)
	assert.Equal(t, "req-1", seen)
	assert.Equal(t, "req-1", rec.Header().Get(echo.HeaderXRequestID))

	rec, _ = serve(e, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(echo.HeaderXRequestID))
}

func TestError_Rendering(t *testing.T) {
	cases := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
		wantKey     any
	}{
		{name: "alert", err: apperrors.NewBadRequestAlert("Invalid ID", "produit", apperrors.KeyIDInvalid), wantCode: http.StatusBadRequest, wantMessage: "Invalid ID", wantKey: "idinvalid"},
		{name: "http error", err: httperror.NewHTTPError(http.StatusNotFound, "produit not found"), wantCode: http.StatusNotFound},
		{name: "echo error", err: echo.NewHTTPError(http.StatusUnauthorized, "missing bearer"), wantCode: http.StatusUnauthorized, wantMessage: "missing bearer"},
		{name: "plain error", err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantMessage: "Internal Server Error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newServer(func(c echo.Context) error { return tc.err })

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set(echo.HeaderXRequestID, "req-err")
			rec, body := serve(e, req)

			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, "req-err", body.RequestID)
			if tc.wantMessage != "" {
				assert.Equal(t, tc.wantMessage, body.Message)
			}
			if tc.wantKey != nil {
				assert.Equal(t, tc.wantKey, body.Meta["error_key"])
				assert.Equal(t, "produit", body.Meta["entity_name"])
				assert.Equal(t, "error.idinvalid", rec.Header().Get("X-babyshopApp-error"))
			}
		})
	}
}

func TestAuthentication(t *testing.T) {
	verify := func(_ stdcontext.Context, raw string) (*UserClaims, error) {
		if raw != "good-token" {
			return nil, errors.New("bad signature")
		}
		return &UserClaims{Sub: "user-1", Email: "maman@babyshop.test"}, nil
	}

	var userID, email string
	e := newServer(func(c echo.Context) error {
		userID = context.GetUserID(c.Request().Context())
		email = context.GetUserEmail(c.Request().Context())
		return c.NoContent(http.StatusOK)
	}, Authentication(silentLogger(), verify))

	rec, body := serve(e, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "missing bearer", body.Message)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer forged")
	rec, _ = serve(e, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer good-token")
	rec, _ = serve(e, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "maman@babyshop.test", email)
}

func TestBasicAuth(t *testing.T) {
	repo := adminrepo.NewRepository(dbtest.New(t), silentLogger()).WithHashCost(bcrypt.MinCost)
	admin, err := repo.Create(stdcontext.Background(), &models.Admin{
		Identifiant: models.String("gerant"),
		MotDePasse:  models.String("mot-de-passe"),
	})
	require.NoError(t, err)

	var userID string
	e := newServer(func(c echo.Context) error {
		userID = context.GetUserID(c.Request().Context())
		return c.NoContent(http.StatusOK)
	}, BasicAuth(silentLogger(), repo))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.SetBasicAuth("gerant", "wrong")
	rec, _ := serve(e, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	req.SetBasicAuth("gerant", "mot-de-passe")
	rec, _ = serve(e, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, userID)
	assert.Equal(t, *admin.ID, mustParseInt(t, userID))
}

func TestMetrics(t *testing.T) {
	e := newServer(func(c echo.Context) error { return c.NoContent(http.StatusAccepted) }, Metrics())
	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/test", "202")
	before := testutil.ToFloat64(counter)

	rec, _ := serve(e, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func mustParseInt(t *testing.T, s string) int64 {
	t.Helper()
	var v int64
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

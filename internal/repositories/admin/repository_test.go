package admin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ramsey-B/babyshop/pkg/database/dbtest"
	"github.com/Ramsey-B/babyshop/pkg/models"
)

func newTestRepository(t *testing.T) *Repository {
	return NewRepository(dbtest.New(t), dbtest.Logger()).WithHashCost(bcrypt.MinCost)
}

func TestAdminRepository_CRUD(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Admin{
		Identifiant: models.String("maman-ours"),
		MotDePasse:  models.String("secret-password"),
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	require.NotNil(t, created.ID)
	assert.Equal(t, "maman-ours", *created.Identifiant)
	assert.Nil(t, created.MotDePasse, "password must never be returned")

	exists, err := repo.ExistsByID(ctx, *created.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	updated, err := repo.Update(ctx, &models.Admin{ID: created.ID, Identifiant: models.String("papa-ours")})
	require.NoError(t, err)
	assert.Equal(t, "papa-ours", *updated.Identifiant)

	// a nil password on update keeps the stored hash
	found, err := repo.CheckPassword(ctx, "papa-ours", "secret-password")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, *created.ID, *found.ID)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.Delete(ctx, *created.ID))

	gone, err := repo.FindOne(ctx, *created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	exists, err = repo.ExistsByID(ctx, *created.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAdminRepository_PartialUpdate(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Admin{
		Identifiant: models.String("bebe-ours"),
		MotDePasse:  models.String("first-password"),
	})
	require.NoError(t, err)

	patched, err := repo.PartialUpdate(ctx, &models.Admin{ID: created.ID, MotDePasse: models.String("second-password")})
	require.NoError(t, err)
	require.NotNil(t, patched)
	assert.Equal(t, "bebe-ours", *patched.Identifiant)

	ok, err := repo.CheckPassword(ctx, "bebe-ours", "second-password")
	require.NoError(t, err)
	assert.NotNil(t, ok)

	old, err := repo.CheckPassword(ctx, "bebe-ours", "first-password")
	require.NoError(t, err)
	assert.Nil(t, old)

	missing, err := repo.PartialUpdate(ctx, &models.Admin{ID: models.Int64(9999), Identifiant: models.String("x")})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAdminRepository_UpdateMissing(t *testing.T) {
	repo := newTestRepository(t)

	result, err := repo.Update(context.Background(), &models.Admin{ID: models.Int64(42), Identifiant: models.String("nobody")})
	require.NoError(t, err)
	assert.Nil(t, result)

	_, err = repo.Update(context.Background(), &models.Admin{Identifiant: models.String("nobody")})
	assert.Error(t, err)
}

func TestAdminRepository_CheckPasswordUnknown(t *testing.T) {
	repo := newTestRepository(t)

	found, err := repo.CheckPassword(context.Background(), "ghost", "whatever")
	require.NoError(t, err)
	assert.Nil(t, found)
}

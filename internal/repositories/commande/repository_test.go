package commande

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/babyshop/pkg/database/dbtest"
	"github.com/Ramsey-B/babyshop/pkg/models"
)

func TestCommandeRepository_CRUD(t *testing.T) {
	db := dbtest.New(t)
	repo := NewRepository(db, dbtest.Logger())
	ctx := context.Background()

	var carteID int64
	err := db.QueryRowxContext(ctx, "INSERT INTO carte_bancaires (numero) VALUES (?) RETURNING id", "4970101122334455").Scan(&carteID)
	require.NoError(t, err)

	statut := models.StatutEnAttente
	date := time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)
	created, err := repo.Create(ctx, &models.Commande{
		DateCommande:  &date,
		Statut:        &statut,
		MontantTotal:  models.Float32(59.9),
		CarteBancaire: &models.CarteBancaire{ID: &carteID},
	})
	require.NoError(t, err)
	require.NotNil(t, created.ID)
	assert.Equal(t, models.StatutEnAttente, *created.Statut)
	assert.InDelta(t, 59.9, *created.MontantTotal, 0.001)
	assert.Equal(t, carteID, *created.CarteBancaire.ID)

	livree := models.StatutLivree
	patched, err := repo.PartialUpdate(ctx, &models.Commande{ID: created.ID, Statut: &livree})
	require.NoError(t, err)
	assert.Equal(t, models.StatutLivree, *patched.Statut)
	assert.Equal(t, carteID, *patched.CarteBancaire.ID)

	second, err := repo.Create(ctx, &models.Commande{Statut: &statut})
	require.NoError(t, err)
	assert.Nil(t, second.CarteBancaire)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, *created.ID, *all[0].ID)

	require.NoError(t, repo.Delete(ctx, *created.ID))
	gone, err := repo.FindOne(ctx, *created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ramsey-B/babyshop/pkg/database/dbtest"
	"github.com/Ramsey-B/babyshop/pkg/server"
)

func TestRun(t *testing.T) {
	repos := server.NewRepositories(dbtest.New(t), dbtest.Logger())
	repos.Admins.WithHashCost(bcrypt.MinCost)
	ctx := context.Background()

	res, err := Run(ctx, repos, dbtest.Logger())
	require.NoError(t, err)

	produit, err := repos.Produits.FindOne(ctx, *res.Produit.ID)
	require.NoError(t, err)
	require.Len(t, produit.Gestionnaires, 1)
	assert.Equal(t, *res.Admin.ID, *produit.Gestionnaires[0].ID)

	ligne, err := repos.LigneCommandes.FindOne(ctx, *res.LigneCommande.ID)
	require.NoError(t, err)
	assert.Equal(t, *res.Commande.ID, *ligne.Commande.ID)
	assert.Equal(t, *res.Produit.ID, *ligne.Produit.ID)

	commande, err := repos.Commandes.FindOne(ctx, *res.Commande.ID)
	require.NoError(t, err)
	assert.Equal(t, *res.CarteBancaire.ID, *commande.CarteBancaire.ID)

	admin, err := repos.Admins.CheckPassword(ctx, "nouvelle-recrue", "premier-biberon")
	require.NoError(t, err)
	assert.NotNil(t, admin)
}

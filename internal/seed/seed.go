// Package seed fills an empty database with the sample entities, linked
// together: a manager, a card, a product, an order with one line, a review.
package seed

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/babyshop/pkg/fixtures"
	"github.com/Ramsey-B/babyshop/pkg/models"
	"github.com/Ramsey-B/babyshop/pkg/server"
)

// Result holds the created entities
type Result struct {
	Admin         *models.Admin
	CarteBancaire *models.CarteBancaire
	Produit       *models.Produit
	Commande      *models.Commande
	LigneCommande *models.LigneCommande
	Avis          *models.Avis
}

// Run creates the full samples. The ids of the samples are dropped and the
// relationships point at the created records.
func Run(ctx context.Context, repos *server.Repositories, logger ectologger.Logger) (*Result, error) {
	var (
		res Result
		err error
	)

	admin := fixtures.Admin.WithNewData()
	if res.Admin, err = repos.Admins.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to seed admin: %w", err)
	}

	carte := fixtures.CarteBancaire.WithFullData()
	carte.ID = nil
	if res.CarteBancaire, err = repos.CarteBancaires.Create(ctx, carte); err != nil {
		return nil, fmt.Errorf("failed to seed carte bancaire: %w", err)
	}

	produit := fixtures.Produit.WithFullData()
	produit.ID = nil
	produit.Gestionnaires = []*models.Admin{{ID: res.Admin.ID}}
	if res.Produit, err = repos.Produits.Create(ctx, produit); err != nil {
		return nil, fmt.Errorf("failed to seed produit: %w", err)
	}

	commande := fixtures.Commande.WithFullData()
	commande.ID = nil
	commande.CarteBancaire = &models.CarteBancaire{ID: res.CarteBancaire.ID}
	if res.Commande, err = repos.Commandes.Create(ctx, commande); err != nil {
		return nil, fmt.Errorf("failed to seed commande: %w", err)
	}

	ligne := fixtures.LigneCommande.WithFullData()
	ligne.ID = nil
	ligne.Commande = &models.Commande{ID: res.Commande.ID}
	ligne.Produit = &models.Produit{ID: res.Produit.ID}
	if res.LigneCommande, err = repos.LigneCommandes.Create(ctx, ligne); err != nil {
		return nil, fmt.Errorf("failed to seed ligne commande: %w", err)
	}

	avis := fixtures.Avis.WithFullData()
	avis.ID = nil
	avis.Produit = &models.Produit{ID: res.Produit.ID}
	if res.Avis, err = repos.Avis.Create(ctx, avis); err != nil {
		return nil, fmt.Errorf("failed to seed avis: %w", err)
	}

	logger.WithContext(ctx).WithFields(map[string]any{
		"admin_id":   *res.Admin.ID,
		"produit_id": *res.Produit.ID,
	}).Infof("Seeded sample data, sign in as '%s'", *res.Admin.Identifiant)
	return &res, nil
}

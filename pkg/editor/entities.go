package editor

import (
	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/babyshop/pkg/client"
	"github.com/Ramsey-B/babyshop/pkg/forms"
	"github.com/Ramsey-B/babyshop/pkg/models"
)

// the REST data services are the savers and option sources of the editors
var (
	_ Saver[models.Avis]    = (*client.Resource[models.Avis])(nil)
	_ Querier[models.Admin] = (*client.Resource[models.Admin])(nil)
)

type AdminEditor struct {
	*Editor[models.Admin]
}

func NewAdminEditor(admins Saver[models.Admin], logger ectologger.Logger) *AdminEditor {
	return &AdminEditor{Editor: newEditor(forms.NewAdminForm(nil), admins, models.AdminIdentifier, logger)}
}

type CarteBancaireEditor struct {
	*Editor[models.CarteBancaire]
}

func NewCarteBancaireEditor(cartes Saver[models.CarteBancaire], logger ectologger.Logger) *CarteBancaireEditor {
	return &CarteBancaireEditor{Editor: newEditor(forms.NewCarteBancaireForm(nil), cartes, models.CarteBancaireIdentifier, logger)}
}

// AvisEditor offers the products a review can be about
type AvisEditor struct {
	*Editor[models.Avis]
	Produits *Options[models.Produit]
}

func NewAvisEditor(avis Saver[models.Avis], produits Querier[models.Produit], logger ectologger.Logger) *AvisEditor {
	e := newEditor(forms.NewAvisForm(nil), avis, models.AvisIdentifier, logger)
	return &AvisEditor{
		Editor: e,
		Produits: addRelation(e, "produit", produits, models.ProduitIdentifier, func(a *models.Avis) []*models.Produit {
			return one(a.Produit)
		}),
	}
}

// CommandeEditor offers the cards an order can be paid with
type CommandeEditor struct {
	*Editor[models.Commande]
	CarteBancaires *Options[models.CarteBancaire]
}

func NewCommandeEditor(commandes Saver[models.Commande], cartes Querier[models.CarteBancaire], logger ectologger.Logger) *CommandeEditor {
	e := newEditor(forms.NewCommandeForm(nil), commandes, models.CommandeIdentifier, logger)
	return &CommandeEditor{
		Editor: e,
		CarteBancaires: addRelation(e, "carteBancaire", cartes, models.CarteBancaireIdentifier, func(c *models.Commande) []*models.CarteBancaire {
			return one(c.CarteBancaire)
		}),
	}
}

// LigneCommandeEditor offers the orders and the products of an order line
type LigneCommandeEditor struct {
	*Editor[models.LigneCommande]
	Commandes *Options[models.Commande]
	Produits  *Options[models.Produit]
}

func NewLigneCommandeEditor(lignes Saver[models.LigneCommande], commandes Querier[models.Commande], produits Querier[models.Produit], logger ectologger.Logger) *LigneCommandeEditor {
	e := newEditor(forms.NewLigneCommandeForm(nil), lignes, models.LigneCommandeIdentifier, logger)
	return &LigneCommandeEditor{
		Editor: e,
		Commandes: addRelation(e, "commande", commandes, models.CommandeIdentifier, func(l *models.LigneCommande) []*models.Commande {
			return one(l.Commande)
		}),
		Produits: addRelation(e, "produit", produits, models.ProduitIdentifier, func(l *models.LigneCommande) []*models.Produit {
			return one(l.Produit)
		}),
	}
}

// ProduitEditor offers the admins that can manage a product (multi-select)
type ProduitEditor struct {
	*Editor[models.Produit]
	Gestionnaires *Options[models.Admin]
}

func NewProduitEditor(produits Saver[models.Produit], admins Querier[models.Admin], logger ectologger.Logger) *ProduitEditor {
	e := newEditor(forms.NewProduitForm(nil), produits, models.ProduitIdentifier, logger)
	return &ProduitEditor{
		Editor: e,
		Gestionnaires: addRelation(e, "gestionnaires", admins, models.AdminIdentifier, func(p *models.Produit) []*models.Admin {
			return p.Gestionnaires
		}),
	}
}

package forms

import (
	"time"

	"github.com/Ramsey-B/babyshop/pkg/models"
)

type (
	AdminForm         = Form[models.Admin]
	AvisForm          = Form[models.Avis]
	CarteBancaireForm = Form[models.CarteBancaire]
	CommandeForm      = Form[models.Commande]
	LigneCommandeForm = Form[models.LigneCommande]
	ProduitForm       = Form[models.Produit]
)

func NewAdminForm(input *models.Admin) *AdminForm {
	return newForm(input, map[string]setter[models.Admin]{
		"identifiant": field(func(a *models.Admin, v *string) { a.Identifiant = v }),
		"motDePasse":  field(func(a *models.Admin, v *string) { a.MotDePasse = v }),
	})
}

func NewAvisForm(input *models.Avis) *AvisForm {
	return newForm(input, map[string]setter[models.Avis]{
		"note":        field(func(a *models.Avis, v *int) { a.Note = v }),
		"commentaire": field(func(a *models.Avis, v *string) { a.Commentaire = v }),
		"date":        field(func(a *models.Avis, v *time.Time) { a.Date = v }),
		"produit":     field(func(a *models.Avis, v *models.Produit) { a.Produit = v }),
	})
}

func NewCarteBancaireForm(input *models.CarteBancaire) *CarteBancaireForm {
	return newForm(input, map[string]setter[models.CarteBancaire]{
		"numero":         field(func(c *models.CarteBancaire, v *string) { c.Numero = v }),
		"titulaire":      field(func(c *models.CarteBancaire, v *string) { c.Titulaire = v }),
		"dateExpiration": field(func(c *models.CarteBancaire, v *string) { c.DateExpiration = v }),
	})
}

func NewCommandeForm(input *models.Commande) *CommandeForm {
	return newForm(input, map[string]setter[models.Commande]{
		"dateCommande":  field(func(c *models.Commande, v *time.Time) { c.DateCommande = v }),
		"statut":        field(func(c *models.Commande, v *models.StatutCommande) { c.Statut = v }),
		"montantTotal":  field(func(c *models.Commande, v *float32) { c.MontantTotal = v }),
		"carteBancaire": field(func(c *models.Commande, v *models.CarteBancaire) { c.CarteBancaire = v }),
	})
}

func NewLigneCommandeForm(input *models.LigneCommande) *LigneCommandeForm {
	return newForm(input, map[string]setter[models.LigneCommande]{
		"quantite": field(func(l *models.LigneCommande, v *int) { l.Quantite = v }),
		"prix":     field(func(l *models.LigneCommande, v *float32) { l.Prix = v }),
		"commande": field(func(l *models.LigneCommande, v *models.Commande) { l.Commande = v }),
		"produit":  field(func(l *models.LigneCommande, v *models.Produit) { l.Produit = v }),
	})
}

func NewProduitForm(input *models.Produit) *ProduitForm {
	return newForm(input, map[string]setter[models.Produit]{
		"nom":           field(func(p *models.Produit, v *string) { p.Nom = v }),
		"description":   field(func(p *models.Produit, v *string) { p.Description = v }),
		"prix":          field(func(p *models.Produit, v *float32) { p.Prix = v }),
		"stock":         field(func(p *models.Produit, v *int) { p.Stock = v }),
		"categorie":     field(func(p *models.Produit, v *string) { p.Categorie = v }),
		"gestionnaires": list(func(p *models.Produit, v []*models.Admin) { p.Gestionnaires = v }),
	})
}

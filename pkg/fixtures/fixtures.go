// Package fixtures provides sample entities for tests and the seed command.
// Every call decodes the embedded document again, so callers own the values
// they get and may modify them freely.
package fixtures

import (
	_ "embed"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/Ramsey-B/babyshop/pkg/models"
)

//go:embed samples.yaml
var samplesYAML []byte

type sampleSet[T any] struct {
	Required *T `yaml:"required"`
	Partial  *T `yaml:"partial"`
	Full     *T `yaml:"full"`
	New      *T `yaml:"new"`
}

type document struct {
	Admin         sampleSet[models.Admin]         `yaml:"admin"`
	CarteBancaire sampleSet[models.CarteBancaire] `yaml:"carteBancaire"`
	Produit       sampleSet[models.Produit]       `yaml:"produit"`
	Commande      sampleSet[models.Commande]      `yaml:"commande"`
	LigneCommande sampleSet[models.LigneCommande] `yaml:"ligneCommande"`
	Avis          sampleSet[models.Avis]          `yaml:"avis"`
}

func load() document {
	var doc document
	if err := yaml.Unmarshal(samplesYAML, &doc); err != nil {
		panic(fmt.Sprintf("fixtures: malformed samples.yaml: %v", err))
	}
	return doc
}

// Samples are the four samples of one entity
type Samples[T any] struct {
	pick func(document) sampleSet[T]
}

// WithRequiredData has an id and only the required fields
func (s Samples[T]) WithRequiredData() *T { return s.pick(load()).Required }

// WithPartialData has an id and some optional fields
func (s Samples[T]) WithPartialData() *T { return s.pick(load()).Partial }

// WithFullData has every field set
func (s Samples[T]) WithFullData() *T { return s.pick(load()).Full }

// WithNewData has no id
func (s Samples[T]) WithNewData() *T { return s.pick(load()).New }

var (
	Admin         = Samples[models.Admin]{pick: func(d document) sampleSet[models.Admin] { return d.Admin }}
	CarteBancaire = Samples[models.CarteBancaire]{pick: func(d document) sampleSet[models.CarteBancaire] { return d.CarteBancaire }}
	Produit       = Samples[models.Produit]{pick: func(d document) sampleSet[models.Produit] { return d.Produit }}
	Commande      = Samples[models.Commande]{pick: func(d document) sampleSet[models.Commande] { return d.Commande }}
	LigneCommande = Samples[models.LigneCommande]{pick: func(d document) sampleSet[models.LigneCommande] { return d.LigneCommande }}
	Avis          = Samples[models.Avis]{pick: func(d document) sampleSet[models.Avis] { return d.Avis }}
)

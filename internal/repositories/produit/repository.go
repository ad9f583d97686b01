package produit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Gobusters/ectolinq"
	"github.com/Gobusters/ectologger"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/babyshop/pkg/database"
	"github.com/Ramsey-B/babyshop/pkg/models"
	"github.com/Ramsey-B/babyshop/pkg/tracing"
)

// ProduitRepository defines the interface for product data access
type ProduitRepository interface {
	Create(ctx context.Context, produit *models.Produit) (*models.Produit, error)
	Update(ctx context.Context, produit *models.Produit) (*models.Produit, error)
	PartialUpdate(ctx context.Context, patch *models.Produit) (*models.Produit, error)
	FindAll(ctx context.Context) ([]*models.Produit, error)
	FindByCriteria(ctx context.Context, criteria models.ProduitCriteria) ([]*models.Produit, error)
	CountByCriteria(ctx context.Context, criteria models.ProduitCriteria) (int64, error)
	FindOne(ctx context.Context, id int64) (*models.Produit, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// Repository implements ProduitRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
	rows   *sqlbuilder.Struct
}

// NewRepository creates a new product repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
		rows:   database.NewStruct(new(ProduitRow), db.Flavor()),
	}
}

// Create inserts a product and its managers in one transaction
func (r *Repository) Create(ctx context.Context, produit *models.Produit) (*models.Produit, error) {
	ctx, span := tracing.StartSpan(ctx, "ProduitRepository.Create")
	defer span.End()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query, args := database.InsertReturningID(r.rows, produitsTable, FromProduit(produit))

	var id int64
	if err := tx.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create produit")
		return nil, fmt.Errorf("failed to create produit: %w", err)
	}

	if err := r.insertGestionnaires(ctx, tx, id, gestionnaireIDs(produit)); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":            id,
		"gestionnaires": len(produit.Gestionnaires),
	}).Info("created produit")

	return r.FindOne(ctx, id)
}

// Update replaces every field of an existing product, managers included. It
// returns nil when the product does not exist.
func (r *Repository) Update(ctx context.Context, produit *models.Produit) (*models.Produit, error) {
	ctx, span := tracing.StartSpan(ctx, "ProduitRepository.Update")
	defer span.End()

	if produit.ID == nil {
		return nil, errors.New("produit id is required for update")
	}
	id := *produit.ID

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	query, args := database.UpdateByID(r.rows, produitsTable, id, FromProduit(produit))
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update produit")
		return nil, fmt.Errorf("failed to update produit: %w", err)
	}
	if rowsAffected, _ := result.RowsAffected(); rowsAffected == 0 {
		return nil, nil
	}

	del := r.db.Flavor().NewDeleteBuilder()
	del.DeleteFrom(gestionnairesTable).Where(del.Equal("produit_id", id))
	delQuery, delArgs := del.Build()
	if _, err := tx.ExecContext(ctx, delQuery, delArgs...); err != nil {
		return nil, fmt.Errorf("failed to clear produit gestionnaires: %w", err)
	}

	if err := r.insertGestionnaires(ctx, tx, id, gestionnaireIDs(produit)); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"id": id}).Info("updated produit")

	return r.FindOne(ctx, id)
}

func (r *Repository) insertGestionnaires(ctx context.Context, tx database.Tx, produitID int64, adminIDs []int64) error {
	if len(adminIDs) == 0 {
		return nil
	}

	ib := r.db.Flavor().NewInsertBuilder()
	ib.InsertInto(gestionnairesTable).Cols("produit_id", "admin_id")
	for _, adminID := range adminIDs {
		ib.Values(produitID, adminID)
	}
	query, args := ib.Build()

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"produit_id": produitID,
			"admin_ids":  adminIDs,
		}).Error("failed to link produit gestionnaires")
		return fmt.Errorf("failed to link produit gestionnaires: %w", err)
	}
	return nil
}

// PartialUpdate applies the non-nil fields of patch. Managers are replaced
// only when the patch carries them.
func (r *Repository) PartialUpdate(ctx context.Context, patch *models.Produit) (*models.Produit, error) {
	ctx, span := tracing.StartSpan(ctx, "ProduitRepository.PartialUpdate")
	defer span.End()

	if patch.ID == nil {
		return nil, errors.New("produit id is required for partial update")
	}

	existing, err := r.FindOne(ctx, *patch.ID)
	if err != nil || existing == nil {
		return nil, err
	}

	applyPatch(existing, patch)
	return r.Update(ctx, existing)
}

// FindAll returns every product ordered by id
func (r *Repository) FindAll(ctx context.Context) ([]*models.Produit, error) {
	return r.FindByCriteria(ctx, models.ProduitCriteria{})
}

// FindByCriteria returns the products matching every set criterion, ordered by id
func (r *Repository) FindByCriteria(ctx context.Context, criteria models.ProduitCriteria) ([]*models.Produit, error) {
	ctx, span := tracing.StartSpan(ctx, "ProduitRepository.FindByCriteria")
	defer span.End()

	sb := r.rows.SelectFrom(produitsTable)
	r.applyCriteria(sb, criteria)
	sb.OrderBy("id").Asc()
	query, args := sb.Build()

	var rows []ProduitRow
	if err := database.QueryerFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list produits")
		return nil, fmt.Errorf("failed to list produits: %w", err)
	}

	gestionnaires, err := r.loadGestionnaires(ctx, ectolinq.Map(rows, func(row ProduitRow) int64 { return row.ID })...)
	if err != nil {
		return nil, err
	}

	produits := make([]*models.Produit, len(rows))
	for i := range rows {
		produits[i] = ToProduit(&rows[i], gestionnaires[rows[i].ID])
	}
	return produits, nil
}

// CountByCriteria counts the products matching every set criterion
func (r *Repository) CountByCriteria(ctx context.Context, criteria models.ProduitCriteria) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "ProduitRepository.CountByCriteria")
	defer span.End()

	sb := r.db.Flavor().NewSelectBuilder()
	sb.Select("COUNT(*)").From(produitsTable)
	r.applyCriteria(sb, criteria)
	query, args := sb.Build()

	var count int64
	if err := database.QueryerFrom(ctx, r.db).GetContext(ctx, &count, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count produits")
		return 0, fmt.Errorf("failed to count produits: %w", err)
	}
	return count, nil
}

func (r *Repository) applyCriteria(sb *sqlbuilder.SelectBuilder, criteria models.ProduitCriteria) {
	if criteria.NomContains != nil {
		sb.Where(sb.Like("LOWER(nom)", "%"+strings.ToLower(*criteria.NomContains)+"%"))
	}
	if criteria.CategorieEquals != nil {
		sb.Where(sb.Equal("categorie", *criteria.CategorieEquals))
	}
	if criteria.PrixGreaterThanOrEqual != nil {
		sb.Where(sb.GreaterEqualThan("prix", *criteria.PrixGreaterThanOrEqual))
	}
	if criteria.PrixLessThanOrEqual != nil {
		sb.Where(sb.LessEqualThan("prix", *criteria.PrixLessThanOrEqual))
	}
	if criteria.StockGreaterThan != nil {
		sb.Where(sb.GreaterThan("stock", *criteria.StockGreaterThan))
	}
	if criteria.GestionnairesIDEquals != nil {
		managed := r.db.Flavor().NewSelectBuilder()
		managed.Select("produit_id").From(gestionnairesTable).Where(managed.Equal("admin_id", *criteria.GestionnairesIDEquals))
		sb.Where(sb.In("id", managed))
	}
	if len(criteria.IDIn) > 0 {
		sb.Where(sb.In("id", ectolinq.Map(criteria.IDIn, func(id int64) any { return id })...))
	}
}

// loadGestionnaires returns the managers of each product, keyed by product id
func (r *Repository) loadGestionnaires(ctx context.Context, produitIDs ...int64) (map[int64][]GestionnaireRow, error) {
	result := make(map[int64][]GestionnaireRow, len(produitIDs))
	if len(produitIDs) == 0 {
		return result, nil
	}

	sb := r.db.Flavor().NewSelectBuilder()
	sb.Select("pg.produit_id", "a.id AS admin_id", "a.identifiant").
		From(gestionnairesTable + " pg").
		Join("admins a", "a.id = pg.admin_id").
		Where(sb.In("pg.produit_id", ectolinq.Map(produitIDs, func(id int64) any { return id })...)).
		OrderBy("pg.produit_id", "a.id")
	query, args := sb.Build()

	var rows []GestionnaireRow
	if err := database.QueryerFrom(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to load produit gestionnaires")
		return nil, fmt.Errorf("failed to load produit gestionnaires: %w", err)
	}

	for _, row := range rows {
		result[row.ProduitID] = append(result[row.ProduitID], row)
	}
	return result, nil
}

// FindOne returns the product with id and its managers, or nil
func (r *Repository) FindOne(ctx context.Context, id int64) (*models.Produit, error) {
	ctx, span := tracing.StartSpan(ctx, "ProduitRepository.FindOne")
	defer span.End()

	sb := r.rows.SelectFrom(produitsTable)
	sb.Where(sb.Equal("id", id))
	query, args := sb.Build()

	var row ProduitRow
	if err := database.QueryerFrom(ctx, r.db).GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).Error("failed to get produit by ID")
		return nil, fmt.Errorf("failed to get produit: %w", err)
	}

	gestionnaires, err := r.loadGestionnaires(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProduit(&row, gestionnaires[id]), nil
}

// ExistsByID reports whether a product with id exists
func (r *Repository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	ctx, span := tracing.StartSpan(ctx, "ProduitRepository.ExistsByID")
	defer span.End()

	return database.ExistsByID(ctx, database.QueryerFrom(ctx, r.db), r.db.Flavor(), produitsTable, id)
}

// Delete removes a product. Its manager links are removed by the cascade.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, span := tracing.StartSpan(ctx, "ProduitRepository.Delete")
	defer span.End()

	rowsAffected, err := database.DeleteByID(ctx, database.QueryerFrom(ctx, r.db), r.db.Flavor(), produitsTable, id)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to delete produit")
		return fmt.Errorf("failed to delete produit: %w", err)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":            id,
		"rows_affected": rowsAffected,
	}).Info("deleted produit")

	return nil
}

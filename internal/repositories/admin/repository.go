package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Gobusters/ectologger"
	"github.com/huandu/go-sqlbuilder"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ramsey-B/babyshop/pkg/database"
	"github.com/Ramsey-B/babyshop/pkg/models"
	"github.com/Ramsey-B/babyshop/pkg/tracing"
)

// AdminRepository defines the interface for admin data access
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) (*models.Admin, error)
	Update(ctx context.Context, admin *models.Admin) (*models.Admin, error)
	PartialUpdate(ctx context.Context, patch *models.Admin) (*models.Admin, error)
	FindAll(ctx context.Context) ([]*models.Admin, error)
	FindOne(ctx context.Context, id int64) (*models.Admin, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	CheckPassword(ctx context.Context, identifiant, motDePasse string) (*models.Admin, error)
	Delete(ctx context.Context, id int64) error
}

// Repository implements AdminRepository
type Repository struct {
	db       database.DB
	logger   ectologger.Logger
	adminRow *sqlbuilder.Struct
	hashCost int
}

// NewRepository creates a new admin repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:       db,
		logger:   logger,
		adminRow: database.NewStruct(new(AdminRow), db.Flavor()),
		hashCost: bcrypt.DefaultCost,
	}
}

// WithHashCost overrides the bcrypt cost (tests use bcrypt.MinCost).
func (r *Repository) WithHashCost(cost int) *Repository {
	r.hashCost = cost
	return r
}

func (r *Repository) hash(password *string) (sql.NullString, error) {
	if password == nil {
		return sql.NullString{}, nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), r.hashCost)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to hash password: %w", err)
	}
	return sql.NullString{String: string(hashed), Valid: true}, nil
}

// Create inserts a new admin
func (r *Repository) Create(ctx context.Context, admin *models.Admin) (*models.Admin, error) {
	ctx, span := tracing.StartSpan(ctx, "AdminRepository.Create")
	defer span.End()

	row := FromAdmin(admin)
	hashed, err := r.hash(admin.MotDePasse)
	if err != nil {
		return nil, err
	}
	row.MotDePasseHash = hashed

	query, args := database.InsertReturningID(r.adminRow, adminsTable, row)

	var id int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to create admin")
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"id": id}).Info("created admin")

	return r.FindOne(ctx, id)
}

// Update replaces every field of an existing admin. A nil password keeps the
// stored one.
func (r *Repository) Update(ctx context.Context, admin *models.Admin) (*models.Admin, error) {
	ctx, span := tracing.StartSpan(ctx, "AdminRepository.Update")
	defer span.End()

	if admin.ID == nil {
		return nil, errors.New("admin id is required for update")
	}

	existing, err := r.findRow(ctx, *admin.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	row := FromAdmin(admin)
	row.MotDePasseHash = existing.MotDePasseHash
	if admin.MotDePasse != nil {
		if row.MotDePasseHash, err = r.hash(admin.MotDePasse); err != nil {
			return nil, err
		}
	}

	query, args := database.UpdateByID(r.adminRow, adminsTable, *admin.ID, row)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to update admin")
		return nil, fmt.Errorf("failed to update admin: %w", err)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{"id": *admin.ID}).Info("updated admin")

	return r.FindOne(ctx, *admin.ID)
}

// PartialUpdate applies the non-nil fields of patch. It returns nil when the
// admin does not exist.
func (r *Repository) PartialUpdate(ctx context.Context, patch *models.Admin) (*models.Admin, error) {
	ctx, span := tracing.StartSpan(ctx, "AdminRepository.PartialUpdate")
	defer span.End()

	if patch.ID == nil {
		return nil, errors.New("admin id is required for partial update")
	}

	existing, err := r.FindOne(ctx, *patch.ID)
	if err != nil || existing == nil {
		return nil, err
	}

	applyPatch(existing, patch)
	return r.Update(ctx, existing)
}

// FindAll returns every admin ordered by id
func (r *Repository) FindAll(ctx context.Context) ([]*models.Admin, error) {
	ctx, span := tracing.StartSpan(ctx, "AdminRepository.FindAll")
	defer span.End()

	sb := r.adminRow.SelectFrom(adminsTable)
	sb.OrderBy("id").Asc()
	query, args := sb.Build()

	var rows []AdminRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list admins")
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}

	return ToAdmins(rows), nil
}

// FindOne returns the admin with id, or nil
func (r *Repository) FindOne(ctx context.Context, id int64) (*models.Admin, error) {
	ctx, span := tracing.StartSpan(ctx, "AdminRepository.FindOne")
	defer span.End()

	row, err := r.findRow(ctx, id)
	if err != nil || row == nil {
		return nil, err
	}
	return ToAdmin(row), nil
}

func (r *Repository) findRow(ctx context.Context, id int64) (*AdminRow, error) {
	sb := r.adminRow.SelectFrom(adminsTable)
	sb.Where(sb.Equal("id", id))
	query, args := sb.Build()

	var row AdminRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).Error("failed to get admin by ID")
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &row, nil
}

// ExistsByID reports whether an admin with id exists
func (r *Repository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	ctx, span := tracing.StartSpan(ctx, "AdminRepository.ExistsByID")
	defer span.End()

	return database.ExistsByID(ctx, r.db, r.db.Flavor(), adminsTable, id)
}

// CheckPassword returns the admin matching identifiant and motDePasse, or nil.
func (r *Repository) CheckPassword(ctx context.Context, identifiant, motDePasse string) (*models.Admin, error) {
	ctx, span := tracing.StartSpan(ctx, "AdminRepository.CheckPassword")
	defer span.End()

	sb := r.adminRow.SelectFrom(adminsTable)
	sb.Where(sb.Equal("identifiant", identifiant))
	query, args := sb.Build()

	var row AdminRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	if !row.MotDePasseHash.Valid {
		return nil, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(row.MotDePasseHash.String), []byte(motDePasse)); err != nil {
		return nil, nil
	}
	return ToAdmin(&row), nil
}

// Delete removes an admin. Deleting a missing admin is not an error.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	ctx, span := tracing.StartSpan(ctx, "AdminRepository.Delete")
	defer span.End()

	rowsAffected, err := database.DeleteByID(ctx, r.db, r.db.Flavor(), adminsTable, id)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to delete admin")
		return fmt.Errorf("failed to delete admin: %w", err)
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":            id,
		"rows_affected": rowsAffected,
	}).Info("deleted admin")

	return nil
}

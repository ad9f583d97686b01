package database

import (
	"context"

	"github.com/huandu/go-sqlbuilder"
)

// PrimaryKeyTag marks the columns filled by the database on insert
// (`fieldtag:"pk"`).
const PrimaryKeyTag = "pk"

// NewStruct returns a row mapper for v in the given dialect.
func NewStruct(v any, flavor sqlbuilder.Flavor) *sqlbuilder.Struct {
	return sqlbuilder.NewStruct(v).For(flavor)
}

// InsertReturningID builds an insert of row that returns the generated id.
// RETURNING is supported by both postgres and sqlite (3.35+).
func InsertReturningID(s *sqlbuilder.Struct, table string, row any) (string, []any) {
	ib := s.WithoutTag(PrimaryKeyTag).InsertInto(table, row)
	ib.SQL("RETURNING id")
	return ib.Build()
}

// UpdateByID builds an update of every non-pk column of row.
func UpdateByID(s *sqlbuilder.Struct, table string, id int64, row any) (string, []any) {
	ub := s.WithoutTag(PrimaryKeyTag).Update(table, row)
	ub.Where(ub.Equal("id", id))
	return ub.Build()
}

// ExistsByID reports whether table has a row with id.
func ExistsByID(ctx context.Context, db Queryer, flavor sqlbuilder.Flavor, table string, id int64) (bool, error) {
	sb := flavor.NewSelectBuilder()
	sb.Select("COUNT(*)").From(table).Where(sb.Equal("id", id))
	query, args := sb.Build()

	var count int
	if err := db.GetContext(ctx, &count, query, args...); err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteByID deletes the row with id from table and returns the affected count.
func DeleteByID(ctx context.Context, db Queryer, flavor sqlbuilder.Flavor, table string, id int64) (int64, error) {
	del := flavor.NewDeleteBuilder()
	del.DeleteFrom(table).Where(del.Equal("id", id))
	query, args := del.Build()

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

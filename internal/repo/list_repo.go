// Package repo implements the data access layer for lists and list items.
//
// Every function takes a live connection handle (typically obtained through
// WithConn) and never acquires or releases connections itself. Each call
// issues exactly one static statement from the dialect's statement set.
//
// Error semantics:
//   - statement preparation or execution failures (constraint violations,
//     connectivity loss, syntax) are returned as domain QueryError values;
//   - rows that cannot be scanned into an entity yield MappingError;
//   - GetList reports a missing row as domain NotFound.
//
// Functions:
//
//   - ListAll(ctx, conn)                     -> []domain.List, error
//   - GetList(ctx, conn, id)                 -> *domain.List, error
//   - CreateList(ctx, conn, name)            -> bool, error
//   - ItemsForList(ctx, conn, listID)        -> []domain.ListItem, error
//   - AddItem(ctx, conn, listID, name)       -> bool, error
//   - RemoveItem(ctx, conn, listID, itemID)  -> error (no-op when absent)
//   - InitSchema(ctx, conn)                  -> error (idempotent)
package repo

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/tbourn/go-lists-backend/internal/domain"
)

// rowScanner is the subset of *sql.Rows used by the mapping functions.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanList maps a (id, name, deleted) row.
func scanList(r rowScanner) (domain.List, error) {
	var l domain.List
	err := r.Scan(&l.ID, &l.Name, &l.Deleted)
	return l, err
}

// scanListItem maps a (id, name, list_id, deleted) row.
func scanListItem(r rowScanner) (domain.ListItem, error) {
	var it domain.ListItem
	err := r.Scan(&it.ID, &it.Name, &it.ListID, &it.Deleted)
	return it, err
}

// ListAll returns every list in storage order. An empty table yields an
// empty, non-nil slice.
func ListAll(ctx context.Context, conn *gorm.DB) ([]domain.List, error) {
	const op = "list.all"
	st, err := statementsFor(conn)
	if err != nil {
		return nil, domain.QueryError(op, err)
	}
	rows, err := conn.WithContext(ctx).Raw(st.listAll).Rows()
	if err != nil {
		return nil, domain.QueryError(op, err)
	}
	defer rows.Close()

	out := make([]domain.List, 0)
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, domain.MappingError(op, err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.QueryError(op, err)
	}
	return out, nil
}

// GetList fetches a single list by id.
func GetList(ctx context.Context, conn *gorm.DB, id int64) (*domain.List, error) {
	const op = "list.get"
	st, err := statementsFor(conn)
	if err != nil {
		return nil, domain.QueryError(op, err)
	}
	rows, err := conn.WithContext(ctx).Raw(st.listGet, id).Rows()
	if err != nil {
		return nil, domain.QueryError(op, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, domain.QueryError(op, err)
		}
		return nil, domain.NotFound(op)
	}
	l, err := scanList(rows)
	if err != nil {
		return nil, domain.MappingError(op, err)
	}
	return &l, nil
}

// CreateList inserts a list with a sequence-generated id.
func CreateList(ctx context.Context, conn *gorm.DB, name string) (bool, error) {
	const op = "list.create"
	st, err := statementsFor(conn)
	if err != nil {
		return false, domain.QueryError(op, err)
	}
	if err := conn.WithContext(ctx).Exec(st.listCreate, name).Error; err != nil {
		return false, domain.QueryError(op, err)
	}
	return true, nil
}

// ItemsForList returns the items of listID, live items first. Removed
// items are included with Deleted set.
func ItemsForList(ctx context.Context, conn *gorm.DB, listID int64) ([]domain.ListItem, error) {
	const op = "item.list"
	st, err := statementsFor(conn)
	if err != nil {
		return nil, domain.QueryError(op, err)
	}
	rows, err := conn.WithContext(ctx).Raw(st.itemsForList, listID).Rows()
	if err != nil {
		return nil, domain.QueryError(op, err)
	}
	defer rows.Close()

	out := make([]domain.ListItem, 0)
	for rows.Next() {
		it, err := scanListItem(rows)
		if err != nil {
			return nil, domain.MappingError(op, err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.QueryError(op, err)
	}
	return out, nil
}

// AddItem inserts an item into listID. A missing list violates the foreign
// key and surfaces as a QueryError; nothing is inserted in that case.
func AddItem(ctx context.Context, conn *gorm.DB, listID int64, name string) (bool, error) {
	const op = "item.add"
	st, err := statementsFor(conn)
	if err != nil {
		return false, domain.QueryError(op, err)
	}
	if err := conn.WithContext(ctx).Exec(st.itemAdd, listID, name).Error; err != nil {
		return false, domain.QueryError(op, err)
	}
	return true, nil
}

// RemoveItem soft-deletes itemID within listID. Removing an absent pair is
// a successful no-op.
func RemoveItem(ctx context.Context, conn *gorm.DB, listID, itemID int64) error {
	const op = "item.remove"
	st, err := statementsFor(conn)
	if err != nil {
		return domain.QueryError(op, err)
	}
	if err := conn.WithContext(ctx).Exec(st.itemRemove, listID, itemID).Error; err != nil {
		return domain.QueryError(op, err)
	}
	return nil
}

// InitSchema creates the tables and id sequences if they are absent.
// Running it repeatedly leaves the schema unchanged.
func InitSchema(ctx context.Context, conn *gorm.DB) error {
	const op = "schema.init"
	st, err := statementsFor(conn)
	if err != nil {
		return domain.QueryError(op, err)
	}
	for _, stmt := range st.schema {
		if err := conn.WithContext(ctx).Exec(stmt).Error; err != nil {
			return domain.QueryError(op, err)
		}
	}
	return nil
}

// compile-time check that *sql.Rows satisfies rowScanner.
var _ rowScanner = (*sql.Rows)(nil)

package repo

import (
	"fmt"

	"gorm.io/gorm"
)

// statements is the fixed SQL used by the data access layer for one
// dialect. Nothing is assembled at runtime; values are always bound through
// '?' placeholders, which GORM rewrites to the driver's positional syntax.
type statements struct {
	listAll      string
	listGet      string
	listCreate   string
	itemsForList string
	itemAdd      string
	itemRemove   string
	schema       []string
}

// Read and update statements are shared; only id generation and DDL differ.
const (
	sqlListAll      = `SELECT id, name, deleted FROM list`
	sqlListGet      = `SELECT id, name, deleted FROM list WHERE id = ?`
	sqlItemsForList = `SELECT id, name, list_id, deleted FROM list_item WHERE list_id = ? ORDER BY deleted ASC, id ASC`
	sqlItemRemove   = `UPDATE list_item SET deleted = true WHERE list_id = ? AND id = ?`
)

var postgresStatements = statements{
	listAll:      sqlListAll,
	listGet:      sqlListGet,
	listCreate:   `INSERT INTO list (id, name) VALUES (nextval('list_id_seq'), ?)`,
	itemsForList: sqlItemsForList,
	itemAdd:      `INSERT INTO list_item (id, list_id, name) VALUES (nextval('list_item_seq'), ?, ?)`,
	itemRemove:   sqlItemRemove,
	schema: []string{
		`CREATE TABLE IF NOT EXISTS list (
			id int PRIMARY KEY NOT NULL,
			deleted boolean NOT NULL DEFAULT false,
			name varchar
		)`,
		`CREATE TABLE IF NOT EXISTS list_item (
			id int PRIMARY KEY NOT NULL,
			name varchar NOT NULL,
			deleted boolean NOT NULL DEFAULT false,
			list_id int NOT NULL REFERENCES list(id)
		)`,
		`CREATE SEQUENCE IF NOT EXISTS list_id_seq START 101`,
		`CREATE SEQUENCE IF NOT EXISTS list_item_seq START 101`,
	},
}

// SQLite has no sequences. AUTOINCREMENT never reuses ids, and seeding
// sqlite_sequence at 100 makes the first generated id 101.
var sqliteStatements = statements{
	listAll:      sqlListAll,
	listGet:      sqlListGet,
	listCreate:   `INSERT INTO list (name) VALUES (?)`,
	itemsForList: sqlItemsForList,
	itemAdd:      `INSERT INTO list_item (list_id, name) VALUES (?, ?)`,
	itemRemove:   sqlItemRemove,
	schema: []string{
		`CREATE TABLE IF NOT EXISTS list (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			deleted BOOLEAN NOT NULL DEFAULT FALSE,
			name VARCHAR
		)`,
		`CREATE TABLE IF NOT EXISTS list_item (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name VARCHAR NOT NULL,
			deleted BOOLEAN NOT NULL DEFAULT FALSE,
			list_id INTEGER NOT NULL REFERENCES list(id)
		)`,
		`INSERT INTO sqlite_sequence (name, seq)
			SELECT 'list', 100 WHERE NOT EXISTS (SELECT 1 FROM sqlite_sequence WHERE name = 'list')`,
		`INSERT INTO sqlite_sequence (name, seq)
			SELECT 'list_item', 100 WHERE NOT EXISTS (SELECT 1 FROM sqlite_sequence WHERE name = 'list_item')`,
	},
}

// statementsFor picks the statement set matching the connection's dialect.
func statementsFor(conn *gorm.DB) (*statements, error) {
	if conn == nil || conn.Config == nil || conn.Dialector == nil {
		return nil, fmt.Errorf("no database dialect")
	}
	switch name := conn.Dialector.Name(); name {
	case "postgres":
		return &postgresStatements, nil
	case "sqlite":
		return &sqliteStatements, nil
	default:
		return nil, fmt.Errorf("unsupported dialect %q", name)
	}
}

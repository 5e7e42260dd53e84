package catalog

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mvp-joe/autodoc/internal/autodoc"
)

// ErrSchemaVersion is returned when a database was written by an
// incompatible version.
var ErrSchemaVersion = errors.New("catalog: unsupported schema version")

// Library is one indexed source file.
type Library struct {
	Source      string    `json:"source"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IndexedAt   time.Time `json:"indexed_at"`
}

// Function is a documented function as stored in the catalog.
type Function struct {
	ID      int64  `json:"id"`
	Source  string `json:"source"`
	Library string `json:"library"`
	autodoc.NameInfo
	Line          int                     `json:"line"`
	Description   string                  `json:"description"`
	Signature     string                  `json:"signature"`
	Params        []autodoc.ParameterInfo `json:"params"`
	Returns       *autodoc.ReturnInfo     `json:"returns,omitempty"`
	IsConstructor bool                    `json:"is_constructor"`
	IsStatic      bool                    `json:"is_static"`
	Tags          []string                `json:"tags"`
	Examples      []autodoc.ExampleInfo   `json:"examples"`
}

// Filter narrows Functions. Zero fields match everything.
type Filter struct {
	Source    string
	Namespace string
	Tag       string
	IDs       []int64
}

// Catalog is a SQLite-backed documentation store.
type Catalog struct {
	db *sql.DB
}

// Open opens or creates the catalog at path. ":memory:" gives a private
// in-memory catalog.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// An in-memory database lives per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	version, err := schemaVersion(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	switch version {
	case 0:
		if err := createSchema(db); err != nil {
			db.Close()
			return nil, err
		}
	case SchemaVersion:
	default:
		db.Close()
		return nil, fmt.Errorf("%w: %d", ErrSchemaVersion, version)
	}

	return &Catalog{db: db}, nil
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// WriteLibrary replaces everything stored for source with lib.
// The replacement is atomic.
func (c *Catalog) WriteLibrary(source string, lib *autodoc.LibraryInfo) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := sq.Delete("libraries").Where(sq.Eq{"source": source}).RunWith(tx).Exec(); err != nil {
		return fmt.Errorf("failed to clear library %s: %w", source, err)
	}

	_, err = sq.Insert("libraries").
		Columns("source", "name", "description", "indexed_at").
		Values(source, lib.Name, lib.Description, time.Now().UTC().Format(time.RFC3339)).
		RunWith(tx).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to insert library %s: %w", source, err)
	}

	for _, doc := range lib.Docs {
		if err := insertFunction(tx, source, doc); err != nil {
			return fmt.Errorf("failed to insert %s: %w", doc.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RemoveLibrary deletes source and its functions. Unknown sources are not
// an error.
func (c *Catalog) RemoveLibrary(source string) error {
	if _, err := sq.Delete("libraries").Where(sq.Eq{"source": source}).RunWith(c.db).Exec(); err != nil {
		return fmt.Errorf("failed to remove library %s: %w", source, err)
	}
	return nil
}

func insertFunction(tx *sql.Tx, source string, doc *autodoc.FunctionInfo) error {
	tags, err := json.Marshal(doc.Tags)
	if err != nil {
		return err
	}

	var returnsType, returnsDescription any
	if doc.Returns != nil {
		returnsType, returnsDescription = doc.Returns.Type, doc.Returns.Description
	}

	res, err := sq.Insert("functions").
		Columns("source", "name", "short_name", "namespace", "identifier", "line", "description",
			"signature", "returns_type", "returns_description", "is_constructor", "is_static", "tags").
		Values(source, doc.Name, doc.ShortName, doc.Namespace, doc.Identifier, doc.Line, doc.Description,
			doc.Signature, returnsType, returnsDescription, doc.IsConstructor, doc.IsStatic, string(tags)).
		RunWith(tx).
		Exec()
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for i, param := range doc.Params {
		_, err := sq.Insert("params").
			Columns("function_id", "position", "name", "type", "description", "optional", "default_value").
			Values(id, i, param.Name, param.Type, param.Description, param.Optional, param.Default).
			RunWith(tx).
			Exec()
		if err != nil {
			return fmt.Errorf("param %s: %w", param.Name, err)
		}
	}

	for _, example := range doc.Examples.Examples {
		var handler any
		if example.Handler != nil {
			data, err := json.Marshal(example.Handler)
			if err != nil {
				return err
			}
			handler = string(data)
		}
		_, err := sq.Insert("examples").
			Columns("function_id", "example_id", "input", "expected", "handler").
			Values(id, example.ID, example.Input, example.Expected, handler).
			RunWith(tx).
			Exec()
		if err != nil {
			return fmt.Errorf("example %d: %w", example.ID, err)
		}
	}
	return nil
}

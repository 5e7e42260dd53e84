package catalog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/mvp-joe/autodoc/internal/autodoc"
)

// Libraries lists indexed sources ordered by path.
func (c *Catalog) Libraries() ([]Library, error) {
	rows, err := sq.Select("source", "name", "description", "indexed_at").
		From("libraries").
		OrderBy("source").
		RunWith(c.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query libraries: %w", err)
	}
	defer rows.Close()

	var libs []Library
	for rows.Next() {
		var lib Library
		var indexedAt string
		if err := rows.Scan(&lib.Source, &lib.Name, &lib.Description, &indexedAt); err != nil {
			return nil, fmt.Errorf("failed to scan library: %w", err)
		}
		lib.IndexedAt, _ = time.Parse(time.RFC3339, indexedAt)
		libs = append(libs, lib)
	}
	return libs, rows.Err()
}

// Functions returns the functions matching filter with params and examples
// loaded, ordered by source and line.
func (c *Catalog) Functions(filter Filter) ([]*Function, error) {
	query := functionQuery()
	if filter.Source != "" {
		query = query.Where(sq.Eq{"f.source": filter.Source})
	}
	if filter.Namespace != "" {
		query = query.Where(sq.Eq{"f.namespace": filter.Namespace})
	}
	if filter.Tag != "" {
		query = query.Where("EXISTS (SELECT 1 FROM json_each(f.tags) WHERE json_each.value = ?)", filter.Tag)
	}
	if filter.IDs != nil {
		query = query.Where(sq.Eq{"f.function_id": filter.IDs})
	}
	return c.queryFunctions(query)
}

// Lookup finds functions by qualified name, falling back to short name when
// nothing matches exactly.
func (c *Catalog) Lookup(name string) ([]*Function, error) {
	fns, err := c.queryFunctions(functionQuery().Where(sq.Eq{"f.name": name}))
	if err != nil || len(fns) > 0 {
		return fns, err
	}
	return c.queryFunctions(functionQuery().Where(sq.Eq{"f.short_name": name}))
}

func functionQuery() sq.SelectBuilder {
	return sq.Select(
		"f.function_id", "f.source", "l.name", "f.name", "f.short_name", "f.namespace", "f.identifier",
		"f.line", "f.description", "f.signature", "f.returns_type", "f.returns_description",
		"f.is_constructor", "f.is_static", "f.tags",
	).
		From("functions f").
		Join("libraries l ON l.source = f.source").
		OrderBy("f.source", "f.line")
}

func (c *Catalog) queryFunctions(query sq.SelectBuilder) ([]*Function, error) {
	rows, err := query.RunWith(c.db).Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query functions: %w", err)
	}

	fns := []*Function{}
	byID := make(map[int64]*Function)
	for rows.Next() {
		fn, err := scanFunction(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		fns = append(fns, fn)
		byID[fn.ID] = fn
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if len(fns) == 0 {
		return fns, nil
	}
	ids := make([]int64, 0, len(fns))
	for _, fn := range fns {
		ids = append(ids, fn.ID)
	}
	if err := c.loadParams(ids, byID); err != nil {
		return nil, err
	}
	if err := c.loadExamples(ids, byID); err != nil {
		return nil, err
	}
	return fns, nil
}

func scanFunction(rows *sql.Rows) (*Function, error) {
	fn := &Function{Params: []autodoc.ParameterInfo{}, Examples: []autodoc.ExampleInfo{}}
	var returnsType, returnsDescription sql.NullString
	var tags string
	err := rows.Scan(
		&fn.ID, &fn.Source, &fn.Library, &fn.Name, &fn.ShortName, &fn.Namespace, &fn.Identifier,
		&fn.Line, &fn.Description, &fn.Signature, &returnsType, &returnsDescription,
		&fn.IsConstructor, &fn.IsStatic, &tags,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan function: %w", err)
	}
	if returnsType.Valid {
		fn.Returns = &autodoc.ReturnInfo{Type: returnsType.String, Description: returnsDescription.String}
	}
	if err := json.Unmarshal([]byte(tags), &fn.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags of %s: %w", fn.Name, err)
	}
	return fn, nil
}

func (c *Catalog) loadParams(ids []int64, byID map[int64]*Function) error {
	rows, err := sq.Select("function_id", "name", "type", "description", "optional", "default_value").
		From("params").
		Where(sq.Eq{"function_id": ids}).
		OrderBy("function_id", "position").
		RunWith(c.db).
		Query()
	if err != nil {
		return fmt.Errorf("failed to query params: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var param autodoc.ParameterInfo
		if err := rows.Scan(&id, &param.Name, &param.Type, &param.Description, &param.Optional, &param.Default); err != nil {
			return fmt.Errorf("failed to scan param: %w", err)
		}
		byID[id].Params = append(byID[id].Params, param)
	}
	return rows.Err()
}

func (c *Catalog) loadExamples(ids []int64, byID map[int64]*Function) error {
	rows, err := sq.Select("function_id", "example_id", "input", "expected", "handler").
		From("examples").
		Where(sq.Eq{"function_id": ids}).
		OrderBy("function_id", "example_id").
		RunWith(c.db).
		Query()
	if err != nil {
		return fmt.Errorf("failed to query examples: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var example autodoc.ExampleInfo
		var handler sql.NullString
		if err := rows.Scan(&id, &example.ID, &example.Input, &example.Expected, &handler); err != nil {
			return fmt.Errorf("failed to scan example: %w", err)
		}
		if handler.Valid {
			example.Handler = &autodoc.HandlerMatch{}
			if err := json.Unmarshal([]byte(handler.String), example.Handler); err != nil {
				return fmt.Errorf("failed to decode example handler: %w", err)
			}
		}
		byID[id].Examples = append(byID[id].Examples, example)
	}
	return rows.Err()
}

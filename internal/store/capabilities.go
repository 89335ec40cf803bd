package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Capabilities records which columns the connected schema has. It is
// collected once at startup; an unknown set answers every lookup optimistically
// and leaves detection to the undefined_column error path.
type Capabilities struct {
	known   bool
	columns map[string]map[string]struct{}
}

func UnknownCapabilities() *Capabilities {
	return &Capabilities{}
}

func NewCapabilities(columns map[string][]string) *Capabilities {
	c := &Capabilities{
		known:   true,
		columns: make(map[string]map[string]struct{}, len(columns)),
	}
	for table, cols := range columns {
		set := make(map[string]struct{}, len(cols))
		for _, col := range cols {
			set[col] = struct{}{}
		}
		c.columns[table] = set
	}
	return c
}

// Introspect reads information_schema.columns for the given tables in the current schema.
func Introspect(ctx context.Context, db querier, tables ...string) (*Capabilities, error) {
	rows, err := db.Query(ctx, `
		SELECT table_name, column_name
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = ANY($1)
		ORDER BY table_name, ordinal_position`,
		tables,
	)
	if err != nil {
		return nil, fmt.Errorf("query columns: %w", err)
	}
	defer rows.Close()

	columns := make(map[string][]string, len(tables))
	for rows.Next() {
		var table, column string
		if err := rows.Scan(&table, &column); err != nil {
			return nil, fmt.Errorf("scan column row: %w", err)
		}
		columns[table] = append(columns[table], column)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate column rows: %w", err)
	}

	for _, table := range tables {
		if _, ok := columns[table]; !ok {
			log.Warnf("store introspection: table [%s] not found", table)
		}
	}

	return NewCapabilities(columns), nil
}

func (c *Capabilities) Known() bool {
	return c != nil && c.known
}

// HasColumn reports whether table has column. Unknown capabilities answer true.
func (c *Capabilities) HasColumn(table, column string) bool {
	if !c.Known() {
		return true
	}
	_, ok := c.columns[table][column]
	return ok
}

func (c *Capabilities) HasTable(table string) bool {
	if !c.Known() {
		return true
	}
	_, ok := c.columns[table]
	return ok
}

// Columns returns the sorted column names of table.
func (c *Capabilities) Columns(table string) []string {
	if !c.Known() {
		return nil
	}
	cols := make([]string, 0, len(c.columns[table]))
	for col := range c.columns[table] {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

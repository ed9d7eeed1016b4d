package lookup

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/rulekit/pkg/validator"
)

// QueryOption narrows the rows considered by Exists and Unique.
type QueryOption func(validator.Params)

// Where adds an equality condition on column.
func Where(column string, value any) QueryOption {
	return func(p validator.Params) {
		where, _ := p["where"].(map[string]any)
		if where == nil {
			where = map[string]any{}
			p["where"] = where
		}
		where[column] = value
	}
}

// Except ignores rows whose column equals value, typically the record
// being updated.
func Except(column string, value any) QueryOption {
	return func(p validator.Params) {
		p["exceptColumn"] = column
		p["exceptValue"] = value
	}
}

// ExceptProperty is like Except but reads the value from property of the
// data set being validated.
func ExceptProperty(column, property string) QueryOption {
	return func(p validator.Params) {
		p["exceptColumn"] = column
		p["exceptProperty"] = property
	}
}

// Exists checks that a row with column equal to the value exists in table.
// Table names may be schema qualified ("billing.plans").
func (l *Lookup) Exists(table, column string, opts ...QueryOption) *validator.Rule {
	return validator.Leaf(validator.CheckFunc(l.checkExists), queryParams(table, column, opts)).Named(CheckExists)
}

// Unique checks that no row with column equal to the value exists in table.
func (l *Lookup) Unique(table, column string, opts ...QueryOption) *validator.Rule {
	return validator.Leaf(validator.CheckFunc(l.checkUnique), queryParams(table, column, opts)).Named(CheckUnique)
}

func queryParams(table, column string, opts []QueryOption) validator.Params {
	p := validator.Params{"table": table, "column": column}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (l *Lookup) checkExists(value any, params validator.Params, ec *validator.Context) ([]validator.Failure, error) {
	if !scalar(value) {
		return validator.Fail(MessageNotExist, nil), nil
	}
	found, err := l.rowExists(value, params, ec, CheckExists)
	if err != nil {
		return nil, err
	}
	if !found {
		return validator.Fail(MessageNotExist, nil), nil
	}
	return nil, nil
}

func (l *Lookup) checkUnique(value any, params validator.Params, ec *validator.Context) ([]validator.Failure, error) {
	if !scalar(value) {
		return validator.Fail(MessageTaken, map[string]any{"value": stringify(value)}), nil
	}
	found, err := l.rowExists(value, params, ec, CheckUnique)
	if err != nil {
		return nil, err
	}
	if found {
		return validator.Fail(MessageTaken, map[string]any{"value": stringify(value)}), nil
	}
	return nil, nil
}

func (l *Lookup) rowExists(value any, params validator.Params, ec *validator.Context, check string) (bool, error) {
	if l.db == nil {
		return false, ErrNoDatabase
	}

	query, args, err := buildExistsQuery(value, params, ec)
	if err != nil {
		return false, err
	}

	ctx := ec.Context()
	start := time.Now()
	found, err := l.call(func() (bool, error) {
		var found bool
		err := l.db.QueryRow(ctx, query, args...).Scan(&found)
		return found, err
	})
	l.trace(ctx, check, start, err, slog.String("table", params.String("table")))
	if err != nil {
		return false, errors.Join(ErrQueryFailed, err)
	}
	return found, nil
}

// buildExistsQuery renders
//
//	SELECT EXISTS (SELECT 1 FROM <table> WHERE <column> = $1 [AND ...])
//
// with identifiers quoted by pgx and where conditions in column order.
func buildExistsQuery(value any, params validator.Params, ec *validator.Context) (string, []any, error) {
	table := params.String("table")
	column := params.String("column")
	if table == "" || column == "" {
		return "", nil, ErrMissingTable
	}

	args := []any{value}
	conds := []string{ident(column) + " = $1"}

	where, _ := params["where"].(map[string]any)
	for _, col := range slices.Sorted(maps.Keys(where)) {
		args = append(args, where[col])
		conds = append(conds, ident(col)+" = $"+strconv.Itoa(len(args)))
	}

	if col := params.String("exceptColumn"); col != "" {
		except, ok := params.Get("exceptValue")
		if prop := params.String("exceptProperty"); prop != "" {
			except, ok = ec.DataSet().Property(prop)
		}
		// Nothing to exclude when the record has no identity yet.
		if ok && except != nil {
			args = append(args, except)
			conds = append(conds, ident(col)+" <> $"+strconv.Itoa(len(args)))
		}
	}

	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s)",
		pgx.Identifier(strings.Split(table, ".")).Sanitize(),
		strings.Join(conds, " AND "),
	)
	return query, args, nil
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

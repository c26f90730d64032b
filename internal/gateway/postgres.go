package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"catalog-service/internal/models"
	"catalog-service/internal/util"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type tableDef struct {
	name    string
	idCol   string
	slugCol string // empty when the collection has no unique text key
}

var tables = map[string]tableDef{
	CollectionItems:          {name: "catalog_items", idCol: "id", slugCol: "slug"},
	CollectionCategories:     {name: "categories", idCol: "id", slugCol: "slug"},
	CollectionPlans:          {name: "plans", idCol: "id"},
	CollectionItemCategories: {name: "item_categories", idCol: "id"},
	CollectionPromotions:     {name: "promotion_configs", idCol: "id"},
	CollectionExchangeRates:  {name: "exchange_rates", idCol: "id", slugCol: "currency"},
}

// Postgres implements Gateway on top of a Postgres database, one table per
// collection.
type Postgres struct {
	db *sqlx.DB
}

// NewPostgres connects to the database behind the gateway.
func NewPostgres(databaseURL string) (*Postgres, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{db: db}, nil
}

// Close closes the database connection
func (p *Postgres) Close() error {
	return p.db.Close()
}

// DB returns the underlying database connection
func (p *Postgres) DB() *sqlx.DB {
	return p.db
}

// List reads all rows of a collection matching the filter.
func (p *Postgres) List(ctx context.Context, collection string, filter Filter) ([]Record, error) {
	t, err := table(collection)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		util.GatewayFetchLatency.WithLabelValues(collection).Observe(time.Since(start).Seconds())
	}()

	query := fmt.Sprintf("SELECT * FROM %s", t.name)
	var args []interface{}

	if len(filter) > 0 {
		cols := make([]string, 0, len(filter))
		for col := range filter {
			cols = append(cols, col)
		}
		sort.Strings(cols)

		clauses := make([]string, 0, len(cols))
		for _, col := range cols {
			switch filter[col].(type) {
			case []int64, []string, []interface{}:
				clauses = append(clauses, fmt.Sprintf("%s IN (?)", col))
			default:
				clauses = append(clauses, fmt.Sprintf("%s = ?", col))
			}
			args = append(args, filter[col])
		}
		query += " WHERE " + strings.Join(clauses, " AND ")

		query, args, err = sqlx.In(query, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to build query for %s: %w", collection, err)
		}
		query = p.db.Rebind(query)
	}

	query += fmt.Sprintf(" ORDER BY %s", t.idCol)

	rows, err := p.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, models.NewFetchError(collection, err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		rec := Record{}
		if err := rows.MapScan(rec); err != nil {
			return nil, models.NewFetchError(collection, err)
		}
		normalize(rec)
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, models.NewFetchError(collection, err)
	}

	return recs, nil
}

// GetOne reads a single row by identifier or, where the collection has one,
// by unique slug.
func (p *Postgres) GetOne(ctx context.Context, collection string, key string) (Record, error) {
	t, err := table(collection)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		util.GatewayFetchLatency.WithLabelValues(collection).Observe(time.Since(start).Seconds())
	}()

	col := t.slugCol
	var arg interface{} = key
	if id, perr := strconv.ParseInt(key, 10, 64); perr == nil {
		col = t.idCol
		arg = id
	}
	if col == "" {
		return nil, fmt.Errorf("collection %s has no text key", collection)
	}

	query := p.db.Rebind(fmt.Sprintf("SELECT * FROM %s WHERE %s = ?", t.name, col))

	rec := Record{}
	row := p.db.QueryRowxContext(ctx, query, arg)
	if err := row.MapScan(rec); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, models.NewFetchError(collection, err)
	}
	normalize(rec)
	return rec, nil
}

// Insert writes a new row and returns it with generated columns filled in.
func (p *Postgres) Insert(ctx context.Context, collection string, rec Record) (Record, error) {
	t, err := table(collection)
	if err != nil {
		return nil, err
	}

	cols := make([]string, 0, len(rec))
	for col := range rec {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	placeholders := make([]string, len(cols))
	args := make([]interface{}, len(cols))
	for i, col := range cols {
		placeholders[i] = "?"
		args[i] = rec[col]
	}

	query := p.db.Rebind(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		t.name, strings.Join(cols, ", "), strings.Join(placeholders, ", ")))

	out := Record{}
	row := p.db.QueryRowxContext(ctx, query, args...)
	if err := row.MapScan(out); err != nil {
		return nil, fmt.Errorf("insert into %s failed: %w", collection, err)
	}
	normalize(out)
	return out, nil
}

// Update patches a row by identifier and returns the updated row.
func (p *Postgres) Update(ctx context.Context, collection string, key string, patch Record) (Record, error) {
	t, err := table(collection)
	if err != nil {
		return nil, err
	}

	id, perr := strconv.ParseInt(key, 10, 64)
	if perr != nil {
		return nil, fmt.Errorf("invalid %s key: %s", collection, key)
	}

	cols := make([]string, 0, len(patch))
	for col := range patch {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	sets := make([]string, len(cols))
	args := make([]interface{}, 0, len(cols)+1)
	for i, col := range cols {
		sets[i] = fmt.Sprintf("%s = ?", col)
		args = append(args, patch[col])
	}
	args = append(args, id)

	query := p.db.Rebind(fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = ? RETURNING *",
		t.name, strings.Join(sets, ", "), t.idCol))

	out := Record{}
	row := p.db.QueryRowxContext(ctx, query, args...)
	if err := row.MapScan(out); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("update %s failed: %w", collection, err)
	}
	normalize(out)
	return out, nil
}

// Delete removes a row by identifier.
func (p *Postgres) Delete(ctx context.Context, collection string, key string) error {
	t, err := table(collection)
	if err != nil {
		return err
	}

	id, perr := strconv.ParseInt(key, 10, 64)
	if perr != nil {
		return fmt.Errorf("invalid %s key: %s", collection, key)
	}

	_, err = p.db.ExecContext(ctx,
		p.db.Rebind(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", t.name, t.idCol)), id)
	if err != nil {
		return fmt.Errorf("delete from %s failed: %w", collection, err)
	}
	return nil
}

func table(collection string) (tableDef, error) {
	t, ok := tables[collection]
	if !ok {
		return tableDef{}, fmt.Errorf("unknown collection: %s", collection)
	}
	return t, nil
}

// normalize rewrites driver byte slices as strings so record decoding sees
// uniform scalar types.
func normalize(rec Record) {
	for k, v := range rec {
		if b, ok := v.([]byte); ok {
			rec[k] = string(b)
		}
	}
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"

	"github.com/noah-isme/college-erp-api/internal/models"
)

const uniqueViolation = "23505"

type documentRow struct {
	ID        string         `db:"id"`
	Doc       types.JSONText `db:"doc"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

// PostgresDocumentRepository stores collection documents as JSONB rows, one table per collection.
type PostgresDocumentRepository struct {
	db       *sqlx.DB
	observer QueryObserver
}

// NewPostgresDocumentRepository constructs a PostgresDocumentRepository.
func NewPostgresDocumentRepository(db *sqlx.DB, observer QueryObserver) *PostgresDocumentRepository {
	return &PostgresDocumentRepository{db: db, observer: observer}
}

// Migrate creates the collection tables and their indexes when missing.
func (r *PostgresDocumentRepository) Migrate(ctx context.Context) error {
	for _, name := range models.CollectionNames {
		table := pq.QuoteIdentifier(name)
		statements := []string{
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (id TEXT PRIMARY KEY, doc JSONB NOT NULL DEFAULT '{}'::jsonb, created_at TIMESTAMPTZ NOT NULL, updated_at TIMESTAMPTZ NOT NULL)`, table),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (created_at DESC, id DESC)`, pq.QuoteIdentifier(name+"_created_at_idx"), table),
		}
		for _, unique := range uniqueIndexes[name] {
			exprs := make([]string, 0, len(unique.Fields))
			for _, field := range unique.Fields {
				exprs = append(exprs, fmt.Sprintf("(doc->>'%s')", field))
			}
			statements = append(statements, fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (%s)`,
				pq.QuoteIdentifier(unique.Name), table, strings.Join(exprs, ", ")))
		}
		for _, stmt := range statements {
			if _, err := r.db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migrate %s: %w", name, err)
			}
		}
	}
	return nil
}

// Ping verifies the database is reachable.
func (r *PostgresDocumentRepository) Ping(ctx context.Context) error {
	defer observe(r.observer, "postgres.ping", time.Now())
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}

// Find returns one page of documents ordered by creation time, newest first.
func (r *PostgresDocumentRepository) Find(ctx context.Context, collection string, opts models.FindOptions) ([]models.Document, error) {
	defer observe(r.observer, "postgres.find", time.Now())
	table, err := tableName(collection)
	if err != nil {
		return nil, err
	}
	where, args, err := buildWhere(opts.Filter, nil)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT id, doc, created_at, updated_at FROM %s WHERE %s ORDER BY created_at DESC, id DESC", table, where)
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}
	if opts.Skip > 0 {
		query += fmt.Sprintf(" OFFSET %d", opts.Skip)
	}

	var rows []documentRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	return rowsToDocuments(rows)
}

// Count returns the number of documents matching filter.
func (r *PostgresDocumentRepository) Count(ctx context.Context, collection string, filter models.Filter) (int64, error) {
	defer observe(r.observer, "postgres.count", time.Now())
	table, err := tableName(collection)
	if err != nil {
		return 0, err
	}
	where, args, err := buildWhere(filter, nil)
	if err != nil {
		return 0, err
	}
	var total int64
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", table, where), args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return total, nil
}

// FindByID fetches a single document by identifier.
func (r *PostgresDocumentRepository) FindByID(ctx context.Context, collection, id string) (models.Document, error) {
	return r.FindOne(ctx, collection, models.Filter{models.FieldID: id})
}

// FindOne fetches the newest document matching filter.
func (r *PostgresDocumentRepository) FindOne(ctx context.Context, collection string, filter models.Filter) (models.Document, error) {
	defer observe(r.observer, "postgres.find_one", time.Now())
	table, err := tableName(collection)
	if err != nil {
		return nil, err
	}
	where, args, err := buildWhere(filter, nil)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT id, doc, created_at, updated_at FROM %s WHERE %s ORDER BY created_at DESC LIMIT 1", table, where)
	var row documentRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("find one %s: %w", collection, err)
	}
	return row.document()
}

// FindByIDs fetches every document whose identifier is listed. Unknown ids are skipped.
func (r *PostgresDocumentRepository) FindByIDs(ctx context.Context, collection string, ids []string) ([]models.Document, error) {
	if len(ids) == 0 {
		return []models.Document{}, nil
	}
	defer observe(r.observer, "postgres.find_by_ids", time.Now())
	table, err := tableName(collection)
	if err != nil {
		return nil, err
	}
	var rows []documentRow
	query := fmt.Sprintf("SELECT id, doc, created_at, updated_at FROM %s WHERE id = ANY($1)", table)
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("find %s by ids: %w", collection, err)
	}
	return rowsToDocuments(rows)
}

// Insert stores a new document and returns it with identifier and timestamps.
func (r *PostgresDocumentRepository) Insert(ctx context.Context, collection string, doc models.Document) (models.Document, error) {
	defer observe(r.observer, "postgres.insert", time.Now())
	table, err := tableName(collection)
	if err != nil {
		return nil, err
	}
	payload, err := encodeDocument(doc)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	id := uuid.NewString()
	query := fmt.Sprintf("INSERT INTO %s (id, doc, created_at, updated_at) VALUES ($1, $2, $3, $4)", table)
	if _, err := r.db.ExecContext(ctx, query, id, payload, now, now); err != nil {
		return nil, mapWriteError(err, "insert "+collection)
	}
	return documentRow{ID: id, Doc: payload, CreatedAt: now, UpdatedAt: now}.document()
}

// Update merges fields into the document matching filter and returns the updated document.
// The filter acts as a guard: when nothing matches, ErrDocumentNotFound is returned.
func (r *PostgresDocumentRepository) Update(ctx context.Context, collection string, filter models.Filter, fields models.Document) (models.Document, error) {
	defer observe(r.observer, "postgres.update", time.Now())
	return r.update(ctx, r.db, collection, filter, fields)
}

// Upsert merges doc into the document matching filter, inserting it when absent.
func (r *PostgresDocumentRepository) Upsert(ctx context.Context, collection string, filter models.Filter, doc models.Document) (models.Document, error) {
	defer observe(r.observer, "postgres.upsert", time.Now())
	table, err := tableName(collection)
	if err != nil {
		return nil, err
	}
	where, args, err := buildWhere(filter, nil)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin upsert %s: %w", collection, err)
	}
	defer tx.Rollback() //nolint:errcheck

	var id string
	err = tx.GetContext(ctx, &id, fmt.Sprintf("SELECT id FROM %s WHERE %s ORDER BY created_at DESC LIMIT 1 FOR UPDATE", table, where), args...)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lock %s: %w", collection, err)
	}

	var result models.Document
	if id != "" {
		result, err = r.update(ctx, tx, collection, models.Filter{models.FieldID: id}, doc)
	} else {
		result, err = r.insertTx(ctx, tx, collection, doc)
	}
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit upsert %s: %w", collection, err)
	}
	return result, nil
}

// DeleteAll empties a collection.
func (r *PostgresDocumentRepository) DeleteAll(ctx context.Context, collection string) error {
	defer observe(r.observer, "postgres.delete_all", time.Now())
	table, err := tableName(collection)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
		return fmt.Errorf("clear %s: %w", collection, err)
	}
	return nil
}

func (r *PostgresDocumentRepository) update(ctx context.Context, q sqlx.QueryerContext, collection string, filter models.Filter, fields models.Document) (models.Document, error) {
	table, err := tableName(collection)
	if err != nil {
		return nil, err
	}
	payload, err := encodeDocument(fields)
	if err != nil {
		return nil, err
	}
	where, args, err := buildWhere(filter, []interface{}{payload, time.Now().UTC()})
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("UPDATE %s SET doc = doc || $1::jsonb, updated_at = $2 WHERE %s RETURNING id, doc, created_at, updated_at", table, where)
	var row documentRow
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrDocumentNotFound
		}
		return nil, mapWriteError(err, "update "+collection)
	}
	return row.document()
}

func (r *PostgresDocumentRepository) insertTx(ctx context.Context, tx *sqlx.Tx, collection string, doc models.Document) (models.Document, error) {
	table, err := tableName(collection)
	if err != nil {
		return nil, err
	}
	payload, err := encodeDocument(doc)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	id := uuid.NewString()
	query := fmt.Sprintf("INSERT INTO %s (id, doc, created_at, updated_at) VALUES ($1, $2, $3, $4)", table)
	if _, err := tx.ExecContext(ctx, query, id, payload, now, now); err != nil {
		return nil, mapWriteError(err, "insert "+collection)
	}
	return documentRow{ID: id, Doc: payload, CreatedAt: now, UpdatedAt: now}.document()
}

func (row documentRow) document() (models.Document, error) {
	doc := models.Document{}
	if len(row.Doc) > 0 {
		if err := json.Unmarshal(row.Doc, &doc); err != nil {
			return nil, fmt.Errorf("decode document %s: %w", row.ID, err)
		}
	}
	doc[models.FieldID] = row.ID
	doc[models.FieldCreatedAt] = row.CreatedAt.UTC()
	doc[models.FieldUpdatedAt] = row.UpdatedAt.UTC()
	return doc, nil
}

func rowsToDocuments(rows []documentRow) ([]models.Document, error) {
	docs := make([]models.Document, 0, len(rows))
	for _, row := range rows {
		doc, err := row.document()
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// encodeDocument drops the fields kept in dedicated columns.
func encodeDocument(doc models.Document) (types.JSONText, error) {
	stored := doc.Clone()
	delete(stored, models.FieldID)
	delete(stored, models.FieldCreatedAt)
	delete(stored, models.FieldUpdatedAt)
	payload, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return types.JSONText(payload), nil
}

// buildWhere turns a filter into a predicate appended after args. Equality conditions
// become one containment test; ranges and substring matches read the field as text.
func buildWhere(filter models.Filter, args []interface{}) (string, []interface{}, error) {
	conditions := []string{"1=1"}
	contained := map[string]interface{}{}
	keys := make([]string, 0, len(filter))
	for key := range filter {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value := filter[key]
		if key == models.FieldID {
			conditions = append(conditions, fmt.Sprintf("id = $%d", len(args)+1))
			args = append(args, fmt.Sprint(value))
			continue
		}
		field := "doc->>" + pq.QuoteLiteral(key)
		switch v := value.(type) {
		case models.Range:
			if v.Min != nil {
				conditions = append(conditions, fmt.Sprintf("(%s)::numeric >= $%d", field, len(args)+1))
				args = append(args, *v.Min)
			}
			if v.Max != nil {
				conditions = append(conditions, fmt.Sprintf("(%s)::numeric <= $%d", field, len(args)+1))
				args = append(args, *v.Max)
			}
		case models.Contains:
			conditions = append(conditions, fmt.Sprintf("%s ILIKE $%d", field, len(args)+1))
			args = append(args, "%"+likeEscaper.Replace(string(v))+"%")
		default:
			contained[key] = value
		}
	}
	if len(contained) > 0 {
		payload, err := json.Marshal(contained)
		if err != nil {
			return "", nil, fmt.Errorf("encode filter: %w", err)
		}
		conditions = append(conditions, fmt.Sprintf("doc @> $%d::jsonb", len(args)+1))
		args = append(args, types.JSONText(payload))
	}
	return strings.Join(conditions, " AND "), args, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func tableName(collection string) (string, error) {
	if !models.IsCollection(collection) {
		return "", fmt.Errorf("unknown collection %q", collection)
	}
	return pq.QuoteIdentifier(collection), nil
}

func mapWriteError(err error, action string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return models.ErrDuplicateKey
	}
	return fmt.Errorf("%s: %w", action, err)
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

var (
	// ErrNotFound возвращается, когда запись отсутствует в базе
	ErrNotFound = errors.New("storage: not found")
)

// TemplateRow представляет сохраненный шаблон документа
type TemplateRow struct {
	ID        string
	Name      string
	Category  string
	Locale    string
	Body      []byte
	UpdatedAt time.Time
}

// RecordRow представляет запись проката (клиент, автомобиль, бронирование и т.д.)
type RecordRow struct {
	ID         string
	RecordType string
	Body       []byte
	UpdatedAt  time.Time
}

// PostgresDB представляет интерфейс для работы с PostgreSQL
type PostgresDB struct {
	connStr string
	db      *sql.DB
}

// NewPostgresDB создает новое подключение к PostgreSQL
func NewPostgresDB(host, port, dbname, user, password string) (*PostgresDB, error) {
	connStr := fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=disable",
		host, port, dbname, user, password)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Проверяем подключение
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	postgresDB := &PostgresDB{
		connStr: connStr,
		db:      db,
	}

	// Инициализируем схему базы данных
	if err := postgresDB.InitSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return postgresDB, nil
}

// InitSchema инициализирует схему базы данных
func (p *PostgresDB) InitSchema() error {
	_, err := p.db.Exec(`
		CREATE TABLE IF NOT EXISTS document_templates (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			locale TEXT NOT NULL DEFAULT 'fr',
			body JSONB NOT NULL,
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL
		);

		CREATE TABLE IF NOT EXISTS rental_records (
			id TEXT PRIMARY KEY,
			record_type TEXT NOT NULL,
			body JSONB NOT NULL,
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_document_templates_category ON document_templates(category);
		CREATE INDEX IF NOT EXISTS idx_rental_records_type ON rental_records(record_type);
	`)

	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SaveTemplate сохраняет шаблон (upsert по id)
func (p *PostgresDB) SaveTemplate(ctx context.Context, row TemplateRow) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO document_templates (id, name, category, locale, body, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			locale = EXCLUDED.locale,
			body = EXCLUDED.body,
			updated_at = EXCLUDED.updated_at`,
		row.ID, row.Name, row.Category, row.Locale, row.Body, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save template %s: %w", row.ID, err)
	}
	return nil
}

// LoadTemplate возвращает шаблон по id
func (p *PostgresDB) LoadTemplate(ctx context.Context, id string) (*TemplateRow, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT id, name, category, locale, body, updated_at
		FROM document_templates
		WHERE id = $1`, id)

	var t TemplateRow
	if err := row.Scan(&t.ID, &t.Name, &t.Category, &t.Locale, &t.Body, &t.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load template %s: %w", id, err)
	}
	return &t, nil
}

// ListTemplates возвращает все шаблоны (опционально по категории)
func (p *PostgresDB) ListTemplates(ctx context.Context, category string) ([]TemplateRow, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if category == "" {
		rows, err = p.db.QueryContext(ctx, `
			SELECT id, name, category, locale, body, updated_at
			FROM document_templates
			ORDER BY category, name`)
	} else {
		rows, err = p.db.QueryContext(ctx, `
			SELECT id, name, category, locale, body, updated_at
			FROM document_templates
			WHERE category = $1
			ORDER BY name`, category)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var out []TemplateRow
	for rows.Next() {
		var t TemplateRow
		if err := rows.Scan(&t.ID, &t.Name, &t.Category, &t.Locale, &t.Body, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan template row: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// DeleteTemplate удаляет шаблон по id
func (p *PostgresDB) DeleteTemplate(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM document_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete template %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveRecord сохраняет запись проката (upsert по id)
func (p *PostgresDB) SaveRecord(ctx context.Context, row RecordRow) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO rental_records (id, record_type, body, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			record_type = EXCLUDED.record_type,
			body = EXCLUDED.body,
			updated_at = EXCLUDED.updated_at`,
		row.ID, row.RecordType, row.Body, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save record %s: %w", row.ID, err)
	}
	return nil
}

// LoadRecord возвращает запись по id
func (p *PostgresDB) LoadRecord(ctx context.Context, id string) (*RecordRow, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT id, record_type, body, updated_at
		FROM rental_records
		WHERE id = $1`, id)

	var r RecordRow
	if err := row.Scan(&r.ID, &r.RecordType, &r.Body, &r.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load record %s: %w", id, err)
	}
	return &r, nil
}

// ListRecords возвращает записи указанного типа
func (p *PostgresDB) ListRecords(ctx context.Context, recordType string) ([]RecordRow, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, record_type, body, updated_at
		FROM rental_records
		WHERE record_type = $1
		ORDER BY updated_at DESC`, recordType)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var out []RecordRow
	for rows.Next() {
		var r RecordRow
		if err := rows.Scan(&r.ID, &r.RecordType, &r.Body, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeleteRecord удаляет запись по id
func (p *PostgresDB) DeleteRecord(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM rental_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete record %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close закрывает соединение с базой данных
func (p *PostgresDB) Close() error {
	return p.db.Close()
}

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"tra-stations/models"
	"tra-stations/utils"
)

const stationColumns = 6

// PostgresWriter upserts joined stations into PostgreSQL.
type PostgresWriter struct {
	db       *sql.DB
	keyField string
	timeout  time.Duration
}

// NewPostgresWriter opens a connection to PostgreSQL, retrying the ping
// with back-off, runs schema migrations, and returns a ready-to-use writer.
func NewPostgresWriter(ctx context.Context, dsn, keyField string, timeout time.Duration, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	err = retry.Do(ctx, "postgres-ping", func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return db.PingContext(pingCtx)
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	pw := &PostgresWriter{db: db, keyField: keyField, timeout: timeout}
	if err := pw.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pw.timeout)
	defer cancel()

	_, err := pw.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS stations (
			name        TEXT             PRIMARY KEY,
			tm2_x       DOUBLE PRECISION,
			tm2_y       DOUBLE PRECISION,
			latitude    DOUBLE PRECISION,
			longitude   DOUBLE PRECISION,
			attributes  JSONB            NOT NULL DEFAULT '{}',
			updated_at  TIMESTAMPTZ      NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_stations_latlon ON stations(latitude, longitude);
	`)
	return err
}

func (pw *PostgresWriter) Name() string { return "postgres" }

// Write upserts every record in batches of 50.
func (pw *PostgresWriter) Write(rs *models.RecordSet) error {
	if err := pw.write(rs); err != nil {
		return &models.SerializationError{Format: pw.Name(), Path: "stations", Err: err}
	}
	return nil
}

func (pw *PostgresWriter) write(rs *models.RecordSet) error {
	if rs.Len() == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), pw.timeout)
	defer cancel()

	tx, err := pw.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const batchSize = 50
	for i := 0; i < rs.Len(); i += batchSize {
		end := i + batchSize
		if end > rs.Len() {
			end = rs.Len()
		}
		query, args, err := buildUpsert(rs.Records[i:end], pw.keyField)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("postgres: upsert batch at %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// buildUpsert renders a multi-row INSERT ... ON CONFLICT statement.
func buildUpsert(batch []*models.Record, keyField string) (string, []any, error) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*stationColumns)

	for idx, rec := range batch {
		attrs, err := attributes(rec, keyField)
		if err != nil {
			return "", nil, err
		}

		base := idx * stationColumns
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6))
		valueArgs = append(valueArgs,
			rec.Get(keyField).String(),
			nullFloat(rec.Get(models.FieldTM2X)),
			nullFloat(rec.Get(models.FieldTM2Y)),
			nullFloat(rec.Get(models.FieldLatitude)),
			nullFloat(rec.Get(models.FieldLongitude)),
			attrs,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO stations (name, tm2_x, tm2_y, latitude, longitude, attributes)
		VALUES %s
		ON CONFLICT (name) DO UPDATE SET
			tm2_x      = EXCLUDED.tm2_x,
			tm2_y      = EXCLUDED.tm2_y,
			latitude   = EXCLUDED.latitude,
			longitude  = EXCLUDED.longitude,
			attributes = EXCLUDED.attributes,
			updated_at = NOW()
	`, strings.Join(valueStrings, ","))

	return query, valueArgs, nil
}

// attributes encodes every field except the key and derived coordinates.
func attributes(rec *models.Record, keyField string) (string, error) {
	attrs := models.NewRecord()
	for _, f := range rec.Fields() {
		switch f {
		case keyField, models.FieldTM2X, models.FieldTM2Y, models.FieldLatitude, models.FieldLongitude:
			continue
		}
		attrs.Set(f, rec.Get(f))
	}
	b, err := json.Marshal(attrs)
	if err != nil {
		return "", fmt.Errorf("postgres: encode attributes: %w", err)
	}
	return string(b), nil
}

func nullFloat(v models.Value) sql.NullFloat64 {
	n, ok := v.AsNumber()
	return sql.NullFloat64{Float64: n, Valid: ok}
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves the stored station names and coordinates ordered by name.
func (pw *PostgresWriter) FetchAll(ctx context.Context) (*models.RecordSet, error) {
	ctx, cancel := context.WithTimeout(ctx, pw.timeout)
	defer cancel()

	rows, err := pw.db.QueryContext(ctx, `
		SELECT name, tm2_x, tm2_y, latitude, longitude
		FROM stations
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	rs := models.NewRecordSet([]string{pw.keyField,
		models.FieldTM2X, models.FieldTM2Y, models.FieldLatitude, models.FieldLongitude})
	for rows.Next() {
		var name string
		var x, y, lat, lon sql.NullFloat64
		if err := rows.Scan(&name, &x, &y, &lat, &lon); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		rec := models.NewRecord()
		rec.Set(pw.keyField, models.TextValue(name))
		rec.Set(models.FieldTM2X, fromNull(x))
		rec.Set(models.FieldTM2Y, fromNull(y))
		rec.Set(models.FieldLatitude, fromNull(lat))
		rec.Set(models.FieldLongitude, fromNull(lon))
		rs.Records = append(rs.Records, rec)
	}
	return rs, rows.Err()
}

func fromNull(n sql.NullFloat64) models.Value {
	if !n.Valid {
		return models.MissingValue()
	}
	return models.NumberValue(n.Float64)
}

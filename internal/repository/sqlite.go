package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/coastalwatch/hazard-engine/internal/models"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating to database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS alerts (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			severity TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			region TEXT NOT NULL,
			state TEXT NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			prediction_data BLOB,
			ml_prediction REAL NOT NULL,
			threshold_met INTEGER NOT NULL,
			auto_generated INTEGER NOT NULL,
			status TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			reviewed_by TEXT,
			review_notes TEXT,
			approved_at DATETIME
		);

		CREATE INDEX IF NOT EXISTS idx_alerts_dedup ON alerts(type, region, state, created_at);
		CREATE INDEX IF NOT EXISTS idx_alerts_status ON alerts(status);
		CREATE INDEX IF NOT EXISTS idx_alerts_created_at ON alerts(created_at);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

const alertColumns = `id, type, severity, title, description, region, state,
	latitude, longitude, prediction_data, ml_prediction, threshold_met,
	auto_generated, status, created_at, reviewed_by, review_notes, approved_at`

func (s *SQLiteDB) Add(ctx context.Context, a *models.Alert) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO alerts (`+alertColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, string(a.Type), string(a.Severity), a.Title, a.Description,
		a.Region, a.State, a.Latitude, a.Longitude, []byte(a.PredictionData),
		a.MLPrediction, a.ThresholdMet, a.AutoGenerated, string(a.Status),
		a.CreatedAt, a.ReviewedBy, a.ReviewNotes, a.ApprovedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting alert: %w", err)
	}
	return nil
}

func (s *SQLiteDB) GetByID(ctx context.Context, id string) (*models.Alert, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+alertColumns+` FROM alerts WHERE id = ?`, id)

	a, err := scanAlert(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error scanning alert: %w", err)
	}
	return a, nil
}

func (s *SQLiteDB) FindRecent(ctx context.Context, t models.HazardType, region, state string, since time.Time) (*models.Alert, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+alertColumns+` FROM alerts
		WHERE type = ? AND region = ? AND state = ? AND created_at >= ?
		ORDER BY created_at DESC
		LIMIT 1`,
		string(t), region, state, since)

	a, err := scanAlert(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error scanning recent alert: %w", err)
	}
	return a, nil
}

func (s *SQLiteDB) List(ctx context.Context, opts Filter) ([]models.Alert, error) {
	where, args := buildWhere(opts)

	query := `SELECT ` + alertColumns + ` FROM alerts` + where + ` ORDER BY created_at DESC`
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
		if opts.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", opts.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing alerts: %w", err)
	}
	defer rows.Close()

	var alerts []models.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning alert row: %w", err)
		}
		alerts = append(alerts, *a)
	}
	return alerts, rows.Err()
}

func (s *SQLiteDB) Count(ctx context.Context, opts Filter) (int, error) {
	where, args := buildWhere(opts)

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM alerts`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting alerts: %w", err)
	}
	return count, nil
}

func (s *SQLiteDB) CountByType(ctx context.Context, opts Filter) (map[models.HazardType]int, error) {
	where, args := buildWhere(opts)

	rows, err := s.db.QueryContext(ctx,
		`SELECT type, COUNT(*) FROM alerts`+where+` GROUP BY type`, args...)
	if err != nil {
		return nil, fmt.Errorf("error grouping alerts by type: %w", err)
	}
	defer rows.Close()

	out := make(map[models.HazardType]int)
	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, err
		}
		out[models.HazardType(t)] = n
	}
	return out, rows.Err()
}

func (s *SQLiteDB) CountBySeverity(ctx context.Context, opts Filter) (map[models.AlertSeverity]int, error) {
	where, args := buildWhere(opts)

	rows, err := s.db.QueryContext(ctx,
		`SELECT severity, COUNT(*) FROM alerts`+where+` GROUP BY severity`, args...)
	if err != nil {
		return nil, fmt.Errorf("error grouping alerts by severity: %w", err)
	}
	defer rows.Close()

	out := make(map[models.AlertSeverity]int)
	for rows.Next() {
		var sev string
		var n int
		if err := rows.Scan(&sev, &n); err != nil {
			return nil, err
		}
		out[models.AlertSeverity(sev)] = n
	}
	return out, rows.Err()
}

func (s *SQLiteDB) UpdateReview(ctx context.Context, id string, upd ReviewUpdate) (*models.Alert, error) {
	var approvedAt *time.Time
	if upd.Status == models.StatusApproved {
		now := time.Now().UTC()
		approvedAt = &now
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE alerts
		SET status = ?,
			reviewed_by = COALESCE(?, reviewed_by),
			review_notes = COALESCE(?, review_notes),
			approved_at = COALESCE(?, approved_at)
		WHERE id = ?`,
		string(upd.Status), upd.ReviewedBy, upd.ReviewNotes, approvedAt, id)
	if err != nil {
		return nil, fmt.Errorf("error updating alert review: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return s.GetByID(ctx, id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAlert(row scanner) (*models.Alert, error) {
	var (
		a           models.Alert
		typ, sev    string
		status      string
		data        []byte
		reviewedBy  sql.NullString
		reviewNotes sql.NullString
		approvedAt  sql.NullTime
	)
	err := row.Scan(
		&a.ID, &typ, &sev, &a.Title, &a.Description, &a.Region, &a.State,
		&a.Latitude, &a.Longitude, &data, &a.MLPrediction, &a.ThresholdMet,
		&a.AutoGenerated, &status, &a.CreatedAt, &reviewedBy, &reviewNotes,
		&approvedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Type = models.HazardType(typ)
	a.Severity = models.AlertSeverity(sev)
	a.Status = models.AlertStatus(status)
	a.PredictionData = data
	if reviewedBy.Valid {
		a.ReviewedBy = &reviewedBy.String
	}
	if reviewNotes.Valid {
		a.ReviewNotes = &reviewNotes.String
	}
	if approvedAt.Valid {
		a.ApprovedAt = &approvedAt.Time
	}
	return &a, nil
}

func buildWhere(opts Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if opts.Type != nil {
		conds = append(conds, "type = ?")
		args = append(args, string(*opts.Type))
	}
	if opts.Severity != nil {
		conds = append(conds, "severity = ?")
		args = append(args, string(*opts.Severity))
	}
	if opts.MinSeverity != nil {
		levels := severitiesAtLeast(*opts.MinSeverity)
		placeholders := strings.Repeat("?, ", len(levels))
		conds = append(conds, "severity IN ("+placeholders[:len(placeholders)-2]+")")
		for _, l := range levels {
			args = append(args, string(l))
		}
	}
	if opts.Status != nil {
		conds = append(conds, "status = ?")
		args = append(args, string(*opts.Status))
	}
	if opts.Region != nil {
		conds = append(conds, "region = ?")
		args = append(args, *opts.Region)
	}
	if opts.Since != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, *opts.Since)
	}
	if opts.AutoGenerated != nil {
		conds = append(conds, "auto_generated = ?")
		args = append(args, *opts.AutoGenerated)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func severitiesAtLeast(min models.AlertSeverity) []models.AlertSeverity {
	all := []models.AlertSeverity{
		models.SeverityLow,
		models.SeverityModerate,
		models.SeverityHigh,
		models.SeverityExtreme,
	}
	var out []models.AlertSeverity
	for _, s := range all {
		if s.Rank() >= min.Rank() {
			out = append(out, s)
		}
	}
	return out
}

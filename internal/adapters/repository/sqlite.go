package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/okian/scoutdesk/internal/domain/model"
	"github.com/okian/scoutdesk/pkg/logger"
)

// Fixed width and UTC so that TEXT ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const schema = `
CREATE TABLE IF NOT EXISTS players (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	club        TEXT NOT NULL,
	positions   TEXT NOT NULL DEFAULT '[]',
	age         INTEGER,
	rating      REAL,
	potential   REAL,
	nationality TEXT NOT NULL DEFAULT '',
	created_at  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS scouts (
	id         TEXT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL,
	email      TEXT NOT NULL,
	role       TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS assignments (
	id          TEXT PRIMARY KEY,
	player_id   TEXT NOT NULL,
	scout_id    TEXT NOT NULL,
	assigned_by TEXT NOT NULL DEFAULT '',
	priority    TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL,
	deadline    TEXT,
	notes       TEXT NOT NULL DEFAULT '',
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL,
	UNIQUE (player_id, scout_id)
);
CREATE INDEX IF NOT EXISTS assignments_scout ON assignments (scout_id);
CREATE TABLE IF NOT EXISTS reports (
	id                 TEXT PRIMARY KEY,
	player_id          TEXT NOT NULL,
	scout_id           TEXT NOT NULL,
	status             TEXT NOT NULL,
	summary            TEXT NOT NULL DEFAULT '',
	verdict            TEXT NOT NULL DEFAULT '',
	performance_rating INTEGER,
	created_at         TEXT NOT NULL,
	updated_at         TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS reports_pair ON reports (player_id, scout_id);
CREATE TABLE IF NOT EXISTS shortlists (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	is_scouting_list INTEGER NOT NULL DEFAULT 0,
	created_at       TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS shortlists_single_scouting
	ON shortlists (is_scouting_list) WHERE is_scouting_list = 1;
CREATE TABLE IF NOT EXISTS shortlist_entries (
	shortlist_id TEXT NOT NULL,
	player_id    TEXT NOT NULL,
	added_at     TEXT NOT NULL,
	PRIMARY KEY (shortlist_id, player_id)
);
`

// SQLiteStore is a Store backed by a SQLite database file.
type SQLiteStore struct {
	db   *sql.DB
	path string
	log  logger.Logger
}

// NewSQLiteStore opens (creating if needed) the database at path and
// applies the schema.
func NewSQLiteStore(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(o.maxOpenConns)

	s := &SQLiteStore{db: db, path: path, log: o.log}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if s.log != nil {
		s.log.Info(ctx, "sqlite store ready", logger.String("path", path))
	}
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;"); err != nil {
		return fmt.Errorf("sqlite pragmas: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("sqlite schema: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func parseTime(v string) (time.Time, error) {
	return time.Parse(timeLayout, v)
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

// mapErr turns driver constraint violations into ErrConflict.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %w", ErrConflict, err)
		}
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

// Players

const playerColumns = `id, name, club, positions, age, rating, potential, nationality, created_at`

func (s *SQLiteStore) CreatePlayer(ctx context.Context, p model.Player) error {
	positions, err := json.Marshal(nonNil(p.Positions))
	if err != nil {
		return fmt.Errorf("encode positions: %w", err)
	}
	var age sql.NullInt64
	if p.Age != nil {
		age = sql.NullInt64{Int64: int64(*p.Age), Valid: true}
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO players (`+playerColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Club, string(positions), age, nullFloat(p.Rating), nullFloat(p.Potential),
		p.Nationality, formatTime(p.CreatedAt))
	return mapErr(err)
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func scanPlayer(row scanner) (model.Player, error) {
	var (
		p                 model.Player
		positions, at     string
		age               sql.NullInt64
		rating, potential sql.NullFloat64
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Club, &positions, &age, &rating, &potential, &p.Nationality, &at); err != nil {
		return model.Player{}, err
	}
	if err := json.Unmarshal([]byte(positions), &p.Positions); err != nil {
		return model.Player{}, fmt.Errorf("decode positions of %s: %w", p.ID, err)
	}
	if age.Valid {
		v := int(age.Int64)
		p.Age = &v
	}
	if rating.Valid {
		p.Rating = &rating.Float64
	}
	if potential.Valid {
		p.Potential = &potential.Float64
	}
	var err error
	p.CreatedAt, err = parseTime(at)
	return p, err
}

func (s *SQLiteStore) GetPlayer(ctx context.Context, id string) (model.Player, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+playerColumns+` FROM players WHERE id = ?`, id)
	p, err := scanPlayer(row)
	return p, mapErr(err)
}

func (s *SQLiteStore) ListPlayers(ctx context.Context, q PlayerQuery) ([]model.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players`
	var args []any
	if needle := strings.ToLower(strings.TrimSpace(q.Search)); needle != "" {
		query += ` WHERE instr(lower(name), ?) > 0 OR instr(lower(club), ?) > 0`
		args = append(args, needle, needle)
	}
	query += ` ORDER BY created_at, id`
	return queryAll(ctx, s.db, scanPlayer, query, args...)
}

func queryAll[T any](ctx context.Context, db *sql.DB, scan func(scanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Scouts

const scoutColumns = `id, first_name, last_name, email, role, created_at`

func (s *SQLiteStore) CreateScout(ctx context.Context, sc model.Scout) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scouts (`+scoutColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		sc.ID, sc.FirstName, sc.LastName, sc.Email, string(sc.Role), formatTime(sc.CreatedAt))
	return mapErr(err)
}

func scanScout(row scanner) (model.Scout, error) {
	var (
		sc       model.Scout
		role, at string
	)
	if err := row.Scan(&sc.ID, &sc.FirstName, &sc.LastName, &sc.Email, &role, &at); err != nil {
		return model.Scout{}, err
	}
	sc.Role = model.Role(role)
	var err error
	sc.CreatedAt, err = parseTime(at)
	return sc, err
}

func (s *SQLiteStore) GetScout(ctx context.Context, id string) (model.Scout, error) {
	sc, err := scanScout(s.db.QueryRowContext(ctx, `SELECT `+scoutColumns+` FROM scouts WHERE id = ?`, id))
	return sc, mapErr(err)
}

func (s *SQLiteStore) ListScouts(ctx context.Context) ([]model.Scout, error) {
	return queryAll(ctx, s.db, scanScout, `SELECT `+scoutColumns+` FROM scouts ORDER BY created_at, id`)
}

// Assignments

const assignmentColumns = `id, player_id, scout_id, assigned_by, priority, status, deadline, notes, created_at, updated_at`

func (s *SQLiteStore) CreateAssignment(ctx context.Context, a model.Assignment) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assignments (`+assignmentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.PlayerID, a.ScoutID, a.AssignedByID, string(a.Priority), string(a.Status),
		nullTime(a.Deadline), a.Notes, formatTime(a.CreatedAt), formatTime(a.UpdatedAt))
	return mapErr(err)
}

func scanAssignment(row scanner) (model.Assignment, error) {
	var (
		a                    model.Assignment
		priority, status     string
		deadline             sql.NullString
		createdAt, updatedAt string
	)
	if err := row.Scan(&a.ID, &a.PlayerID, &a.ScoutID, &a.AssignedByID, &priority, &status,
		&deadline, &a.Notes, &createdAt, &updatedAt); err != nil {
		return model.Assignment{}, err
	}
	a.Priority = model.Priority(priority)
	a.Status = model.AssignmentStatus(status)
	if deadline.Valid {
		d, err := parseTime(deadline.String)
		if err != nil {
			return model.Assignment{}, err
		}
		a.Deadline = &d
	}
	var err error
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Assignment{}, err
	}
	a.UpdatedAt, err = parseTime(updatedAt)
	return a, err
}

func (s *SQLiteStore) GetAssignment(ctx context.Context, id string) (model.Assignment, error) {
	a, err := scanAssignment(s.db.QueryRowContext(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE id = ?`, id))
	return a, mapErr(err)
}

func (s *SQLiteStore) ListAssignments(ctx context.Context, q AssignmentQuery) ([]model.Assignment, error) {
	return queryAll(ctx, s.db, scanAssignment,
		`SELECT `+assignmentColumns+` FROM assignments
		 WHERE (? = '' OR scout_id = ?) AND (? = '' OR player_id = ?)
		 ORDER BY created_at, id`,
		q.ScoutID, q.ScoutID, q.PlayerID, q.PlayerID)
}

func (s *SQLiteStore) UpdateAssignment(ctx context.Context, id string, u AssignmentUpdate) (model.Assignment, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Assignment{}, err
	}
	defer func() { _ = tx.Rollback() }()

	a, err := scanAssignment(tx.QueryRowContext(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE id = ?`, id))
	if err != nil {
		return model.Assignment{}, mapErr(err)
	}
	a = applyUpdate(a, u)
	if _, err := tx.ExecContext(ctx,
		`UPDATE assignments SET priority = ?, status = ?, deadline = ?, notes = ?, updated_at = ? WHERE id = ?`,
		string(a.Priority), string(a.Status), nullTime(a.Deadline), a.Notes, formatTime(a.UpdatedAt), id); err != nil {
		return model.Assignment{}, mapErr(err)
	}
	return a, tx.Commit()
}

func (s *SQLiteStore) DeleteAssignment(ctx context.Context, id string) error {
	return s.execOne(ctx, `DELETE FROM assignments WHERE id = ?`, id)
}

// execOne runs a statement that must touch exactly one row.
func (s *SQLiteStore) execOne(ctx context.Context, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Reports

const reportColumns = `id, player_id, scout_id, status, summary, verdict, performance_rating, created_at, updated_at`

func (s *SQLiteStore) CreateReport(ctx context.Context, r model.Report) error {
	var rating sql.NullInt64
	if r.PerformanceRating != nil {
		rating = sql.NullInt64{Int64: int64(*r.PerformanceRating), Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reports (`+reportColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.PlayerID, r.ScoutID, string(r.Status), r.Summary, r.Verdict, rating,
		formatTime(r.CreatedAt), formatTime(r.UpdatedAt))
	return mapErr(err)
}

func scanReport(row scanner) (model.Report, error) {
	var (
		r                    model.Report
		status               string
		rating               sql.NullInt64
		createdAt, updatedAt string
	)
	if err := row.Scan(&r.ID, &r.PlayerID, &r.ScoutID, &status, &r.Summary, &r.Verdict, &rating,
		&createdAt, &updatedAt); err != nil {
		return model.Report{}, err
	}
	r.Status = model.ReportStatus(status)
	if rating.Valid {
		v := int(rating.Int64)
		r.PerformanceRating = &v
	}
	var err error
	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Report{}, err
	}
	r.UpdatedAt, err = parseTime(updatedAt)
	return r, err
}

func (s *SQLiteStore) ListReports(ctx context.Context, q ReportQuery) ([]model.Report, error) {
	return queryAll(ctx, s.db, scanReport,
		`SELECT `+reportColumns+` FROM reports
		 WHERE (? = '' OR scout_id = ?) AND (? = '' OR player_id = ?)
		 ORDER BY created_at, id`,
		q.ScoutID, q.ScoutID, q.PlayerID, q.PlayerID)
}

// Shortlists

const shortlistColumns = `id, name, description, is_scouting_list, created_at`

func (s *SQLiteStore) CreateShortlist(ctx context.Context, sl model.Shortlist) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO shortlists (`+shortlistColumns+`) VALUES (?, ?, ?, ?, ?)`,
		sl.ID, sl.Name, sl.Description, boolInt(sl.IsScoutingAssignmentList), formatTime(sl.CreatedAt))
	return mapErr(err)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func scanShortlist(row scanner) (model.Shortlist, error) {
	var (
		sl model.Shortlist
		at string
	)
	if err := row.Scan(&sl.ID, &sl.Name, &sl.Description, &sl.IsScoutingAssignmentList, &at); err != nil {
		return model.Shortlist{}, err
	}
	var err error
	sl.CreatedAt, err = parseTime(at)
	return sl, err
}

func (s *SQLiteStore) GetShortlist(ctx context.Context, id string) (model.Shortlist, error) {
	sl, err := scanShortlist(s.db.QueryRowContext(ctx,
		`SELECT `+shortlistColumns+` FROM shortlists WHERE id = ?`, id))
	return sl, mapErr(err)
}

func (s *SQLiteStore) ListShortlists(ctx context.Context) ([]model.Shortlist, error) {
	return queryAll(ctx, s.db, scanShortlist,
		`SELECT `+shortlistColumns+` FROM shortlists ORDER BY created_at, id`)
}

func (s *SQLiteStore) EnsureScoutingList(ctx context.Context, candidate model.Shortlist) (model.Shortlist, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Shortlist{}, err
	}
	defer func() { _ = tx.Rollback() }()

	sl, err := scanShortlist(tx.QueryRowContext(ctx,
		`SELECT `+shortlistColumns+` FROM shortlists WHERE is_scouting_list = 1`))
	switch {
	case err == nil:
		return sl, tx.Commit()
	case !errors.Is(err, sql.ErrNoRows):
		return model.Shortlist{}, err
	}
	candidate.IsScoutingAssignmentList = true
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO shortlists (`+shortlistColumns+`) VALUES (?, ?, ?, 1, ?)`,
		candidate.ID, candidate.Name, candidate.Description, formatTime(candidate.CreatedAt)); err != nil {
		return model.Shortlist{}, mapErr(err)
	}
	return candidate, tx.Commit()
}

func (s *SQLiteStore) shortlistExists(ctx context.Context, id string) error {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM shortlists WHERE id = ?`, id).Scan(&one)
	return mapErr(err)
}

func (s *SQLiteStore) AddToShortlist(ctx context.Context, e model.ShortlistEntry) error {
	if err := s.shortlistExists(ctx, e.ShortlistID); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO shortlist_entries (shortlist_id, player_id, added_at) VALUES (?, ?, ?)`,
		e.ShortlistID, e.PlayerID, formatTime(e.AddedAt))
	return mapErr(err)
}

func (s *SQLiteStore) RemoveFromShortlist(ctx context.Context, shortlistID, playerID string) error {
	return s.execOne(ctx,
		`DELETE FROM shortlist_entries WHERE shortlist_id = ? AND player_id = ?`, shortlistID, playerID)
}

func (s *SQLiteStore) ListShortlistEntries(ctx context.Context, shortlistID string) ([]model.ShortlistEntry, error) {
	if err := s.shortlistExists(ctx, shortlistID); err != nil {
		return nil, err
	}
	return queryAll(ctx, s.db, func(row scanner) (model.ShortlistEntry, error) {
		var (
			e  model.ShortlistEntry
			at string
		)
		if err := row.Scan(&e.ShortlistID, &e.PlayerID, &at); err != nil {
			return model.ShortlistEntry{}, err
		}
		var err error
		e.AddedAt, err = parseTime(at)
		return e, err
	}, `SELECT shortlist_id, player_id, added_at FROM shortlist_entries
	    WHERE shortlist_id = ? ORDER BY added_at, player_id`, shortlistID)
}

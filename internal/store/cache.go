// Package store provides a SQLite-backed cache of fetched rooms, designs,
// and Vastu reports, plus the local upload log. It lets lists render
// instantly and keeps the last fetched state available offline.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/grihastudio/griha/internal/compass"
	"github.com/grihastudio/griha/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache provides SQLite-backed caching.
type Cache struct {
	db *sql.DB
}

// DefaultPath returns the XDG-compliant cache database path.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "griha", "cache.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "griha", "cache.db")
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// SaveRooms replaces the cached copy of each room.
func (c *Cache) SaveRooms(rooms []model.Room) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, r := range rooms {
		_, err = tx.Exec(`INSERT OR REPLACE INTO rooms
			(room_id, name, room_type, facing_angle, wall_north, wall_east,
			 wall_south, wall_west, image_url, status, created_at, updated_at, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Name, r.RoomType, r.FacingAngle,
			string(r.WallMapping.North), string(r.WallMapping.East),
			string(r.WallMapping.South), string(r.WallMapping.West),
			r.ImageURL, r.Status, timeStr(r.CreatedAt), timeStr(r.UpdatedAt), now,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadRooms reads all cached rooms, newest first.
func (c *Cache) LoadRooms() ([]model.Room, error) {
	rows, err := c.db.Query(`SELECT
		room_id, name, room_type, facing_angle, wall_north, wall_east,
		wall_south, wall_west, image_url, status, created_at, updated_at
		FROM rooms ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var rooms []model.Room
	for rows.Next() {
		var r model.Room
		var n, e, s, w sql.NullString
		var imageURL, status, createdStr, updatedStr sql.NullString

		err := rows.Scan(&r.ID, &r.Name, &r.RoomType, &r.FacingAngle,
			&n, &e, &s, &w, &imageURL, &status, &createdStr, &updatedStr)
		if err != nil {
			return nil, err
		}

		r.WallMapping = compass.Mapping{
			North: compass.Cardinal(n.String),
			East:  compass.Cardinal(e.String),
			South: compass.Cardinal(s.String),
			West:  compass.Cardinal(w.String),
		}
		r.ImageURL = imageURL.String
		r.Status = status.String
		r.CreatedAt = parseTime(createdStr)
		r.UpdatedAt = parseTime(updatedStr)
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

// SaveDesigns replaces the cached copy of each design.
func (c *Cache) SaveDesigns(designs []model.Design) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, d := range designs {
		_, err = tx.Exec(`INSERT OR REPLACE INTO designs
			(design_id, room_id, style, palette, image_url, thumbnail_url,
			 estimated_usd, created_at, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			d.ID, d.RoomID, d.Style, d.Palette, d.ImageURL, d.ThumbnailURL,
			d.EstimatedUSD, timeStr(d.CreatedAt), now,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadDesigns reads cached designs, newest first. An empty roomID loads
// designs for every room.
func (c *Cache) LoadDesigns(roomID string) ([]model.Design, error) {
	query := `SELECT design_id, room_id, style, palette, image_url,
		thumbnail_url, estimated_usd, created_at FROM designs`
	args := []any{}
	if roomID != "" {
		query += " WHERE room_id = ?"
		args = append(args, roomID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var designs []model.Design
	for rows.Next() {
		var d model.Design
		var palette, imageURL, thumbURL, createdStr sql.NullString
		var est sql.NullFloat64

		err := rows.Scan(&d.ID, &d.RoomID, &d.Style, &palette, &imageURL,
			&thumbURL, &est, &createdStr)
		if err != nil {
			return nil, err
		}
		d.Palette = palette.String
		d.ImageURL = imageURL.String
		d.ThumbnailURL = thumbURL.String
		d.EstimatedUSD = est.Float64
		d.CreatedAt = parseTime(createdStr)
		designs = append(designs, d)
	}
	return designs, rows.Err()
}

// SaveVastuReport replaces the cached report and its zones for a room.
func (c *Cache) SaveVastuReport(rep model.VastuReport) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	remedies, err := json.Marshal(rep.Remedies)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.Exec(`INSERT OR REPLACE INTO vastu_reports
		(room_id, score, grade, facing, summary, remedies_json, computed_at, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rep.RoomID, rep.Score, rep.Grade, rep.Facing, rep.Summary,
		string(remedies), timeStr(rep.ComputedAt), now,
	)
	if err != nil {
		return err
	}

	if _, err = tx.Exec("DELETE FROM vastu_zones WHERE room_id = ?", rep.RoomID); err != nil {
		return err
	}
	for _, z := range rep.Zones {
		_, err = tx.Exec(`INSERT INTO vastu_zones
			(room_id, zone, element, score, verdict, advice)
			VALUES (?, ?, ?, ?, ?, ?)`,
			rep.RoomID, z.Zone, z.Element, z.Score, z.Verdict, z.Advice,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadVastuReport reads the cached report for a room. Returns nil when the
// room has no cached report.
func (c *Cache) LoadVastuReport(roomID string) (*model.VastuReport, error) {
	var rep model.VastuReport
	var remediesJSON, computedStr sql.NullString

	err := c.db.QueryRow(`SELECT room_id, score, grade, facing, summary,
		remedies_json, computed_at FROM vastu_reports WHERE room_id = ?`, roomID).
		Scan(&rep.RoomID, &rep.Score, &rep.Grade, &rep.Facing, &rep.Summary,
			&remediesJSON, &computedStr)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if remediesJSON.Valid && remediesJSON.String != "" {
		_ = json.Unmarshal([]byte(remediesJSON.String), &rep.Remedies)
	}
	rep.ComputedAt = parseTime(computedStr)

	rows, err := c.db.Query(`SELECT zone, element, score, verdict, advice
		FROM vastu_zones WHERE room_id = ? ORDER BY zone`, roomID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var z model.VastuZone
		var element, verdict, advice sql.NullString
		if err := rows.Scan(&z.Zone, &element, &z.Score, &verdict, &advice); err != nil {
			return nil, err
		}
		z.Element = element.String
		z.Verdict = verdict.String
		z.Advice = advice.String
		rep.Zones = append(rep.Zones, z)
	}
	return &rep, rows.Err()
}

// LogUpload records a completed upload in the local log.
func (c *Cache) LogUpload(rec model.UploadRecord) error {
	confirmed := 0
	if rec.Confirmed {
		confirmed = 1
	}
	_, err := c.db.Exec(`INSERT OR REPLACE INTO uploads
		(upload_ref, room_id, file_path, facing_angle, confirmed, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Ref, rec.RoomID, rec.FilePath, rec.FacingAngle, confirmed,
		rec.UploadedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// RecentUploads reads the latest entries from the upload log.
func (c *Cache) RecentUploads(limit int) ([]model.UploadRecord, error) {
	rows, err := c.db.Query(`SELECT upload_ref, room_id, file_path,
		facing_angle, confirmed, uploaded_at
		FROM uploads ORDER BY uploaded_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var recs []model.UploadRecord
	for rows.Next() {
		var rec model.UploadRecord
		var roomID, uploadedStr sql.NullString
		var confirmed int
		if err := rows.Scan(&rec.Ref, &roomID, &rec.FilePath, &rec.FacingAngle, &confirmed, &uploadedStr); err != nil {
			return nil, err
		}
		rec.RoomID = roomID.String
		rec.Confirmed = confirmed != 0
		rec.UploadedAt = parseTime(uploadedStr)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// RoomCount returns the number of cached rooms.
func (c *Cache) RoomCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM rooms").Scan(&count)
	return count, err
}

// LastRefresh returns the most recent fetch time across cached rooms, or
// the zero time for an empty cache.
func (c *Cache) LastRefresh() (time.Time, error) {
	var fetched sql.NullString
	err := c.db.QueryRow("SELECT MAX(fetched_at) FROM rooms").Scan(&fetched)
	if err != nil {
		return time.Time{}, err
	}
	return parseTime(fetched), nil
}

func timeStr(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, _ := time.Parse(time.RFC3339, s.String)
	return t
}

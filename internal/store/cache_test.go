package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/grihastudio/griha/internal/compass"
	"github.com/grihastudio/griha/internal/model"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRoomsRoundTrip(t *testing.T) {
	c := newTestCache(t)

	rooms := []model.Room{
		{
			ID:          "room-old",
			Name:        "kitchen",
			RoomType:    "kitchen",
			FacingAngle: 180,
			WallMapping: compass.MapDirections(180),
			Status:      "ready",
			CreatedAt:   time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:          "room-new",
			Name:        "master bedroom",
			RoomType:    "bedroom",
			FacingAngle: 90,
			WallMapping: compass.MapDirections(90),
			ImageURL:    "https://cdn.example.com/r2.jpg",
			Status:      "ready",
			CreatedAt:   time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
		},
	}
	if err := c.SaveRooms(rooms); err != nil {
		t.Fatalf("SaveRooms: %v", err)
	}

	loaded, err := c.LoadRooms()
	if err != nil {
		t.Fatalf("LoadRooms: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("got %d rooms, want 2", len(loaded))
	}
	if loaded[0].ID != "room-new" {
		t.Errorf("newest room first: got %q", loaded[0].ID)
	}
	want := compass.Mapping{North: compass.West, East: compass.North, South: compass.East, West: compass.South}
	if loaded[0].WallMapping != want {
		t.Errorf("wall mapping = %+v, want %+v", loaded[0].WallMapping, want)
	}
	if !loaded[0].CreatedAt.Equal(rooms[1].CreatedAt) {
		t.Errorf("created_at = %v, want %v", loaded[0].CreatedAt, rooms[1].CreatedAt)
	}

	count, err := c.RoomCount()
	if err != nil || count != 2 {
		t.Errorf("RoomCount = %d, %v; want 2", count, err)
	}

	last, err := c.LastRefresh()
	if err != nil {
		t.Fatalf("LastRefresh: %v", err)
	}
	if last.IsZero() {
		t.Error("LastRefresh is zero after a save")
	}
}

func TestSaveRoomsReplaces(t *testing.T) {
	c := newTestCache(t)

	room := model.Room{ID: "r1", Name: "hall", RoomType: "living_room", Status: "processing"}
	if err := c.SaveRooms([]model.Room{room}); err != nil {
		t.Fatal(err)
	}
	room.Status = "ready"
	if err := c.SaveRooms([]model.Room{room}); err != nil {
		t.Fatal(err)
	}

	loaded, err := c.LoadRooms()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 {
		t.Fatalf("got %d rooms after replace, want 1", len(loaded))
	}
	if loaded[0].Status != "ready" {
		t.Errorf("status = %q, want ready", loaded[0].Status)
	}
}

func TestDesignsFilterByRoom(t *testing.T) {
	c := newTestCache(t)

	designs := []model.Design{
		{ID: "d1", RoomID: "r1", Style: "scandinavian", EstimatedUSD: 1200, CreatedAt: time.Now().UTC()},
		{ID: "d2", RoomID: "r1", Style: "industrial", CreatedAt: time.Now().UTC()},
		{ID: "d3", RoomID: "r2", Style: "bohemian", CreatedAt: time.Now().UTC()},
	}
	if err := c.SaveDesigns(designs); err != nil {
		t.Fatalf("SaveDesigns: %v", err)
	}

	all, err := c.LoadDesigns("")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("all designs = %d, want 3", len(all))
	}

	r1, err := c.LoadDesigns("r1")
	if err != nil {
		t.Fatal(err)
	}
	if len(r1) != 2 {
		t.Errorf("designs for r1 = %d, want 2", len(r1))
	}
	for _, d := range r1 {
		if d.RoomID != "r1" {
			t.Errorf("design %s has room %q", d.ID, d.RoomID)
		}
	}
}

func TestVastuReportRoundTrip(t *testing.T) {
	c := newTestCache(t)

	rep := model.VastuReport{
		RoomID:  "r1",
		Score:   72,
		Grade:   "good",
		Facing:  "east",
		Summary: "entrance placement favors morning light",
		Zones: []model.VastuZone{
			{Zone: "north_east", Element: "water", Score: 85, Verdict: "favorable"},
			{Zone: "south_west", Element: "earth", Score: 55, Verdict: "needs attention", Advice: "add grounding materials"},
		},
		Remedies:   []string{"move mirror off the south wall"},
		ComputedAt: time.Date(2026, 5, 2, 8, 30, 0, 0, time.UTC),
	}
	if err := c.SaveVastuReport(rep); err != nil {
		t.Fatalf("SaveVastuReport: %v", err)
	}

	loaded, err := c.LoadVastuReport("r1")
	if err != nil {
		t.Fatalf("LoadVastuReport: %v", err)
	}
	if loaded == nil {
		t.Fatal("LoadVastuReport returned nil for a cached report")
	}
	if loaded.Score != 72 || loaded.Grade != "good" {
		t.Errorf("score/grade = %d/%q", loaded.Score, loaded.Grade)
	}
	if len(loaded.Zones) != 2 {
		t.Fatalf("zones = %d, want 2", len(loaded.Zones))
	}
	if loaded.Zones[0].Zone != "north_east" {
		t.Errorf("zones ordered by name: got %q first", loaded.Zones[0].Zone)
	}
	if len(loaded.Remedies) != 1 || loaded.Remedies[0] != "move mirror off the south wall" {
		t.Errorf("remedies = %v", loaded.Remedies)
	}

	missing, err := c.LoadVastuReport("no-such-room")
	if err != nil {
		t.Fatalf("LoadVastuReport(missing): %v", err)
	}
	if missing != nil {
		t.Errorf("missing report = %+v, want nil", missing)
	}
}

func TestUploadLog(t *testing.T) {
	c := newTestCache(t)

	base := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, ref := range []string{"ref-a", "ref-b", "ref-c"} {
		rec := model.UploadRecord{
			Ref:         ref,
			RoomID:      "r1",
			FilePath:    "/photos/room.jpg",
			FacingAngle: 90 * i,
			Confirmed:   true,
			UploadedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		if err := c.LogUpload(rec); err != nil {
			t.Fatalf("LogUpload: %v", err)
		}
	}

	recs, err := c.RecentUploads(2)
	if err != nil {
		t.Fatalf("RecentUploads: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d uploads, want 2", len(recs))
	}
	if recs[0].Ref != "ref-c" {
		t.Errorf("latest upload first: got %q", recs[0].Ref)
	}
	if !recs[0].Confirmed {
		t.Error("confirmed flag lost in round trip")
	}
	if recs[0].FacingAngle != 180 {
		t.Errorf("facing angle = %d, want 180", recs[0].FacingAngle)
	}
}

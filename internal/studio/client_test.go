package studio

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/grihastudio/griha/internal/model"
)

// testToken passes the JWT shape check in NewClient.
const testToken = "eyJhbGciOiJub25lIn0.eyJzdWIiOiJ0ZXN0In0."

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, testToken)
	if c == nil {
		t.Fatal("NewClient returned nil for a valid token")
	}
	return c
}

func writeTempImage(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("not-really-pixels"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewClientTokenCheck(t *testing.T) {
	if c := NewClient("", ""); c != nil {
		t.Error("NewClient accepted an empty token")
	}
	if c := NewClient("", "  "); c != nil {
		t.Error("NewClient accepted a blank token")
	}
	if c := NewClient("", "sk-something-else"); c != nil {
		t.Error("NewClient accepted a non-JWT token")
	}
	if c := NewClient("", testToken); c == nil {
		t.Error("NewClient rejected a JWT-shaped token")
	}
}

func TestUploadRoomRequiresConfirmation(t *testing.T) {
	hits := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
	})

	req := &UploadRequest{
		Name:        "master bedroom",
		RoomType:    "bedroom",
		FilePath:    writeTempImage(t, "room.jpg"),
		FacingAngle: 90,
		Confirmed:   false,
	}
	_, err := c.UploadRoom(context.Background(), req)
	if !errors.Is(err, ErrUnconfirmed) {
		t.Fatalf("unconfirmed upload: err = %v, want ErrUnconfirmed", err)
	}
	if hits != 0 {
		t.Errorf("unconfirmed upload reached the server %d times", hits)
	}
}

func TestUploadRoomRejectsUnsupportedImage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	req := &UploadRequest{
		Name:      "hall",
		RoomType:  "living_room",
		FilePath:  writeTempImage(t, "scan.gif"),
		Confirmed: true,
	}
	if _, err := c.UploadRoom(context.Background(), req); !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("gif upload: err = %v, want ErrUnsupportedImage", err)
	}
}

func TestUploadRoomMultipartFields(t *testing.T) {
	var (
		gotAngle     string
		gotConfirmed string
		gotRef       string
		gotName      string
		gotType      string
		gotFile      string
		gotMIME      string
		gotAuth      string
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/rooms" {
			t.Errorf("request = %s %s, want POST /v1/rooms", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("parsing multipart form: %v", err)
		}
		gotAngle = r.FormValue("facing_angle")
		gotConfirmed = r.FormValue("orientation_confirmed")
		gotRef = r.FormValue("upload_ref")
		gotName = r.FormValue("name")
		gotType = r.FormValue("room_type")

		file, hdr, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("image part: %v", err)
		}
		defer file.Close()
		body, _ := io.ReadAll(file)
		gotFile = string(body)
		gotMIME = hdr.Header.Get("Content-Type")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"room-1","name":"master bedroom","room_type":"bedroom","facing_angle":200,"wall_mapping":{"north":"south","east":"west","south":"north","west":"east"},"status":"ready"}`))
	})

	req := &UploadRequest{
		Name:        "master bedroom",
		RoomType:    "bedroom",
		FilePath:    writeTempImage(t, "room.jpg"),
		FacingAngle: 200,
		Confirmed:   true,
	}
	room, err := c.UploadRoom(context.Background(), req)
	if err != nil {
		t.Fatalf("UploadRoom: %v", err)
	}

	if gotAngle != "200" {
		t.Errorf("facing_angle = %q, want 200", gotAngle)
	}
	if gotConfirmed != "true" {
		t.Errorf("orientation_confirmed = %q, want true", gotConfirmed)
	}
	if _, err := uuid.Parse(gotRef); err != nil {
		t.Errorf("upload_ref %q is not a UUID: %v", gotRef, err)
	}
	if req.Ref != gotRef {
		t.Errorf("request Ref %q not filled with sent ref %q", req.Ref, gotRef)
	}
	if gotName != "master bedroom" || gotType != "bedroom" {
		t.Errorf("name/room_type = %q/%q", gotName, gotType)
	}
	if gotFile != "not-really-pixels" {
		t.Errorf("image body = %q", gotFile)
	}
	if gotMIME != "image/jpeg" {
		t.Errorf("image content type = %q, want image/jpeg", gotMIME)
	}
	if gotAuth != "Bearer "+testToken {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if room.ID != "room-1" {
		t.Errorf("room ID = %q, want room-1", room.ID)
	}
	if room.WallMapping.North != "south" {
		t.Errorf("wall_mapping.north = %q, want south", room.WallMapping.North)
	}
}

// Negative angles are wrapped before they cross the wire.
func TestUploadRoomWrapsAngle(t *testing.T) {
	var gotAngle string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseMultipartForm(32 << 20)
		gotAngle = r.FormValue("facing_angle")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"room-2"}`))
	})

	req := &UploadRequest{
		Name:        "study",
		RoomType:    "office",
		FilePath:    writeTempImage(t, "study.png"),
		FacingAngle: -30,
		Confirmed:   true,
	}
	if _, err := c.UploadRoom(context.Background(), req); err != nil {
		t.Fatalf("UploadRoom: %v", err)
	}
	if gotAngle != "330" {
		t.Errorf("facing_angle = %q, want 330", gotAngle)
	}
}

func TestStatusSentinels(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusNotFound, ErrNotFound},
	}
	for _, tt := range tests {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		})
		_, err := c.ListRooms(context.Background())
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: err = %v, want %v", tt.status, err, tt.want)
		}
	}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	if _, err := c.ListRooms(context.Background()); err == nil {
		t.Error("status 502: err = nil, want unexpected status error")
	}
}

func TestListRooms(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/rooms" {
			t.Errorf("path = %s, want /v1/rooms", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"a","name":"hall","room_type":"living_room","facing_angle":0},
			{"id":"b","name":"kitchen","room_type":"kitchen","facing_angle":90}
		]`))
	})
	rooms, err := c.ListRooms(context.Background())
	if err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("got %d rooms, want 2", len(rooms))
	}
	if rooms[1].Facing() != "east" {
		t.Errorf("rooms[1].Facing() = %q, want east", rooms[1].Facing())
	}
}

func TestTypedGetters(t *testing.T) {
	serve := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		}
	}

	mux := http.NewServeMux()
	mux.Handle("/v1/me", serve(`{"id":"u1","email":"asha@example.com","name":"Asha","plan":"pro","rooms_used":3,"rooms_quota":10}`))
	mux.Handle("/v1/rooms/room-1", serve(`{"id":"room-1","name":"hall","room_type":"living_room","facing_angle":90}`))
	mux.Handle("/v1/jobs/job-1", serve(`{"id":"job-1","room_id":"room-1","status":"processing","progress_pct":40}`))
	mux.Handle("/v1/jobs", serve(`[{"id":"job-1","status":"queued"},{"id":"job-2","status":"processing"}]`))
	mux.Handle("/v1/designs/des-1", serve(`{"id":"des-1","room_id":"room-1","style":"scandinavian"}`))
	mux.Handle("/v1/rooms/room-1/vastu", serve(`{"room_id":"room-1","score":72,"grade":"B","facing":"east","zones":[{"zone":"north_east","element":"water","score":80,"verdict":"good"}]}`))
	mux.Handle("/v1/designs/des-1/estimate", serve(`{"design_id":"des-1","currency":"INR","items":[{"label":"Sofa","category":"furniture","quantity":1,"unit_cost":42000,"subtotal":42000}],"subtotal":42000,"tax":7560,"total":49560}`))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, testToken)
	ctx := context.Background()

	t.Run("me", func(t *testing.T) {
		acct, err := c.Me(ctx)
		if err != nil {
			t.Fatalf("Me: %v", err)
		}
		if acct.Plan != "pro" || acct.RoomsQuota != 10 {
			t.Errorf("account = %+v", acct)
		}
	})

	t.Run("room", func(t *testing.T) {
		room, err := c.GetRoom(ctx, "room-1")
		if err != nil {
			t.Fatalf("GetRoom: %v", err)
		}
		if room.Name != "hall" || room.Facing() != "east" {
			t.Errorf("room = %+v", room)
		}
	})

	t.Run("job", func(t *testing.T) {
		job, err := c.GetJob(ctx, "job-1")
		if err != nil {
			t.Fatalf("GetJob: %v", err)
		}
		if job.Progress != 40 || job.Done() {
			t.Errorf("job = %+v", job)
		}
	})

	t.Run("active jobs", func(t *testing.T) {
		jobs, err := c.ListActiveJobs(ctx)
		if err != nil {
			t.Fatalf("ListActiveJobs: %v", err)
		}
		if len(jobs) != 2 {
			t.Errorf("got %d jobs, want 2", len(jobs))
		}
	})

	t.Run("design", func(t *testing.T) {
		d, err := c.GetDesign(ctx, "des-1")
		if err != nil {
			t.Fatalf("GetDesign: %v", err)
		}
		if d.Style != "scandinavian" {
			t.Errorf("design = %+v", d)
		}
	})

	t.Run("vastu", func(t *testing.T) {
		rep, err := c.VastuReport(ctx, "room-1")
		if err != nil {
			t.Fatalf("VastuReport: %v", err)
		}
		if rep.Score != 72 || len(rep.Zones) != 1 || rep.Zones[0].Zone != "north_east" {
			t.Errorf("report = %+v", rep)
		}
	})

	t.Run("estimate", func(t *testing.T) {
		est, err := c.Estimate(ctx, "des-1")
		if err != nil {
			t.Fatalf("Estimate: %v", err)
		}
		if est.Total != 49560 || len(est.Items) != 1 {
			t.Errorf("estimate = %+v", est)
		}
	})
}

func TestDownloadImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/renders/des-1.png" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("png-bytes"))
	}))
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, testToken)

	dest := filepath.Join(t.TempDir(), "out.png")
	if err := c.DownloadImage(context.Background(), srv.URL+"/renders/des-1.png", dest); err != nil {
		t.Fatalf("DownloadImage: %v", err)
	}
	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}
	if string(got) != "png-bytes" {
		t.Errorf("downloaded body = %q", got)
	}

	missing := filepath.Join(t.TempDir(), "missing.png")
	if err := c.DownloadImage(context.Background(), srv.URL+"/renders/nope.png", missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing render: err = %v, want ErrNotFound", err)
	}
	if _, err := os.Stat(missing); !os.IsNotExist(err) {
		t.Error("failed download left a file behind")
	}
}

func TestRequestDesignsPostsBrief(t *testing.T) {
	var gotBody string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/rooms/room-1/designs" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"job-1","room_id":"room-1","status":"queued","progress_pct":0}`))
	})

	brief := model.DesignBrief{Style: "scandinavian", BudgetUSD: 2500, Variants: 2}
	job, err := c.RequestDesigns(context.Background(), "room-1", brief)
	if err != nil {
		t.Fatalf("RequestDesigns: %v", err)
	}
	if job.Status != "queued" {
		t.Errorf("job status = %q, want queued", job.Status)
	}
	for _, frag := range []string{`"style":"scandinavian"`, `"budget_usd":2500`, `"variants":2`} {
		if !strings.Contains(gotBody, frag) {
			t.Errorf("request body missing %s: %s", frag, gotBody)
		}
	}
}

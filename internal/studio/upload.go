package studio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/grihastudio/griha/internal/compass"
	"github.com/grihastudio/griha/internal/model"
)

const (
	uploadTimeout   = 90 * time.Second
	downloadTimeout = 60 * time.Second
	maxImageSize    = 20 << 20 // 20 MB
)

var (
	// ErrUnconfirmed indicates an upload was attempted before the compass
	// orientation was confirmed.
	ErrUnconfirmed = errors.New("studio: orientation not confirmed")
	// ErrUnsupportedImage indicates the photo is not a jpeg, png, or webp.
	ErrUnsupportedImage = errors.New("studio: unsupported image type (want .jpg, .png, or .webp)")
)

// imageMIME maps accepted photo extensions to their content types.
var imageMIME = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// UploadRequest carries everything needed to create a room from a photo.
type UploadRequest struct {
	Name        string
	RoomType    string
	FilePath    string
	FacingAngle int    // whole degrees, wrapped into [0,360) on send
	Confirmed   bool   // the orientation lock; uploads refuse without it
	Ref         string // idempotency key, generated when empty
}

// UploadRoom submits a room photo with its confirmed orientation as
// multipart form data and returns the created room. The request's Ref is
// filled in when empty so callers can log it.
func (c *Client) UploadRoom(ctx context.Context, req *UploadRequest) (*model.Room, error) {
	if !req.Confirmed {
		return nil, ErrUnconfirmed
	}
	mime, ok := imageMIME[strings.ToLower(filepath.Ext(req.FilePath))]
	if !ok {
		return nil, ErrUnsupportedImage
	}
	info, err := os.Stat(req.FilePath)
	if err != nil {
		return nil, fmt.Errorf("studio: reading image: %w", err)
	}
	if info.Size() > maxImageSize {
		return nil, fmt.Errorf("studio: image is %d MB, limit is %d MB", info.Size()>>20, maxImageSize>>20)
	}
	if req.Ref == "" {
		req.Ref = uuid.NewString()
	}

	f, err := os.Open(req.FilePath)
	if err != nil {
		return nil, fmt.Errorf("studio: reading image: %w", err)
	}
	defer func() { _ = f.Close() }()

	angle := int(compass.Normalize(float64(req.FacingAngle)))

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"name":                  req.Name,
		"room_type":             req.RoomType,
		"facing_angle":          strconv.Itoa(angle),
		"orientation_confirmed": strconv.FormatBool(req.Confirmed),
		"upload_ref":            req.Ref,
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("studio: building upload: %w", err)
		}
	}

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="image"; filename=%q`, filepath.Base(req.FilePath)))
	hdr.Set("Content-Type", mime)
	part, err := w.CreatePart(hdr)
	if err != nil {
		return nil, fmt.Errorf("studio: building upload: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("studio: reading image: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("studio: building upload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/rooms", &buf)
	if err != nil {
		return nil, fmt.Errorf("studio: creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", w.FormDataContentType())

	body, err := c.do(httpReq)
	if err != nil {
		return nil, err
	}
	var room model.Room
	if err := json.Unmarshal(body, &room); err != nil {
		return nil, fmt.Errorf("studio: parsing room: %w", err)
	}
	return &room, nil
}

// DownloadImage fetches a rendered design image to dest. Partial files are
// removed on failure.
func (c *Client) DownloadImage(ctx context.Context, rawURL, dest string) error {
	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("studio: creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", "griha/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("studio: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("studio: unexpected status %d", resp.StatusCode)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("studio: creating %s: %w", dest, err)
	}
	if _, err := io.Copy(out, io.LimitReader(resp.Body, maxImageSize)); err != nil {
		_ = out.Close()
		_ = os.Remove(dest)
		return fmt.Errorf("studio: downloading image: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("studio: writing %s: %w", dest, err)
	}
	return nil
}

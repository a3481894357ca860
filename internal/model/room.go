// Package model defines the domain types exchanged with the Griha Studio
// backend and cached locally.
package model

import (
	"time"

	"github.com/grihastudio/griha/internal/compass"
)

// RoomTypes lists the room categories the backend accepts, in the order the
// setup form and upload picker present them.
var RoomTypes = []string{
	"living_room",
	"bedroom",
	"kitchen",
	"bathroom",
	"dining_room",
	"office",
	"balcony",
	"pooja_room",
}

// Room is an uploaded room photo with its confirmed orientation.
type Room struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	RoomType    string          `json:"room_type"`
	FacingAngle int             `json:"facing_angle"`
	WallMapping compass.Mapping `json:"wall_mapping"`
	ImageURL    string          `json:"image_url"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Facing names the compass point the room's reference wall points at.
func (r Room) Facing() compass.Cardinal {
	return compass.FacingCardinal(float64(r.FacingAngle))
}

// UploadRecord is one entry in the local upload log.
type UploadRecord struct {
	Ref         string
	RoomID      string
	FilePath    string
	FacingAngle int
	Confirmed   bool
	UploadedAt  time.Time
}

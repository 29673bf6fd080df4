package model

import "time"

// MeetingRoom is a bookable resource. Name is unique across rooms; the
// unique index on the rooms collection is the enforcement point.
type MeetingRoom struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name        string    `json:"name" bson:"name" validate:"required,min=1,max=50"`
	Capacity    int       `json:"capacity" bson:"capacity" validate:"required,min=1,max=500"`
	Location    string    `json:"location" bson:"location" validate:"required,max=100"`
	Equipment   []string  `json:"equipment" bson:"equipment" validate:"omitempty,dive,max=50"`
	Description string    `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=200"`
	IsBooked    bool      `json:"is_booked" bson:"is_booked"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// MeetingRoomUpdate is a partial update; nil/empty fields are left unchanged.
type MeetingRoomUpdate struct {
	Name        string    `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Capacity    *int      `json:"capacity,omitempty" validate:"omitempty,min=1,max=500"`
	Location    string    `json:"location,omitempty" validate:"omitempty,max=100"`
	Equipment   *[]string `json:"equipment,omitempty" validate:"omitempty,dive,max=50"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=200"`
}

// RoomQuery carries the paged filter arguments for the room listing.
// PageNo is 1-indexed.
type RoomQuery struct {
	PageNo    int
	PageSize  int
	Name      string
	Capacity  int
	Equipment string
	Location  string
}

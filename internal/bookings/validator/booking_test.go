package validator

import (
	"testing"
	"time"

	"roomhub/pkg/logger"
	"roomhub/pkg/model"
)

func newTestValidator() *BookingValidator {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	return NewBookingValidator(log)
}

func validRequest() *model.BookingRequest {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	return &model.BookingRequest{
		RoomID:      "507f1f77bcf86cd799439011",
		RequesterID: "507f191e810c19729de860ea",
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
	}
}

func TestValidateRequest_Valid(t *testing.T) {
	v := newTestValidator()

	if err := v.ValidateRequest(validRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRequest_Invalid(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name   string
		mutate func(req *model.BookingRequest)
	}{
		{"missing room id", func(req *model.BookingRequest) { req.RoomID = "" }},
		{"malformed room id", func(req *model.BookingRequest) { req.RoomID = "not-an-object-id" }},
		{"missing requester id", func(req *model.BookingRequest) { req.RequesterID = "" }},
		{"zero start time", func(req *model.BookingRequest) { req.StartTime = time.Time{} }},
		{"zero end time", func(req *model.BookingRequest) { req.EndTime = time.Time{} }},
		{"end before start", func(req *model.BookingRequest) { req.EndTime = req.StartTime.Add(-time.Minute) }},
		{"end equals start", func(req *model.BookingRequest) { req.EndTime = req.StartTime }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			if err := v.ValidateRequest(req); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestValidateRequest_NoteLength(t *testing.T) {
	v := newTestValidator()

	req := validRequest()
	for i := 0; i < 501; i++ {
		req.Note += "x"
	}

	if err := v.ValidateRequest(req); err == nil {
		t.Error("expected validation error for a note over 500 characters")
	}
}

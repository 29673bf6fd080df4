package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"roomhub/internal/bookings/service"
	apperrors "roomhub/pkg/errors"
	httputil "roomhub/pkg/http"
	"roomhub/pkg/logger"
	"roomhub/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// Identity headers set by the gateway in front of this service. The gateway
// has already authenticated the caller; the handlers only read these.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func actorFrom(r *http.Request) model.Actor {
	return model.Actor{
		ID:   r.Header.Get(HeaderUserID),
		Role: r.Header.Get(HeaderUserRole),
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor := actorFrom(r)
	if actor.ID == "" {
		h.writeError(w, "Create", apperrors.InvalidInput("missing X-User-Id header"))
		return
	}

	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}
	req.RequesterID = actor.ID

	booking, err := h.service.Propose(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	booking, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Find(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	pageNo, pageSize, err := httputil.ExtractPage(r)
	if err != nil {
		h.writeError(w, "Find", err)
		return
	}

	query := r.URL.Query()
	bookingQuery := &model.BookingQuery{
		PageNo:       pageNo,
		PageSize:     pageSize,
		Username:     query.Get("username"),
		RoomName:     query.Get("roomName"),
		RoomLocation: query.Get("roomLocation"),
	}

	if s := query.Get("startAt"); s != "" {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			h.writeError(w, "Find", apperrors.InvalidInput("invalid startAt format, must be RFC3339"))
			return
		}
		bookingQuery.StartAt = &parsed
	}
	if s := query.Get("endAt"); s != "" {
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			h.writeError(w, "Find", apperrors.InvalidInput("invalid endAt format, must be RFC3339"))
			return
		}
		bookingQuery.EndAt = &parsed
	}

	bookings, total, err := h.service.Find(r.Context(), bookingQuery)
	if err != nil {
		h.writeError(w, "Find", err)
		return
	}

	if err := httputil.WritePaginated(w, bookings, total, pageNo, pageSize); err != nil {
		h.log.Error("failed to write paginated response", "handler", "Find", "operation", "WritePaginated", "error", err)
	}
}

func (h *BookingHandler) Approve(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.transition(w, r, ps, "Approve", h.service.Approve)
}

func (h *BookingHandler) Reject(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.transition(w, r, ps, "Reject", h.service.Reject)
}

func (h *BookingHandler) Unbind(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.transition(w, r, ps, "Unbind", h.service.Unbind)
}

func (h *BookingHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	ps httprouter.Params,
	name string,
	op func(ctx context.Context, id string, actor model.Actor) error,
) {
	id := ps.ByName("id")
	actor := actorFrom(r)
	if actor.ID == "" {
		h.writeError(w, name, apperrors.InvalidInput("missing X-User-Id header"))
		return
	}

	if err := op(r.Context(), id, actor); err != nil {
		h.writeError(w, name, err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	actor := actorFrom(r)
	if actor.ID == "" {
		h.writeError(w, "Cancel", apperrors.InvalidInput("missing X-User-Id header"))
		return
	}

	if err := h.service.Cancel(r.Context(), id, actor.ID); err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) Urge(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	result, err := h.service.Urge(r.Context(), id)
	if err != nil {
		h.writeError(w, "Urge", err)
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Urge", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", h.Create)
	router.GET("/api/v1/bookings", h.Find)
	router.GET("/api/v1/bookings/:id", h.GetByID)
	router.POST("/api/v1/bookings/:id/approve", h.Approve)
	router.POST("/api/v1/bookings/:id/reject", h.Reject)
	router.POST("/api/v1/bookings/:id/unbind", h.Unbind)
	router.POST("/api/v1/bookings/:id/cancel", h.Cancel)
	router.POST("/api/v1/bookings/:id/urge", h.Urge)
}

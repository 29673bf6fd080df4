package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"roomhub/internal/rooms/service"
	apperrors "roomhub/pkg/errors"
	httputil "roomhub/pkg/http"
	"roomhub/pkg/logger"
	"roomhub/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type RoomHandler struct {
	service service.RoomService
	log     *logger.Logger
}

func NewRoomHandler(service service.RoomService, log *logger.Logger) *RoomHandler {
	return &RoomHandler{
		service: service,
		log:     log,
	}
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var room model.MeetingRoom
	if err := json.NewDecoder(r.Body).Decode(&room); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &room); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, room); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *RoomHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	room, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, room); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RoomHandler) Find(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	pageNo, pageSize, err := httputil.ExtractPage(r)
	if err != nil {
		h.writeError(w, "Find", err)
		return
	}

	query := r.URL.Query()
	roomQuery := &model.RoomQuery{
		PageNo:    pageNo,
		PageSize:  pageSize,
		Name:      query.Get("name"),
		Location:  query.Get("location"),
		Equipment: query.Get("equipment"),
	}

	if s := query.Get("capacity"); s != "" {
		capacity, err := strconv.Atoi(s)
		if err != nil {
			h.writeError(w, "Find", apperrors.InvalidInput("invalid capacity parameter: "+s))
			return
		}
		roomQuery.Capacity = capacity
	}

	rooms, total, err := h.service.Find(r.Context(), roomQuery)
	if err != nil {
		h.writeError(w, "Find", err)
		return
	}

	if err := httputil.WritePaginated(w, rooms, total, pageNo, pageSize); err != nil {
		h.log.Error("failed to write paginated response", "handler", "Find", "operation", "WritePaginated", "error", err)
	}
}

func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var updates model.MeetingRoomUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Update(r.Context(), id, &updates); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *RoomHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *RoomHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/rooms", h.Create)
	router.GET("/api/v1/rooms", h.Find)
	router.GET("/api/v1/rooms/:id", h.GetByID)
	router.PATCH("/api/v1/rooms/:id", h.Update)
	router.DELETE("/api/v1/rooms/:id", h.Delete)
}

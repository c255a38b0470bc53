package handler

import (
	"net/http"
	"strconv"

	"github.com/babilu-online/lootbox-contract/internal/engine"
	"github.com/babilu-online/lootbox-contract/internal/logger"
	"github.com/babilu-online/lootbox-contract/internal/metrics"
)

type BoxHandler struct {
	service engine.Service
}

func NewBoxHandler(service engine.Service) *BoxHandler {
	return &BoxHandler{service: service}
}

type OpenBoxesRequest struct {
	Option   uint32 `json:"option"`
	To       string `json:"to" validate:"required,max=128"`
	BoxCount uint32 `json:"box_count" validate:"required,gt=0"`
	Owner    string `json:"owner" validate:"required,max=128"`
}

// HandleOpenBoxes opens a batch of loot boxes and mints the contents.
// The call is all-or-nothing: a partial failure leaves no mints behind.
func (h *BoxHandler) HandleOpenBoxes(w http.ResponseWriter, r *http.Request) {
	var req OpenBoxesRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Open boxes"); err != nil {
		return
	}

	log := logger.FromContext(r.Context())
	log.Info("Opening boxes", "option", req.Option, "to", req.To, "box_count", req.BoxCount)

	result, err := h.service.OpenBoxes(r.Context(), req.Option, req.To, req.BoxCount, req.Owner)
	if err != nil {
		metrics.OpenFailures.WithLabelValues(strconv.FormatUint(uint64(req.Option), 10)).Inc()
		respondServiceError(w, r, "Open boxes", err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

package handler

import (
	"net/http"

	"github.com/babilu-online/lootbox-contract/internal/domain"
	"github.com/babilu-online/lootbox-contract/internal/engine"
	"github.com/babilu-online/lootbox-contract/internal/logger"
)

type OptionHandler struct {
	service engine.Service
}

func NewOptionHandler(service engine.Service) *OptionHandler {
	return &OptionHandler{service: service}
}

// OptionConfigBody is the shared configuration payload for option create/update
type OptionConfigBody struct {
	MaxQuantityPerOpen uint32   `json:"max_quantity_per_open" validate:"required,gt=0"`
	ClassStart         uint32   `json:"class_start"`
	NumClasses         uint32   `json:"num_classes" validate:"required,gt=0"`
	ClassProbabilities []uint16 `json:"class_probabilities" validate:"required,min=1"`
	Guarantees         []uint32 `json:"guarantees" validate:"required,min=1"`
}

func (b OptionConfigBody) toConfig() engine.OptionConfig {
	return engine.OptionConfig{
		MaxQuantityPerOpen: b.MaxQuantityPerOpen,
		ClassStart:         domain.ClassID(b.ClassStart),
		NumClasses:         b.NumClasses,
		ClassProbabilities: b.ClassProbabilities,
		Guarantees:         b.Guarantees,
	}
}

type AddOptionRequest struct {
	OptionConfigBody
	UncommonTokenIDs []uint64 `json:"uncommon_token_ids"`
	RareTokenIDs     []uint64 `json:"rare_token_ids"`
	EpicTokenIDs     []uint64 `json:"epic_token_ids"`
}

type AddOptionResponse struct {
	Option  uint32 `json:"option"`
	Message string `json:"message"`
}

// HandleAddOption registers a new loot-box option with its tier pools
func (h *OptionHandler) HandleAddOption(w http.ResponseWriter, r *http.Request) {
	var req AddOptionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Add option"); err != nil {
		return
	}

	option, err := h.service.AddOption(r.Context(), engine.AddOptionParams{
		OptionConfig:     req.toConfig(),
		UncommonTokenIDs: req.UncommonTokenIDs,
		RareTokenIDs:     req.RareTokenIDs,
		EpicTokenIDs:     req.EpicTokenIDs,
	})
	if err != nil {
		respondServiceError(w, r, "Add option", err)
		return
	}

	logger.FromContext(r.Context()).Info("Option added", "option", option)
	respondJSON(w, http.StatusCreated, AddOptionResponse{Option: option, Message: MsgOptionAddedSuccess})
}

type SetOptionSettingsRequest struct {
	OptionConfigBody
}

// HandleSetOptionSettings replaces the configuration of an existing option
func (h *OptionHandler) HandleSetOptionSettings(w http.ResponseWriter, r *http.Request) {
	option, ok := GetURLParamUint32(r, w, "option")
	if !ok {
		return
	}

	var req SetOptionSettingsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Set option settings"); err != nil {
		return
	}

	if err := h.service.SetOptionSettings(r.Context(), option, req.toConfig()); err != nil {
		respondServiceError(w, r, "Set option settings", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgOptionUpdatedSuccess})
}

type SetTokenIDsRequest struct {
	TokenIDs []uint64 `json:"token_ids" validate:"required"`
}

// HandleSetTokenIDs replaces the token pool of a local class within an option
func (h *OptionHandler) HandleSetTokenIDs(w http.ResponseWriter, r *http.Request) {
	option, ok := GetURLParamUint32(r, w, "option")
	if !ok {
		return
	}
	class, ok := GetURLParamUint32(r, w, "class")
	if !ok {
		return
	}

	var req SetTokenIDsRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Set token ids"); err != nil {
		return
	}

	if err := h.service.SetTokenIDsForClass(r.Context(), option, class, req.TokenIDs); err != nil {
		respondServiceError(w, r, "Set token ids", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgTokenPoolUpdatedSuccess})
}

type TokenIDsResponse struct {
	Option   uint32   `json:"option"`
	Class    uint32   `json:"class"`
	TokenIDs []uint64 `json:"token_ids"`
}

// HandleGetTokenIDs returns the token pool of a local class within an option
func (h *OptionHandler) HandleGetTokenIDs(w http.ResponseWriter, r *http.Request) {
	option, ok := GetURLParamUint32(r, w, "option")
	if !ok {
		return
	}
	class, ok := GetURLParamUint32(r, w, "class")
	if !ok {
		return
	}

	tokenIDs, err := h.service.TokenIDsForClass(r.Context(), option, class)
	if err != nil {
		respondServiceError(w, r, "Get token ids", err)
		return
	}

	respondJSON(w, http.StatusOK, TokenIDsResponse{Option: option, Class: class, TokenIDs: tokenIDs})
}

// OptionResponse is the public view of an option's configuration
type OptionResponse struct {
	Option               uint32   `json:"option"`
	Enabled              bool     `json:"enabled"`
	MaxQuantityPerOpen   uint32   `json:"max_quantity_per_open"`
	ClassStart           uint32   `json:"class_start"`
	NumClasses           uint32   `json:"num_classes"`
	ClassProbabilities   []uint16 `json:"class_probabilities"`
	Guarantees           []uint32 `json:"guarantees"`
	HasGuaranteedClasses bool     `json:"has_guaranteed_classes"`
}

// HandleGetOption returns the configuration of a single option
func (h *OptionHandler) HandleGetOption(w http.ResponseWriter, r *http.Request) {
	option, ok := GetURLParamUint32(r, w, "option")
	if !ok {
		return
	}

	settings, err := h.service.Option(r.Context(), option)
	if err != nil {
		respondServiceError(w, r, "Get option", err)
		return
	}

	respondJSON(w, http.StatusOK, OptionResponse{
		Option:               option,
		Enabled:              settings.Enabled(),
		MaxQuantityPerOpen:   settings.MaxQuantityPerOpen,
		ClassStart:           uint32(settings.ClassStart),
		NumClasses:           settings.NumClasses,
		ClassProbabilities:   settings.ClassProbabilities,
		Guarantees:           settings.Guarantees,
		HasGuaranteedClasses: settings.HasGuaranteedClasses,
	})
}

// OptionCountResponse reports how many options are registered
type OptionCountResponse struct {
	Count uint32 `json:"count"`
}

// HandleGetOptionCount returns the number of registered options
func (h *OptionHandler) HandleGetOptionCount(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, OptionCountResponse{Count: h.service.OptionCount(r.Context())})
}

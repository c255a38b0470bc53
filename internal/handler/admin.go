package handler

import (
	"math/big"
	"net/http"
	"strings"

	"github.com/babilu-online/lootbox-contract/internal/engine"
	"github.com/babilu-online/lootbox-contract/internal/factory"
	"github.com/babilu-online/lootbox-contract/internal/logger"
)

// AdminHandler exposes operator-only endpoints. The provisioner may be nil
// when the configured factory does not support registering new tokens.
type AdminHandler struct {
	service     engine.Service
	provisioner factory.Provisioner
}

func NewAdminHandler(service engine.Service, provisioner factory.Provisioner) *AdminHandler {
	return &AdminHandler{service: service, provisioner: provisioner}
}

type SetSeedRequest struct {
	Seed string `json:"seed" validate:"required,max=256"`
}

// HandleSetSeed replaces the engine's evolving seed with an operator-supplied value
func (h *AdminHandler) HandleSetSeed(w http.ResponseWriter, r *http.Request) {
	var req SetSeedRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Set seed"); err != nil {
		return
	}

	seed, ok := parseSeed(req.Seed)
	if !ok {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidSeed)
		return
	}

	if err := h.service.SetSeed(r.Context(), seed); err != nil {
		respondServiceError(w, r, "Set seed", err)
		return
	}

	// The seed value itself is never logged
	logger.FromContext(r.Context()).Info("Engine seed replaced")
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSeedUpdatedSuccess})
}

// parseSeed accepts a decimal or 0x-prefixed hex integer
func parseSeed(raw string) (*big.Int, bool) {
	raw = strings.TrimSpace(raw)
	if rest, found := strings.CutPrefix(raw, "0x"); found {
		return new(big.Int).SetString(rest, 16)
	}
	return new(big.Int).SetString(raw, 10)
}

type RegisterTokenRequest struct {
	TokenID   uint64 `json:"token_id"`
	Owner     string `json:"owner" validate:"required,max=128"`
	MaxSupply uint64 `json:"max_supply"`
}

// HandleRegisterToken provisions a new token id with a supply cap in the factory
func (h *AdminHandler) HandleRegisterToken(w http.ResponseWriter, r *http.Request) {
	if h.provisioner == nil {
		respondError(w, http.StatusNotImplemented, ErrMsgProvisioningDisabled)
		return
	}

	var req RegisterTokenRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Register token"); err != nil {
		return
	}
	if req.MaxSupply == 0 {
		respondError(w, http.StatusBadRequest, ErrMsgMaxSupplyMustBeSet)
		return
	}

	if err := h.provisioner.RegisterToken(r.Context(), req.TokenID, req.Owner, req.MaxSupply); err != nil {
		respondServiceError(w, r, "Register token", err)
		return
	}

	logger.FromContext(r.Context()).Info("Token registered",
		"token_id", req.TokenID, "owner", req.Owner, "max_supply", req.MaxSupply)
	respondJSON(w, http.StatusCreated, SuccessResponse{Message: MsgTokenRegisteredSuccess})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/aharonidan/bopdial/services"
)

type SettingHandler struct {
	settingService services.SettingService
}

func NewSettingHandler(settingService services.SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingService}
}

// Publish appends a ground-truth record. Settings are never updated or
// deleted; their presence is what the bonus evaluator checks.
func (h *SettingHandler) Publish(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	setting, err := h.settingService.Publish(r.Context(), input.Name, input.Value)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"setting": setting}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SettingHandler) ListByName(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		badRequestResponse(w, r, errors.New("name query parameter is required"))
		return
	}

	settings, err := h.settingService.ListByName(r.Context(), name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"settings": settings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

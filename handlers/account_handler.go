package handlers

import (
	"net/http"
	"strconv"

	"github.com/aharonidan/bopdial/services"
	"github.com/go-chi/chi/v5"
)

type AccountHandler struct {
	accountService services.AccountService
	userService    services.UserService
}

func NewAccountHandler(accountService services.AccountService, userService services.UserService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		userService:    userService,
	}
}

func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name string `json:"name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	account, err := h.accountService.Create(r.Context(), input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"account": account}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"accounts": accounts}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListUsers returns the standings of one pool: its users with their cached
// totals, the product of the latest recompute batch.
func (h *AccountHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		notFoundResponse(w, r)
		return
	}

	if _, err := h.accountService.GetByID(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	users, err := h.userService.ListByAccount(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"users": users}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

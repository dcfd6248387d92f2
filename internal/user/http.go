// Copyright (c) 2026 Freshlist. All rights reserved.

package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/freshlist/freshlist/internal/auth"
	requestutil "github.com/freshlist/freshlist/internal/platform/request"
	"github.com/freshlist/freshlist/internal/platform/respond"
	"github.com/freshlist/freshlist/internal/platform/validate"
)

// # HTTP Layer

// Handler exposes the self-service account endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a user [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for the account endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/current", handler.current)
	router.Put("/current/password", handler.changePassword)

	return router
}

// current handles GET /users/current.
func (handler *Handler) current(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.service.Current(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, account)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// changePassword handles PUT /users/current/password.
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body changePasswordRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = validate.New().
		Required("old_password", body.OldPassword).
		Required("new_password", body.NewPassword).
		MinLen("new_password", body.NewPassword, auth.PasswordMinLen).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.ChangePassword(request.Context(), userID, ChangePasswordInput{
		OldPassword: body.OldPassword,
		NewPassword: body.NewPassword,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

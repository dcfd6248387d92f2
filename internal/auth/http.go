// Copyright (c) 2026 Freshlist. All rights reserved.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/freshlist/freshlist/internal/platform/middleware"
	requestutil "github.com/freshlist/freshlist/internal/platform/request"
	"github.com/freshlist/freshlist/internal/platform/respond"
	"github.com/freshlist/freshlist/internal/platform/validate"
)

// # HTTP Layer

// Handler exposes the authentication endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an authentication [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for the public authentication endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/sign-up", handler.signUp)
	router.Post("/sign-in", handler.signIn)

	return router
}

type signUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// signUp handles POST /sign-up.
func (handler *Handler) signUp(writer http.ResponseWriter, request *http.Request) {
	var body signUpRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err := validate.New().
		Required(FieldUsername, body.Username).
		MinLen(FieldUsername, body.Username, UsernameMinLen).
		MaxLen(FieldUsername, body.Username, UsernameMaxLen).
		Required(FieldEmail, body.Email).
		Email(FieldEmail, body.Email).
		Required(FieldPassword, body.Password).
		MinLen(FieldPassword, body.Password, PasswordMinLen).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.service.SignUp(request.Context(), SignUpInput{
		Username: body.Username,
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]string{FieldToken: token})
}

// signIn handles POST /sign-in.
func (handler *Handler) signIn(writer http.ResponseWriter, request *http.Request) {
	var body signInRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err := validate.New().
		Required(FieldUsername, body.Username).
		Required(FieldPassword, body.Password).
		Err()
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.service.SignIn(request.Context(), SignInInput{
		Username:  body.Username,
		Password:  body.Password,
		IPAddress: middleware.RealIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{FieldToken: token})
}

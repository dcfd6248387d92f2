// Copyright (c) 2026 Freshlist. All rights reserved.

package list

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/freshlist/freshlist/internal/platform/request"
	"github.com/freshlist/freshlist/internal/platform/respond"
	"github.com/freshlist/freshlist/internal/platform/validate"
)

// # HTTP Layer

// Handler implements the HTTP delivery layer for pantry lists.
//
// Every endpoint requires an authenticated user; the router mounting these
// routes wraps them with the RequireAuth middleware.
type Handler struct {
	service *Service
}

// NewHandler constructs a list [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for the list endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listAll)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

type listRequest struct {
	Title      string `json:"title"`
	BestBefore int    `json:"best_before"`
}

// validateListRequest runs the shared create/update validation chain.
func validateListRequest(body listRequest) error {
	return validate.New().
		Required(FieldTitle, body.Title).
		MaxLen(FieldTitle, body.Title, 128).
		Custom(FieldBestBefore, body.BestBefore < 0,
			"Must be zero or a positive number of days").
		Err()
}

// listAll handles GET /lists.
func (handler *Handler) listAll(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	lists, err := handler.service.ListForUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, lists)
}

// get handles GET /lists/{id}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.Get(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

// create handles POST /lists.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body listRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := validateListRequest(body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.Create(request.Context(), userID, CreateInput{
		Title:      body.Title,
		BestBefore: body.BestBefore,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, item)
}

// update handles PUT /lists/{id}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body listRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := validateListRequest(body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.Update(request.Context(), userID, requestutil.ID(request, "id"), UpdateInput{
		Title:      body.Title,
		BestBefore: body.BestBefore,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

// delete handles DELETE /lists/{id}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// Copyright (c) 2026 Freshlist. All rights reserved.

package card

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/freshlist/freshlist/internal/platform/request"
	"github.com/freshlist/freshlist/internal/platform/respond"
	"github.com/freshlist/freshlist/internal/platform/validate"
	"github.com/freshlist/freshlist/pkg/pagination"
)

// # HTTP Layer

// Handler implements the HTTP delivery layer for product cards.
type Handler struct {
	service *Service
}

// NewHandler constructs a card [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for the card endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listAll)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

// cardRequest carries exp_date as a string so validation can report a
// layout problem as a field error instead of a JSON decode failure.
type cardRequest struct {
	Title     string  `json:"title"`
	ExpDate   string  `json:"exp_date"`
	LeftCount float64 `json:"left_count"`
	Units     string  `json:"units"`
	ListID    string  `json:"list_id"`
}

// validateCardRequest runs the shared create/update validation chain.
func validateCardRequest(body cardRequest) error {
	return validate.New().
		Required(FieldTitle, body.Title).
		MaxLen(FieldTitle, body.Title, 128).
		Required(FieldExpDate, body.ExpDate).
		DateTime(FieldExpDate, body.ExpDate, ExpDateLayout).
		Custom(FieldLeftCount, body.LeftCount < 0, "Must be zero or positive").
		MaxLen(FieldUnits, body.Units, 16).
		Required(FieldListID, body.ListID).
		UUID(FieldListID, body.ListID).
		Err()
}

// toInput converts a validated request body into a service [Input].
func (body cardRequest) toInput() Input {
	expiry, _ := time.Parse(ExpDateLayout, body.ExpDate)
	return Input{
		Title:     body.Title,
		ExpDate:   ExpDate(expiry),
		LeftCount: body.LeftCount,
		Units:     body.Units,
		ListID:    body.ListID,
	}
}

// listAll handles GET /cards with optional ?list_id= and pagination.
func (handler *Handler) listAll(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	listID := request.URL.Query().Get(FieldListID)
	if listID != "" {
		if err := validate.New().UUID(FieldListID, listID).Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	params := pagination.FromRequest(request)
	cards, meta, err := handler.service.ListForUser(request.Context(), userID, listID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, cards, meta)
}

// get handles GET /cards/{id}.
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

// create handles POST /cards.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body cardRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := validateCardRequest(body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.Create(request.Context(), userID, body.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, item)
}

// update handles PUT /cards/{id}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body cardRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := validateCardRequest(body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.Update(request.Context(), userID, requestutil.ID(request, "id"), body.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

// delete handles DELETE /cards/{id}.
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

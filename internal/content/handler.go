package content

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/cineshelf/service/internal/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Handler holds HTTP handlers for content catalog endpoints.
type Handler struct {
	svc      *Service
	validate *validator.Validate
}

// NewHandler creates a new content Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc, validate: validator.New()}
}

// List godoc
//
//	@Summary	List catalog entries
//	@Tags		contents
//	@Produce	json
//	@Success	200	{array}		Content
//	@Failure	500	{object}	response.ErrorBody
//	@Router		/api/contents [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	contents, err := h.svc.List(r.Context())
	if err != nil {
		log.Printf("content: list: %v", err)
		response.InternalError(w, "failed to list contents")
		return
	}
	if contents == nil {
		contents = []*Content{}
	}
	response.OK(w, contents)
}

// Get godoc
//
//	@Summary	Get one catalog entry
//	@Tags		contents
//	@Produce	json
//	@Param		id	path		string	true	"Content ID"
//	@Success	200	{object}	Content
//	@Failure	404	{object}	response.ErrorBody
//	@Failure	500	{object}	response.ErrorBody
//	@Router		/api/contents/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if h.svc.IsNotFound(err) {
			response.NotFound(w, "content not found")
			return
		}
		log.Printf("content: get %s: %v", id, err)
		response.InternalError(w, "failed to get content")
		return
	}
	response.OK(w, c)
}

// Create godoc
//
//	@Summary	Create a catalog entry
//	@Tags		contents
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		CreateRequest	true	"Content"
//	@Success	201		{object}	Content
//	@Failure	400		{object}	response.ErrorBody
//	@Failure	500		{object}	response.ErrorBody
//	@Router		/api/contents [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, "title and a valid kind are required")
		return
	}

	c, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		log.Printf("content: create: %v", err)
		response.InternalError(w, "failed to create content")
		return
	}
	response.Created(w, c)
}

// Update godoc
//
//	@Summary	Update a catalog entry
//	@Tags		contents
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string			true	"Content ID"
//	@Param		request	body		CreateRequest	true	"Content"
//	@Success	200		{object}	Content
//	@Failure	400		{object}	response.ErrorBody
//	@Failure	404		{object}	response.ErrorBody
//	@Failure	500		{object}	response.ErrorBody
//	@Router		/api/contents/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, "title and a valid kind are required")
		return
	}

	c, err := h.svc.Update(r.Context(), id, &req)
	if err != nil {
		if h.svc.IsNotFound(err) {
			response.NotFound(w, "content not found")
			return
		}
		log.Printf("content: update %s: %v", id, err)
		response.InternalError(w, "failed to update content")
		return
	}
	response.OK(w, c)
}

// Delete godoc
//
//	@Summary	Delete a catalog entry
//	@Tags		contents
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Content ID"
//	@Success	200	{object}	response.MessageBody
//	@Failure	404	{object}	response.ErrorBody
//	@Failure	500	{object}	response.ErrorBody
//	@Router		/api/contents/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if h.svc.IsNotFound(err) {
			response.NotFound(w, "content not found")
			return
		}
		log.Printf("content: delete %s: %v", id, err)
		response.InternalError(w, "failed to delete content")
		return
	}
	response.Message(w, "content deleted successfully")
}

// ReplaceGenres godoc
//
//	@Summary		Replace the genre set of a catalog entry
//	@Description	Atomically swaps the full genre association set in a single transaction.
//	@Tags			contents
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string			true	"Content ID"
//	@Param			request	body		GenresRequest	true	"Genre IDs"
//	@Success		200		{object}	response.MessageBody
//	@Failure		400		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/api/contents/{id}/genres [put]
func (h *Handler) ReplaceGenres(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req GenresRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, "genreIds is required")
		return
	}

	if err := h.svc.ReplaceGenres(r.Context(), id, req.GenreIDs); err != nil {
		log.Printf("content: replace genres for %s: %v", id, err)
		response.InternalError(w, "failed to update genres")
		return
	}
	response.Message(w, "genres updated successfully")
}

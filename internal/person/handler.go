package person

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/cineshelf/service/internal/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Handler holds HTTP handlers for person endpoints.
type Handler struct {
	repo     *Repository
	validate *validator.Validate
}

// NewHandler creates a new person Handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo, validate: validator.New()}
}

// List godoc
//
//	@Summary	List cast & crew
//	@Tags		people
//	@Produce	json
//	@Success	200	{array}		Person
//	@Failure	500	{object}	response.ErrorBody
//	@Router		/api/people [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	people, err := h.repo.List(r.Context())
	if err != nil {
		log.Printf("person: list: %v", err)
		response.InternalError(w, "failed to list people")
		return
	}
	if people == nil {
		people = []*Person{}
	}
	response.OK(w, people)
}

// Get godoc
//
//	@Summary	Get one person
//	@Tags		people
//	@Produce	json
//	@Param		id	path		string	true	"Person ID"
//	@Success	200	{object}	Person
//	@Failure	404	{object}	response.ErrorBody
//	@Failure	500	{object}	response.ErrorBody
//	@Router		/api/people/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.NotFound(w, "person not found")
			return
		}
		log.Printf("person: get %s: %v", id, err)
		response.InternalError(w, "failed to get person")
		return
	}
	response.OK(w, p)
}

// Create godoc
//
//	@Summary	Create a person
//	@Tags		people
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		CreateRequest	true	"Person"
//	@Success	201		{object}	Person
//	@Failure	400		{object}	response.ErrorBody
//	@Failure	500		{object}	response.ErrorBody
//	@Router		/api/people [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, "name is required")
		return
	}

	p, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		log.Printf("person: create: %v", err)
		response.InternalError(w, "failed to create person")
		return
	}
	response.Created(w, p)
}

// Delete godoc
//
//	@Summary	Delete a person
//	@Tags		people
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"Person ID"
//	@Success	200	{object}	response.MessageBody
//	@Failure	404	{object}	response.ErrorBody
//	@Failure	500	{object}	response.ErrorBody
//	@Router		/api/people/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if err == ErrNotFound {
			response.NotFound(w, "person not found")
			return
		}
		log.Printf("person: delete %s: %v", id, err)
		response.InternalError(w, "failed to delete person")
		return
	}
	response.Message(w, "person deleted successfully")
}

package upload

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/cineshelf/service/internal/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Handler holds HTTP handlers for the upload ticket endpoints.
type Handler struct {
	svc      *Service
	validate *validator.Validate
}

// NewHandler creates a new upload Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc, validate: validator.New()}
}

// TicketRequest is the body of POST /api/file.
type TicketRequest struct {
	FileName    string `json:"fileName" validate:"required"`
	ContentType string `json:"contentType" validate:"required"`
	Size        int64  `json:"size" validate:"required,min=1"`
}

// CreateTicket godoc
//
//	@Summary		Mint a presigned upload URL
//	@Description	Returns a time-limited direct-upload URL and the storage key the object will live under.
//	@Tags			files
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		TicketRequest	true	"File descriptor"
//	@Success		200		{object}	Ticket
//	@Failure		400		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/api/file [post]
func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var req TicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, "fileName, contentType and a positive size are required")
		return
	}

	ticket, err := h.svc.CreateTicket(r.Context(), req.FileName)
	if err != nil {
		log.Printf("upload: mint ticket for %q: %v", req.FileName, err)
		response.InternalError(w, "failed to create upload URL")
		return
	}

	response.OK(w, ticket)
}

// DeleteFile godoc
//
//	@Summary		Delete a stored object
//	@Description	Removes the object at the given storage key. Idempotent.
//	@Tags			files
//	@Produce		json
//	@Security		BearerAuth
//	@Param			key	path		string	true	"Storage key"
//	@Success		200	{object}	response.MessageBody
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/api/file/{key} [delete]
func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		response.BadRequest(w, "file key is required")
		return
	}

	if err := h.svc.DeleteObject(r.Context(), key); err != nil {
		log.Printf("upload: delete %q: %v", key, err)
		response.InternalError(w, "failed to delete file")
		return
	}

	response.Message(w, "file deleted successfully")
}

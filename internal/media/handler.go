package media

import (
	"log"
	"net/http"
	"strconv"

	"github.com/cineshelf/service/internal/response"
	"github.com/go-chi/chi/v5"
)

// Handler holds HTTP handlers for media record endpoints.
type Handler struct {
	store Store
}

// NewHandler creates a new media Handler.
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Register godoc
//
//	@Summary		Register an uploaded media file
//	@Description	Persists the metadata of an already-uploaded object as a media record linked to a content or person entity. Called by the client only after the direct upload succeeded.
//	@Tags			media
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Security		BearerAuth
//	@Param			contentId		formData	string	false	"Owning content ID"
//	@Param			personId		formData	string	false	"Owning person ID"
//	@Param			fileUrl			formData	string	true	"Public URL of the uploaded object"
//	@Param			type			formData	string	true	"image or video"
//	@Param			mediaCategory	formData	string	true	"poster, gallery_image, trailer, clip or profile_image"
//	@Param			title			formData	string	false	"Display title"
//	@Param			fileSize		formData	string	false	"File size in bytes"
//	@Param			storageKey		formData	string	false	"Object storage key"
//	@Success		201	{array}		Record
//	@Failure		400	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorDetailsBody
//	@Router			/api/media [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.BadRequest(w, "invalid form body")
		return
	}

	// fileSize arrives as a numeric string over form encoding.
	var fileSize int64
	if v := r.PostFormValue("fileSize"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.BadRequest(w, "fileSize must be a number")
			return
		}
		fileSize = n
	}

	rec := &Record{
		ContentID:  optionalField(r.PostFormValue("contentId")),
		PersonID:   optionalField(r.PostFormValue("personId")),
		FileURL:    r.PostFormValue("fileUrl"),
		Type:       Type(r.PostFormValue("type")),
		Category:   Category(r.PostFormValue("mediaCategory")),
		Title:      r.PostFormValue("title"),
		FileSize:   fileSize,
		StorageKey: r.PostFormValue("storageKey"),
	}

	created, err := h.store.Create(r.Context(), rec)
	if err != nil {
		log.Printf("media: register record: %v", err)
		response.InternalErrorDetails(w, "failed to create media record", err.Error())
		return
	}

	response.Created(w, []*Record{created})
}

// List godoc
//
//	@Summary	List media records for an owner
//	@Tags		media
//	@Produce	json
//	@Security	BearerAuth
//	@Param		contentId	query		string	false	"Owning content ID"
//	@Param		personId	query		string	false	"Owning person ID"
//	@Success	200			{array}		Record
//	@Failure	400			{object}	response.ErrorBody
//	@Failure	500			{object}	response.ErrorBody
//	@Router		/api/media [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	contentID := r.URL.Query().Get("contentId")
	personID := r.URL.Query().Get("personId")

	var (
		records []*Record
		err     error
	)
	switch {
	case contentID != "":
		records, err = h.store.ListByContent(r.Context(), contentID)
	case personID != "":
		records, err = h.store.ListByPerson(r.Context(), personID)
	default:
		response.BadRequest(w, "contentId or personId query parameter is required")
		return
	}

	if err != nil {
		log.Printf("media: list records: %v", err)
		response.InternalError(w, "failed to list media records")
		return
	}

	if records == nil {
		records = []*Record{}
	}
	response.OK(w, records)
}

// Delete godoc
//
//	@Summary		Delete a media record
//	@Description	Removes the database row only. The stored object is deleted separately via DELETE /api/file/{key}.
//	@Tags			media
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Media record ID"
//	@Success		200	{object}	response.MessageBody
//	@Failure		404	{object}	response.ErrorBody
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/api/media/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.Delete(r.Context(), id); err != nil {
		if IsNotFound(err) {
			response.NotFound(w, "media record not found")
			return
		}
		log.Printf("media: delete record %s: %v", id, err)
		response.InternalError(w, "failed to delete media record")
		return
	}

	response.Message(w, "media record deleted successfully")
}

func optionalField(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

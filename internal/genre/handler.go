package genre

import (
	"log"
	"net/http"

	"github.com/cineshelf/service/internal/response"
)

// Handler holds HTTP handlers for genre endpoints.
type Handler struct {
	repo *Repository
}

// NewHandler creates a new genre Handler.
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List godoc
//
//	@Summary	List genres
//	@Tags		genres
//	@Produce	json
//	@Success	200	{array}		Genre
//	@Failure	500	{object}	response.ErrorBody
//	@Router		/api/genres [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	genres, err := h.repo.List(r.Context())
	if err != nil {
		log.Printf("genre: list: %v", err)
		response.InternalError(w, "failed to list genres")
		return
	}
	if genres == nil {
		genres = []*Genre{}
	}
	response.OK(w, genres)
}

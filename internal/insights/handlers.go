package insights

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/emberlyhq/emberly-backend/internal/common/utils"
	"github.com/emberlyhq/emberly-backend/internal/feedback"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetSuggestions serves GET /api/v1/insights/suggestions?count=&category=
func (h *Handler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	count := 0
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid count parameter")
			return
		}
		count = parsed
	}
	category := r.URL.Query().Get("category")

	suggestions, err := h.service.GetPersonalizedSuggestions(r.Context(), userID, category, count)
	if err != nil {
		if errors.Is(err, feedback.ErrStorageUnavailable) {
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Storage unavailable, please retry")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load suggestions")
		return
	}

	utils.RespondWithData(w, http.StatusOK, suggestions)
}

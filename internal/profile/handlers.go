package profile

import (
	"errors"
	"net/http"

	"github.com/emberlyhq/emberly-backend/internal/common/utils"
	"github.com/emberlyhq/emberly-backend/internal/feedback"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		if profile != nil && errors.Is(err, ErrStorageUnavailable) {
			// Built fine, only the snapshot write failed
			utils.RespondWithDataAndMessage(w, http.StatusOK, profile, "Profile computed but not yet saved")
			return
		}
		if errors.Is(err, ErrStorageUnavailable) || errors.Is(err, feedback.ErrStorageUnavailable) {
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Storage unavailable, please retry")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load profile")
		return
	}

	utils.RespondWithData(w, http.StatusOK, profile)
}

func (h *Handler) RebuildProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	profile, err := h.service.BuildProfile(r.Context(), userID)
	if err != nil {
		if profile != nil && errors.Is(err, ErrStorageUnavailable) {
			utils.RespondWithDataAndMessage(w, http.StatusOK, profile, "Profile computed but not yet saved")
			return
		}
		if errors.Is(err, feedback.ErrStorageUnavailable) {
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Storage unavailable, please retry")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to rebuild profile")
		return
	}

	utils.RespondWithData(w, http.StatusOK, profile)
}

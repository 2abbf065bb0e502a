package feedback

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/emberlyhq/emberly-backend/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	var dto SubmitFeedbackDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	eventID, err := h.service.SubmitFeedback(r.Context(), userID, &dto)
	if err != nil {
		if errors.Is(err, ErrStorageUnavailable) {
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Storage unavailable, please retry")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record feedback")
		return
	}

	utils.RespondWithData(w, http.StatusCreated, SubmitFeedbackResponse{EventID: eventID})
}

func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	analysis, err := h.service.Analyze(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrStorageUnavailable) {
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Storage unavailable, please retry")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to analyze feedback")
		return
	}

	utils.RespondWithData(w, http.StatusOK, analysis)
}

func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	var dto PredictRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	prediction, err := h.service.Predict(r.Context(), userID, dto.Category, dto.Intensity)
	if err != nil {
		if errors.Is(err, ErrStorageUnavailable) {
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Storage unavailable, please retry")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to predict response")
		return
	}

	utils.RespondWithData(w, http.StatusOK, prediction)
}

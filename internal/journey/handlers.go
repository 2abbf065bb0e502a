package journey

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/emberlyhq/emberly-backend/internal/common/utils"
	"github.com/emberlyhq/emberly-backend/internal/feedback"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetJourney(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	analytics, err := h.service.AnalyzeJourney(r.Context(), userID)
	if err != nil {
		if errors.Is(err, feedback.ErrStorageUnavailable) {
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Storage unavailable, please retry")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to analyze journey")
		return
	}

	utils.RespondWithData(w, http.StatusOK, analytics)
}

func (h *Handler) DetectMilestones(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	detections, err := h.service.DetectMilestones(r.Context(), userID)
	if err != nil {
		if errors.Is(err, feedback.ErrStorageUnavailable) {
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Storage unavailable, please retry")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to detect milestones")
		return
	}

	if detections == nil {
		detections = []*Detection{}
	}
	utils.RespondWithData(w, http.StatusOK, detections)
}

func (h *Handler) CreateMilestone(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	var dto CreateMilestoneDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	detection := &Detection{
		Type:         dto.Type,
		Title:        dto.Title,
		Description:  dto.Description,
		Confidence:   dto.Confidence,
		Significance: dto.Significance,
		Context:      dto.Context,
	}

	var notes *string
	if dto.Notes != "" {
		notes = &dto.Notes
	}

	milestone, err := h.service.CreateMilestone(r.Context(), userID, detection, notes)
	if err != nil {
		if errors.Is(err, ErrMilestoneExists) {
			utils.RespondWithError(w, http.StatusConflict, "Milestone already achieved")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create milestone")
		return
	}

	utils.RespondWithData(w, http.StatusCreated, CreateMilestoneResponse{MilestoneID: milestone.ID})
}

func (h *Handler) CelebrateMilestone(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	milestoneID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid milestone ID")
		return
	}

	var dto CelebrateMilestoneDTO
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		if err := utils.ValidateStruct(dto); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	var notes *string
	if dto.Notes != "" {
		notes = &dto.Notes
	}

	if err := h.service.CelebrateMilestone(r.Context(), userID, milestoneID, notes); err != nil {
		switch {
		case errors.Is(err, ErrMilestoneNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Milestone not found")
		case errors.Is(err, ErrUnauthorized):
			utils.RespondWithError(w, http.StatusForbidden, "Milestone belongs to another user")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to celebrate milestone")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Success: true, Message: "Milestone celebrated"})
}

func (h *Handler) ListMilestones(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	milestones, err := h.service.ListMilestones(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list milestones")
		return
	}

	if milestones == nil {
		milestones = []*Milestone{}
	}
	utils.RespondWithData(w, http.StatusOK, milestones)
}

package archetype

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/emberlyhq/emberly-backend/internal/common/utils"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// UpsertAssignmentDTO records a quiz result produced upstream.
type UpsertAssignmentDTO struct {
	Primary   string             `json:"primary" validate:"required,oneof=energetic sensual sexual kinky shapeshifter"`
	Secondary string             `json:"secondary,omitempty" validate:"omitempty,oneof=energetic sensual sexual kinky shapeshifter"`
	Scores    map[string]float64 `json:"scores,omitempty"`
}

func (h *Handler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	assignment, err := h.repo.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotAssigned) {
			utils.RespondWithError(w, http.StatusNotFound, "Archetype quiz not completed yet")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load archetype")
		return
	}

	utils.RespondWithData(w, http.StatusOK, assignment)
}

func (h *Handler) UpsertAssignment(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	var dto UpsertAssignmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := utils.ValidateStruct(dto); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	assignment := &Assignment{
		UserID:  userID,
		Primary: dto.Primary,
		Scores:  dto.Scores,
	}
	if dto.Secondary != "" {
		assignment.Secondary = &dto.Secondary
	}

	if err := h.repo.Upsert(r.Context(), assignment); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save archetype")
		return
	}

	utils.RespondWithData(w, http.StatusOK, assignment)
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/userhub-io/userhub/internal/api/shared"
	"github.com/userhub-io/userhub/internal/platform/logger"
	"github.com/userhub-io/userhub/internal/service"
)

// InterestHandler handles interest catalog and user-interest endpoints.
type InterestHandler struct {
	interestService service.InterestService
	validator       *validator.Validate
	logger          *slog.Logger
}

// NewInterestHandler creates a new InterestHandler with the given dependencies.
func NewInterestHandler(interestService service.InterestService, logger *slog.Logger) *InterestHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for InterestHandler")
	}

	return &InterestHandler{
		interestService: interestService,
		validator:       validator.New(),
		logger:          logger.With(slog.String("component", "interest_handler")),
	}
}

// ShowInterests handles GET /api/users/showinterest requests, returning up
// to ten of the caller's interests chosen at random.
func (h *InterestHandler) ShowInterests(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	rows, err := h.interestService.ListSample(r.Context(), userID)
	if err != nil {
		log.Error("failed to sample interests",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		HandleAPIError(w, r, err, "Failed to retrieve interests")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, rows)
}

// UpdateInterests handles POST /api/users/update_interests requests,
// replacing the caller's interest set.
func (h *InterestHandler) UpdateInterests(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpdateInterestsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	failed, err := h.interestService.ReplaceInterests(r.Context(), userID, req.InterestIDs, req.InterestNames)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update interests")
		return
	}

	if len(failed) > 0 {
		shared.RespondWithJSON(w, r, http.StatusBadRequest, UpdateInterestsResponse{
			Message:         "Some interests could not be added",
			FailedInterests: failed,
		})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UpdateInterestsResponse{
		Message: "Interests updated",
	})
}

// Create handles POST /api/interests requests.
func (h *InterestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req InterestRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	interest, err := h.interestService.CreateInterest(r.Context(), req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create interest")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, interest)
}

// List handles GET /api/interests requests.
func (h *InterestHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	interests, err := h.interestService.ListInterests(r.Context(), limit, offset)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list interests")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, interests)
}

// Get handles GET /api/interests/{id} requests.
func (h *InterestHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	interest, err := h.interestService.GetInterest(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve interest")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, interest)
}

// Update handles PUT /api/interests/{id} requests.
func (h *InterestHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req InterestRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	interest, err := h.interestService.UpdateInterest(r.Context(), id, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update interest")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, interest)
}

// Delete handles DELETE /api/interests/{id} requests.
func (h *InterestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.interestService.DeleteInterest(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete interest")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/albapepper/nba-analytics/internal/api/respond"
	"github.com/albapepper/nba-analytics/internal/predict"
)

const maxPredictBody = 1 << 20

// Predict projects a player's next game from the supplied stats.
// @Summary Predict next game
// @Description Sends the supplied recent stats to the prediction oracle and returns a validated projection {pts, reb, ast, reasoning}.
// @Tags predictions
// @Accept json
// @Produce json
// @Param request body predict.Request true "Player name and recent stats"
// @Success 200 {object} predict.Result
// @Failure 400 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /predict [post]
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var req predict.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPredictBody))
	if err := dec.Decode(&req); err != nil {
		h.logger.Info("Rejected prediction body", "error", err)
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be JSON {player_name, stats}")
		return
	}

	res, err := h.predictor.Predict(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Prediction-Schema", predict.SchemaVersion)
	respond.WriteJSONObject(w, http.StatusOK, res)
}

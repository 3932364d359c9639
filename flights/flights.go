package flights

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"globetrotter/amadeus"
	"globetrotter/utils"

	"github.com/julienschmidt/httprouter"
)

var provider *amadeus.Client

// Init wires the travel inventory client used for pricing confirmation.
func Init(client *amadeus.Client) {
	provider = client
}

// POST /api/flights/price
// Confirms the live price of flight offers obtained from a previous search.
func ConfirmFlightPrice(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		FlightOffers []json.RawMessage `json:"flightOffers"`
		Include      []string          `json:"include"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if len(req.FlightOffers) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "flightOffers array is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	log.Printf("Confirming price for %d flight offer(s)", len(req.FlightOffers))

	pricing, err := provider.ConfirmFlightPrice(ctx, req.FlightOffers, req.Include)
	if err != nil {
		apiErr := amadeus.AsAPIError(err)
		log.Printf("Flight pricing error: %s (%s)", apiErr.Message, apiErr.Code)
		utils.RespondWithJSON(w, apiErr.Status, utils.M{
			"error":   apiErr.Message,
			"code":    apiErr.Code,
			"details": apiErr.Errors,
		})
		return
	}

	utils.Success(w, http.StatusOK, pricing)
}

package itinerary

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"globetrotter/db"
	"globetrotter/models"
	"globetrotter/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// POST /api/itineraries/:id/flights
func AddFlight(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	itineraryID := ps.ByName("id")

	var req struct {
		FlightOfferID string      `json:"flightOfferId"`
		FromCityCode  string      `json:"fromCityCode"`
		ToCityCode    string      `json:"toCityCode"`
		DepartureDate string      `json:"departureDate"`
		ArrivalDate   string      `json:"arrivalDate"`
		CarrierCode   string      `json:"carrierCode"`
		FlightNumber  string      `json:"flightNumber"`
		Duration      string      `json:"duration"`
		Passengers    interface{} `json:"passengers"`
		PriceBase     interface{} `json:"priceBase"`
		PriceTotal    interface{} `json:"priceTotal"`
		Currency      string      `json:"currency"`
		CabinClass    string      `json:"cabinClass"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.FromCityCode == "" || req.ToCityCode == "" || req.PriceTotal == nil || req.Currency == "" {
		utils.FailRequired(w, "Missing required fields",
			[]string{"fromCityCode", "toCityCode", "priceTotal", "currency"})
		return
	}

	priceTotal, err := utils.ParseOptionalFloat("priceTotal", req.PriceTotal)
	if err != nil || priceTotal == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid value for priceTotal")
		return
	}
	priceBase, err := utils.ParseOptionalFloat("priceBase", req.PriceBase)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	passengers, err := utils.ParseOptionalInt("passengers", req.Passengers)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	departure, err := parseDate("departureDate", req.DepartureDate)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	arrival, err := parseDate("arrivalDate", req.ArrivalDate)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := db.ItineraryCollection.CountDocuments(ctx, bson.M{"itineraryid": itineraryID})
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to add flight", err.Error())
		return
	}
	if count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}

	passengerCount := 1
	if passengers != nil {
		passengerCount = *passengers
	}

	flight := models.FlightSegment{
		FlightID:      utils.GetUUID(),
		ItineraryID:   itineraryID,
		FlightOfferID: req.FlightOfferID,
		FromCityCode:  req.FromCityCode,
		ToCityCode:    req.ToCityCode,
		DepartureDate: departure,
		ArrivalDate:   arrival,
		CarrierCode:   req.CarrierCode,
		FlightNumber:  req.FlightNumber,
		Duration:      req.Duration,
		Passengers:    passengerCount,
		PriceBase:     priceBase,
		PriceTotal:    *priceTotal,
		Currency:      req.Currency,
		CabinClass:    req.CabinClass,
		CreatedAt:     time.Now(),
	}

	if _, err := db.FlightCollection.InsertOne(ctx, flight); err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to add flight", err.Error())
		return
	}

	log.Printf("Added flight: %s -> %s to itinerary %s", flight.FromCityCode, flight.ToCityCode, itineraryID)
	utils.Success(w, http.StatusCreated, flight)
}

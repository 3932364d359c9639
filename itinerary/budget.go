package itinerary

import (
	"context"
	"log"
	"net/http"
	"time"

	"globetrotter/amadeus"
	"globetrotter/db"
	"globetrotter/models"
	"globetrotter/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CategoryBreakdown is one line of the budget report.
type CategoryBreakdown struct {
	Cost       float64 `json:"cost"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Breakdown is the full budget report for an itinerary. Amounts are summed
// as stored, without currency conversion; Currency is the itinerary's
// declared label.
type Breakdown struct {
	Flights    CategoryBreakdown `json:"flights"`
	Hotels     CategoryBreakdown `json:"hotels"`
	Activities CategoryBreakdown `json:"activities"`
	Total      float64           `json:"total"`
	Currency   string            `json:"currency"`
	Budget     *float64          `json:"budget"`
	Remaining  *float64          `json:"remaining"`
	OverBudget bool              `json:"overBudget"`
}

// computeBreakdown aggregates the costs of a fully loaded itinerary.
// Activities without a price contribute zero.
func computeBreakdown(it *models.Itinerary) Breakdown {
	var flightsCost, hotelsCost, activitiesCost float64
	var hotelCount, activityCount int

	for _, flight := range it.Flights {
		flightsCost += flight.PriceTotal
	}
	for _, stop := range it.Stops {
		for _, hotel := range stop.Hotels {
			hotelsCost += hotel.PriceTotal
			hotelCount++
		}
		for _, activity := range stop.Activities {
			if activity.Price != nil {
				activitiesCost += *activity.Price
			}
			activityCount++
		}
	}

	totalCost := flightsCost + hotelsCost + activitiesCost

	percentage := func(cost float64) float64 {
		if totalCost > 0 {
			return cost / totalCost * 100
		}
		return 0
	}

	breakdown := Breakdown{
		Flights:    CategoryBreakdown{Cost: flightsCost, Count: len(it.Flights), Percentage: percentage(flightsCost)},
		Hotels:     CategoryBreakdown{Cost: hotelsCost, Count: hotelCount, Percentage: percentage(hotelsCost)},
		Activities: CategoryBreakdown{Cost: activitiesCost, Count: activityCount, Percentage: percentage(activitiesCost)},
		Total:      totalCost,
		Currency:   it.Currency,
		Budget:     it.TotalBudget,
	}
	if it.TotalBudget != nil {
		remaining := *it.TotalBudget - totalCost
		breakdown.Remaining = &remaining
		breakdown.OverBudget = totalCost > *it.TotalBudget
	}
	return breakdown
}

// upsertBudgetSummary writes the snapshot, keyed by itinerary id: exactly one
// summary row per itinerary, last writer wins.
func upsertBudgetSummary(ctx context.Context, it *models.Itinerary, breakdown Breakdown) (*models.BudgetSummary, error) {
	summary := models.BudgetSummary{
		ItineraryID:    it.ItineraryID,
		FlightsCost:    breakdown.Flights.Cost,
		HotelsCost:     breakdown.Hotels.Cost,
		ActivitiesCost: breakdown.Activities.Cost,
		TotalCost:      breakdown.Total,
		Currency:       it.Currency,
		LastCalculated: time.Now(),
	}

	opts := options.Update().SetUpsert(true)
	_, err := db.BudgetCollection.UpdateOne(ctx,
		bson.M{"itineraryid": it.ItineraryID},
		bson.M{"$set": summary},
		opts)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// GET /api/itineraries/:id/budget
func CalculateBudget(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	itineraryID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	it, err := loadItinerary(ctx, itineraryID, true)
	if err == errNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to calculate budget", err.Error())
		return
	}

	log.Printf("Calculating budget for itinerary: %s", itineraryID)

	breakdown := computeBreakdown(it)
	summary, err := upsertBudgetSummary(ctx, it, breakdown)
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to calculate budget", err.Error())
		return
	}

	log.Printf("Budget calculated: %.2f %s (Flights: %.2f, Hotels: %.2f, Activities: %.2f)",
		breakdown.Total, it.Currency, breakdown.Flights.Cost, breakdown.Hotels.Cost, breakdown.Activities.Cost)

	utils.Success(w, http.StatusOK, utils.M{
		"summary":        summary,
		"breakdown":      breakdown,
		"lastCalculated": summary.LastCalculated,
	})
}

// POST /api/itineraries/:id/stops/:stopId/hotels/refresh
// Re-prices a stop's hotels against the provider's current best-rate offers.
func RefreshHotelPricing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	stopID := ps.ByName("stopId")

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var stop models.Stop
	err := db.StopCollection.FindOne(ctx, bson.M{"stopid": stopID}).Decode(&stop)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Stop not found")
		return
	}
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to refresh hotel pricing", err.Error())
		return
	}

	hotels, err := findHotels(ctx, stopID)
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to refresh hotel pricing", err.Error())
		return
	}
	if len(hotels) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No hotels added to this stop")
		return
	}

	hotelIDs := make([]string, 0, len(hotels))
	for _, hotel := range hotels {
		hotelIDs = append(hotelIDs, hotel.CatalogID)
	}

	checkIn := time.Now().Format("2006-01-02")
	checkOut := time.Now().Add(24 * time.Hour).Format("2006-01-02")
	if stop.CheckInDate != nil {
		checkIn = stop.CheckInDate.Format("2006-01-02")
	}
	if stop.CheckOutDate != nil {
		checkOut = stop.CheckOutDate.Format("2006-01-02")
	}

	log.Printf("Refreshing pricing for %d hotel(s) on stop %s", len(hotels), stopID)

	offers, err := provider.GetHotelOffers(ctx, amadeus.HotelOffersParams{
		HotelIDs:     hotelIDs,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
	})
	if err != nil {
		apiErr := amadeus.AsAPIError(err)
		utils.RespondWithJSON(w, apiErr.Status, utils.M{
			"error":   apiErr.Message,
			"code":    apiErr.Code,
			"details": apiErr.Errors,
		})
		return
	}

	updated := []models.Hotel{}
	for _, offerData := range offers {
		if len(offerData.Offers) == 0 {
			continue
		}
		best := offerData.Offers[0]
		for _, hotel := range hotels {
			if hotel.CatalogID != offerData.Hotel.HotelID {
				continue
			}
			set := bson.M{
				"offerid":  best.ID,
				"currency": best.Price.Currency,
			}
			if best.Price.Base != nil {
				set["pricebase"] = *best.Price.Base
			}
			if best.Price.Total != nil {
				set["pricetotal"] = *best.Price.Total
			}
			if _, err := db.HotelCollection.UpdateOne(ctx, bson.M{"hotelid": hotel.HotelID}, bson.M{"$set": set}); err != nil {
				utils.Fail(w, http.StatusInternalServerError, "Failed to refresh hotel pricing", err.Error())
				return
			}
			var fresh models.Hotel
			if err := db.HotelCollection.FindOne(ctx, bson.M{"hotelid": hotel.HotelID}).Decode(&fresh); err == nil {
				updated = append(updated, fresh)
			}
		}
	}

	log.Printf("Refreshed pricing for %d hotel(s)", len(updated))
	utils.SuccessCount(w, http.StatusOK, len(updated), updated)
}

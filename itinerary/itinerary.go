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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// POST /api/itineraries
func CreateItinerary(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		UserID      string      `json:"userId"`
		Name        string      `json:"name"`
		Description string      `json:"description"`
		TotalBudget interface{} `json:"totalBudget"`
		Currency    string      `json:"currency"`
		StartDate   string      `json:"startDate"`
		EndDate     string      `json:"endDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.UserID == "" || req.Name == "" {
		utils.FailRequired(w, "Missing required fields", []string{"userId", "name"})
		return
	}

	totalBudget, err := utils.ParseOptionalFloat("totalBudget", req.TotalBudget)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	startDate, err := parseDate("startDate", req.StartDate)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	endDate, err := parseDate("endDate", req.EndDate)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	now := time.Now()
	it := models.Itinerary{
		ItineraryID: utils.GetUUID(),
		UserID:      req.UserID,
		Name:        req.Name,
		Description: req.Description,
		TotalBudget: totalBudget,
		Currency:    currency,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      "planning",
		CreatedAt:   now,
		UpdatedAt:   now,
		Stops:       []models.Stop{},
		Flights:     []models.FlightSegment{},
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.ItineraryCollection.InsertOne(ctx, it); err != nil {
		log.Printf("Error creating itinerary: %v", err)
		utils.Fail(w, http.StatusInternalServerError, "Failed to create itinerary", err.Error())
		return
	}

	log.Printf("Created itinerary: %s - %q", it.ItineraryID, it.Name)
	utils.Success(w, http.StatusCreated, it)
}

// GET /api/itineraries?userId=xxx
func GetItineraries(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "userId query parameter is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdat", Value: -1}})
	cursor, err := db.ItineraryCollection.Find(ctx, bson.M{"userid": userID}, opts)
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to fetch itineraries", err.Error())
		return
	}
	defer cursor.Close(ctx)

	itineraries := []models.Itinerary{}
	for cursor.Next(ctx) {
		var it models.Itinerary
		if err := cursor.Decode(&it); err != nil {
			utils.Fail(w, http.StatusInternalServerError, "Failed to fetch itineraries", err.Error())
			return
		}
		if it.Stops, err = findStops(ctx, it.ItineraryID, false); err != nil {
			utils.Fail(w, http.StatusInternalServerError, "Failed to fetch itineraries", err.Error())
			return
		}
		if it.Flights, err = findFlights(ctx, it.ItineraryID, false); err != nil {
			utils.Fail(w, http.StatusInternalServerError, "Failed to fetch itineraries", err.Error())
			return
		}
		if it.BudgetSummary, err = findBudget(ctx, it.ItineraryID); err != nil {
			utils.Fail(w, http.StatusInternalServerError, "Failed to fetch itineraries", err.Error())
			return
		}
		itineraries = append(itineraries, it)
	}

	utils.SuccessCount(w, http.StatusOK, len(itineraries), itineraries)
}

// GET /api/itineraries/:id
func GetItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	itineraryID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	it, err := loadItinerary(ctx, itineraryID, true)
	if err == errNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to fetch itinerary", err.Error())
		return
	}

	var owner models.UserPublic
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": it.UserID}).Decode(&owner); err == nil {
		it.User = &owner
	}

	utils.Success(w, http.StatusOK, it)
}

// PUT /api/itineraries/:id
func UpdateItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	itineraryID := ps.ByName("id")

	var req struct {
		Name        *string     `json:"name"`
		Description *string     `json:"description"`
		TotalBudget interface{} `json:"totalBudget"`
		Currency    *string     `json:"currency"`
		StartDate   *string     `json:"startDate"`
		EndDate     *string     `json:"endDate"`
		Status      *string     `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	// only fields present in the request are touched
	set := bson.M{"updatedat": time.Now()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.TotalBudget != nil {
		totalBudget, err := utils.ParseOptionalFloat("totalBudget", req.TotalBudget)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		set["totalbudget"] = totalBudget
	}
	if req.Currency != nil {
		set["currency"] = *req.Currency
	}
	if req.StartDate != nil {
		startDate, err := parseDate("startDate", *req.StartDate)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		set["startdate"] = startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate("endDate", *req.EndDate)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		set["enddate"] = endDate
	}
	if req.Status != nil {
		if !validStatus(*req.Status) {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid status")
			return
		}
		set["status"] = *req.Status
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := db.ItineraryCollection.UpdateOne(ctx, bson.M{"itineraryid": itineraryID}, bson.M{"$set": set})
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to update itinerary", err.Error())
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}

	it, err := loadItinerary(ctx, itineraryID, false)
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to fetch itinerary", err.Error())
		return
	}

	log.Printf("Updated itinerary: %s", itineraryID)
	utils.Success(w, http.StatusOK, it)
}

// DELETE /api/itineraries/:id
// Deleting an itinerary cascades to its stops (with their activities and
// hotels), flights, and budget summary.
func DeleteItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	itineraryID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := db.ItineraryCollection.DeleteOne(ctx, bson.M{"itineraryid": itineraryID})
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to delete itinerary", err.Error())
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}

	if err := cascadeDeleteItinerary(ctx, itineraryID); err != nil {
		log.Printf("Cascade delete failed for itinerary %s: %v", itineraryID, err)
		utils.Fail(w, http.StatusInternalServerError, "Failed to delete itinerary", err.Error())
		return
	}

	log.Printf("Deleted itinerary: %s", itineraryID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Itinerary deleted successfully"})
}

func cascadeDeleteItinerary(ctx context.Context, itineraryID string) error {
	cursor, err := db.StopCollection.Find(ctx, bson.M{"itineraryid": itineraryID})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	stopIDs := []string{}
	for cursor.Next(ctx) {
		var stop models.Stop
		if err := cursor.Decode(&stop); err != nil {
			return err
		}
		stopIDs = append(stopIDs, stop.StopID)
	}
	if err := cursor.Err(); err != nil {
		return err
	}

	if len(stopIDs) > 0 {
		filter := bson.M{"stopid": bson.M{"$in": stopIDs}}
		if _, err := db.ActivityCollection.DeleteMany(ctx, filter); err != nil {
			return err
		}
		if _, err := db.HotelCollection.DeleteMany(ctx, filter); err != nil {
			return err
		}
	}
	if _, err := db.StopCollection.DeleteMany(ctx, bson.M{"itineraryid": itineraryID}); err != nil {
		return err
	}
	if _, err := db.FlightCollection.DeleteMany(ctx, bson.M{"itineraryid": itineraryID}); err != nil {
		return err
	}
	if _, err := db.BudgetCollection.DeleteMany(ctx, bson.M{"itineraryid": itineraryID}); err != nil {
		return err
	}
	return nil
}

func validStatus(status string) bool {
	switch status {
	case "planning", "confirmed", "completed", "cancelled":
		return true
	}
	return false
}

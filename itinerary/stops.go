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
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// nextSequence returns the sequence for a stop appended to the end of the
// itinerary: max existing + 1, or 1 for the first stop.
func nextSequence(ctx context.Context, itineraryID string) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "sequence", Value: -1}})
	var last models.Stop
	err := db.StopCollection.FindOne(ctx, bson.M{"itineraryid": itineraryID}, opts).Decode(&last)
	if err == mongo.ErrNoDocuments {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return last.Sequence + 1, nil
}

// sequenceTaken reports whether another stop in the itinerary already holds
// the sequence. excludeStopID skips the stop being updated.
func sequenceTaken(ctx context.Context, itineraryID string, sequence int, excludeStopID string) (bool, error) {
	filter := bson.M{"itineraryid": itineraryID, "sequence": sequence}
	if excludeStopID != "" {
		filter["stopid"] = bson.M{"$ne": excludeStopID}
	}
	count, err := db.StopCollection.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// POST /api/itineraries/:id/stops
func AddStop(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	itineraryID := ps.ByName("id")

	var req struct {
		CityCode     string      `json:"cityCode"`
		CityName     string      `json:"cityName"`
		CountryCode  string      `json:"countryCode"`
		Latitude     interface{} `json:"latitude"`
		Longitude    interface{} `json:"longitude"`
		Sequence     *int        `json:"sequence"`
		CheckInDate  string      `json:"checkInDate"`
		CheckOutDate string      `json:"checkOutDate"`
		Nights       interface{} `json:"nights"`
		Notes        string      `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.CityCode == "" || req.CityName == "" {
		utils.FailRequired(w, "Missing required fields", []string{"cityCode", "cityName"})
		return
	}

	latitude, err := utils.ParseOptionalFloat("latitude", req.Latitude)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	longitude, err := utils.ParseOptionalFloat("longitude", req.Longitude)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	nights, err := utils.ParseOptionalInt("nights", req.Nights)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	checkIn, err := parseDate("checkInDate", req.CheckInDate)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	checkOut, err := parseDate("checkOutDate", req.CheckOutDate)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := db.ItineraryCollection.CountDocuments(ctx, bson.M{"itineraryid": itineraryID})
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to add stop", err.Error())
		return
	}
	if count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}

	sequence := 0
	if req.Sequence != nil {
		sequence = *req.Sequence
	} else {
		if sequence, err = nextSequence(ctx, itineraryID); err != nil {
			utils.Fail(w, http.StatusInternalServerError, "Failed to add stop", err.Error())
			return
		}
	}

	taken, err := sequenceTaken(ctx, itineraryID, sequence, "")
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to add stop", err.Error())
		return
	}
	if taken {
		utils.RespondWithError(w, http.StatusConflict, "A stop with this sequence already exists in this itinerary")
		return
	}

	stop := models.Stop{
		StopID:       utils.GetUUID(),
		ItineraryID:  itineraryID,
		CityCode:     req.CityCode,
		CityName:     req.CityName,
		CountryCode:  req.CountryCode,
		Latitude:     latitude,
		Longitude:    longitude,
		Sequence:     sequence,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Nights:       nights,
		Notes:        req.Notes,
		CreatedAt:    time.Now(),
		Activities:   []models.Activity{},
		Hotels:       []models.Hotel{},
	}

	if _, err := db.StopCollection.InsertOne(ctx, stop); err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to add stop", err.Error())
		return
	}

	log.Printf("Added stop: %s (%s) to itinerary %s", stop.CityName, stop.CityCode, itineraryID)
	utils.Success(w, http.StatusCreated, stop)
}

// GET /api/itineraries/:id/stops
func GetStops(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	itineraryID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	stops, err := findStops(ctx, itineraryID, true)
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to fetch stops", err.Error())
		return
	}
	utils.SuccessCount(w, http.StatusOK, len(stops), stops)
}

// PUT /api/itineraries/:id/stops/:stopId
func UpdateStop(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	stopID := ps.ByName("stopId")

	var req struct {
		CityCode     *string     `json:"cityCode"`
		CityName     *string     `json:"cityName"`
		CountryCode  *string     `json:"countryCode"`
		Latitude     interface{} `json:"latitude"`
		Longitude    interface{} `json:"longitude"`
		Sequence     *int        `json:"sequence"`
		CheckInDate  *string     `json:"checkInDate"`
		CheckOutDate *string     `json:"checkOutDate"`
		Nights       interface{} `json:"nights"`
		Notes        *string     `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var existing models.Stop
	err := db.StopCollection.FindOne(ctx, bson.M{"stopid": stopID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Stop not found")
		return
	}
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to update stop", err.Error())
		return
	}

	set := bson.M{}
	if req.CityCode != nil {
		set["citycode"] = *req.CityCode
	}
	if req.CityName != nil {
		set["cityname"] = *req.CityName
	}
	if req.CountryCode != nil {
		set["countrycode"] = *req.CountryCode
	}
	if req.Latitude != nil {
		latitude, err := utils.ParseOptionalFloat("latitude", req.Latitude)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		set["latitude"] = latitude
	}
	if req.Longitude != nil {
		longitude, err := utils.ParseOptionalFloat("longitude", req.Longitude)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		set["longitude"] = longitude
	}
	if req.Sequence != nil {
		taken, err := sequenceTaken(ctx, existing.ItineraryID, *req.Sequence, stopID)
		if err != nil {
			utils.Fail(w, http.StatusInternalServerError, "Failed to update stop", err.Error())
			return
		}
		if taken {
			utils.RespondWithError(w, http.StatusConflict, "A stop with this sequence already exists in this itinerary")
			return
		}
		set["sequence"] = *req.Sequence
	}
	if req.CheckInDate != nil {
		checkIn, err := parseDate("checkInDate", *req.CheckInDate)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		set["checkindate"] = checkIn
	}
	if req.CheckOutDate != nil {
		checkOut, err := parseDate("checkOutDate", *req.CheckOutDate)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		set["checkoutdate"] = checkOut
	}
	if req.Nights != nil {
		nights, err := utils.ParseOptionalInt("nights", req.Nights)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		set["nights"] = nights
	}
	if req.Notes != nil {
		set["notes"] = *req.Notes
	}

	if len(set) > 0 {
		if _, err := db.StopCollection.UpdateOne(ctx, bson.M{"stopid": stopID}, bson.M{"$set": set}); err != nil {
			utils.Fail(w, http.StatusInternalServerError, "Failed to update stop", err.Error())
			return
		}
	}

	var updated models.Stop
	if err := db.StopCollection.FindOne(ctx, bson.M{"stopid": stopID}).Decode(&updated); err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to fetch stop", err.Error())
		return
	}
	if updated.Activities, err = findActivities(ctx, stopID); err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to fetch stop", err.Error())
		return
	}
	if updated.Hotels, err = findHotels(ctx, stopID); err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to fetch stop", err.Error())
		return
	}

	log.Printf("Updated stop: %s", stopID)
	utils.Success(w, http.StatusOK, updated)
}

// DELETE /api/itineraries/:id/stops/:stopId
// Deleting a stop cascades to its activities and hotels.
func DeleteStop(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	stopID := ps.ByName("stopId")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := db.StopCollection.DeleteOne(ctx, bson.M{"stopid": stopID})
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to delete stop", err.Error())
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Stop not found")
		return
	}

	if _, err := db.ActivityCollection.DeleteMany(ctx, bson.M{"stopid": stopID}); err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to delete stop", err.Error())
		return
	}
	if _, err := db.HotelCollection.DeleteMany(ctx, bson.M{"stopid": stopID}); err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to delete stop", err.Error())
		return
	}

	log.Printf("Deleted stop: %s", stopID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Stop deleted successfully"})
}

// POST /api/itineraries/:id/stops/:stopId/activities
func AddActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	stopID := ps.ByName("stopId")

	var req struct {
		CatalogID        string      `json:"catalogId"`
		Name             string      `json:"name"`
		ShortDescription string      `json:"shortDescription"`
		Description      string      `json:"description"`
		Rating           interface{} `json:"rating"`
		Price            interface{} `json:"price"`
		Currency         string      `json:"currency"`
		BookingLink      string      `json:"bookingLink"`
		MinimumDuration  string      `json:"minimumDuration"`
		Pictures         []string    `json:"pictures"`
		Latitude         interface{} `json:"latitude"`
		Longitude        interface{} `json:"longitude"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.CatalogID == "" || req.Name == "" {
		utils.FailRequired(w, "Missing required fields", []string{"catalogId", "name"})
		return
	}

	rating, err := utils.ParseOptionalFloat("rating", req.Rating)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	price, err := utils.ParseOptionalFloat("price", req.Price)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	latitude, err := utils.ParseOptionalFloat("latitude", req.Latitude)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	longitude, err := utils.ParseOptionalFloat("longitude", req.Longitude)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := db.StopCollection.CountDocuments(ctx, bson.M{"stopid": stopID})
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to add activity", err.Error())
		return
	}
	if count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Stop not found")
		return
	}

	pictures := req.Pictures
	if pictures == nil {
		pictures = []string{}
	}

	activity := models.Activity{
		ActivityID:       utils.GetUUID(),
		StopID:           stopID,
		CatalogID:        req.CatalogID,
		Name:             req.Name,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		Rating:           rating,
		Price:            price,
		Currency:         req.Currency,
		BookingLink:      req.BookingLink,
		MinimumDuration:  req.MinimumDuration,
		Pictures:         pictures,
		Latitude:         latitude,
		Longitude:        longitude,
		CreatedAt:        time.Now(),
	}

	if _, err := db.ActivityCollection.InsertOne(ctx, activity); err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to add activity", err.Error())
		return
	}

	log.Printf("Added activity: %s to stop %s", activity.Name, stopID)
	utils.Success(w, http.StatusCreated, activity)
}

// POST /api/itineraries/:id/stops/:stopId/hotels
func AddHotel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	stopID := ps.ByName("stopId")

	var req struct {
		CatalogID    string      `json:"catalogId"`
		HotelName    string      `json:"hotelName"`
		ChainCode    string      `json:"chainCode"`
		OfferID      string      `json:"offerId"`
		RoomType     string      `json:"roomType"`
		CheckInDate  string      `json:"checkInDate"`
		CheckOutDate string      `json:"checkOutDate"`
		Nights       interface{} `json:"nights"`
		PriceBase    interface{} `json:"priceBase"`
		PriceTotal   interface{} `json:"priceTotal"`
		Currency     string      `json:"currency"`
		PaymentType  string      `json:"paymentType"`
		Cancellation string      `json:"cancellation"`
		Latitude     interface{} `json:"latitude"`
		Longitude    interface{} `json:"longitude"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	// everything required is checked before any write happens
	if req.CatalogID == "" || req.HotelName == "" || req.CheckInDate == "" ||
		req.CheckOutDate == "" || req.PriceTotal == nil || req.Currency == "" {
		utils.FailRequired(w, "Missing required fields",
			[]string{"catalogId", "hotelName", "checkInDate", "checkOutDate", "priceTotal", "currency"})
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
	nights, err := utils.ParseOptionalInt("nights", req.Nights)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	latitude, err := utils.ParseOptionalFloat("latitude", req.Latitude)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	longitude, err := utils.ParseOptionalFloat("longitude", req.Longitude)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	checkIn, err := parseDate("checkInDate", req.CheckInDate)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	checkOut, err := parseDate("checkOutDate", req.CheckOutDate)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := db.StopCollection.CountDocuments(ctx, bson.M{"stopid": stopID})
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to add hotel", err.Error())
		return
	}
	if count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Stop not found")
		return
	}

	nightCount := 1
	if nights != nil {
		nightCount = *nights
	}

	hotel := models.Hotel{
		HotelID:      utils.GetUUID(),
		StopID:       stopID,
		CatalogID:    req.CatalogID,
		HotelName:    req.HotelName,
		ChainCode:    req.ChainCode,
		OfferID:      req.OfferID,
		RoomType:     req.RoomType,
		CheckInDate:  *checkIn,
		CheckOutDate: *checkOut,
		Nights:       nightCount,
		PriceBase:    priceBase,
		PriceTotal:   *priceTotal,
		Currency:     req.Currency,
		PaymentType:  req.PaymentType,
		Cancellation: req.Cancellation,
		Latitude:     latitude,
		Longitude:    longitude,
		CreatedAt:    time.Now(),
	}

	if _, err := db.HotelCollection.InsertOne(ctx, hotel); err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to add hotel", err.Error())
		return
	}

	log.Printf("Added hotel: %s to stop %s", hotel.HotelName, stopID)
	utils.Success(w, http.StatusCreated, hotel)
}

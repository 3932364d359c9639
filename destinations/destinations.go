package destinations

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"globetrotter/amadeus"
	"globetrotter/rdx"
	"globetrotter/utils"

	"github.com/julienschmidt/httprouter"
)

var provider *amadeus.Client

// Init wires the travel inventory client used by all destination handlers.
func Init(client *amadeus.Client) {
	provider = client
}

const citySearchTTL = 15 * time.Minute

func respondProviderError(w http.ResponseWriter, err error) {
	apiErr := amadeus.AsAPIError(err)
	log.Printf("Provider error: %s (%s)", apiErr.Message, apiErr.Code)
	utils.RespondWithJSON(w, apiErr.Status, utils.M{
		"error":   apiErr.Message,
		"code":    apiErr.Code,
		"details": apiErr.Errors,
	})
}

func parseFloatParam(r *http.Request, name string) (float64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// GET /api/destinations/cities?keyword=xxx&countryCode=FR&max=10
func SearchCities(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "keyword query parameter is required")
		return
	}
	countryCode := r.URL.Query().Get("countryCode")
	max, _ := strconv.Atoi(r.URL.Query().Get("max"))

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	cacheKey := "cities:" + strings.ToLower(keyword) + ":" + countryCode + ":" + strconv.Itoa(max)
	var cities []amadeus.City
	if rdx.GetJSON(ctx, cacheKey, &cities) {
		utils.SuccessCount(w, http.StatusOK, len(cities), cities)
		return
	}

	cities, err := provider.SearchCities(ctx, keyword, countryCode, max)
	if err != nil {
		respondProviderError(w, err)
		return
	}

	rdx.SetJSON(ctx, cacheKey, cities, citySearchTTL)
	utils.SuccessCount(w, http.StatusOK, len(cities), cities)
}

// GET /api/destinations/cities/:code
func GetCityByCode(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	code := ps.ByName("code")

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	cacheKey := "city:" + strings.ToUpper(code)
	var city amadeus.City
	if rdx.GetJSON(ctx, cacheKey, &city) {
		utils.Success(w, http.StatusOK, city)
		return
	}

	result, err := provider.GetCityByCode(ctx, code)
	if err != nil {
		respondProviderError(w, err)
		return
	}

	rdx.SetJSON(ctx, cacheKey, result, citySearchTTL)
	utils.Success(w, http.StatusOK, result)
}

// GET /api/destinations/activities?latitude=48.8&longitude=2.3&radius=5
func SearchActivities(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	latitude, okLat := parseFloatParam(r, "latitude")
	longitude, okLng := parseFloatParam(r, "longitude")
	if !okLat || !okLng {
		utils.FailRequired(w, "Missing required query parameters", []string{"latitude", "longitude"})
		return
	}
	radius, ok := parseFloatParam(r, "radius")
	if !ok {
		radius = 5
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	activities, err := provider.SearchActivities(ctx, latitude, longitude, radius)
	if err != nil {
		respondProviderError(w, err)
		return
	}

	utils.SuccessCount(w, http.StatusOK, len(activities), activities)
}

// GET /api/destinations/activities/by-square?north=..&west=..&south=..&east=..
func SearchActivitiesBySquare(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	north, okN := parseFloatParam(r, "north")
	west, okW := parseFloatParam(r, "west")
	south, okS := parseFloatParam(r, "south")
	east, okE := parseFloatParam(r, "east")
	if !okN || !okW || !okS || !okE {
		utils.FailRequired(w, "Missing required query parameters", []string{"north", "west", "south", "east"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	activities, err := provider.SearchActivitiesBySquare(ctx, north, west, south, east)
	if err != nil {
		respondProviderError(w, err)
		return
	}

	utils.SuccessCount(w, http.StatusOK, len(activities), activities)
}

// GET /api/destinations/activity/:id
func GetActivity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	activityID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	activity, err := provider.GetActivity(ctx, activityID)
	if err != nil {
		respondProviderError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, activity)
}

// GET /api/destinations/hotels?cityCode=PAR&radius=5&chainCodes=AC,HL&amenities=SPA
func SearchHotels(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cityCode := r.URL.Query().Get("cityCode")
	if cityCode == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "cityCode query parameter is required")
		return
	}
	radius, ok := parseFloatParam(r, "radius")
	if !ok {
		radius = 5
	}
	var chainCodes, amenities []string
	if raw := r.URL.Query().Get("chainCodes"); raw != "" {
		chainCodes = strings.Split(raw, ",")
	}
	if raw := r.URL.Query().Get("amenities"); raw != "" {
		amenities = strings.Split(raw, ",")
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	hotels, err := provider.SearchHotelsByCity(ctx, cityCode, radius, chainCodes, amenities)
	if err != nil {
		respondProviderError(w, err)
		return
	}

	utils.SuccessCount(w, http.StatusOK, len(hotels), hotels)
}

// GET /api/destinations/hotels/offers?hotelIds=A,B&checkInDate=..&checkOutDate=..
func GetHotelOffers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	hotelIDs := r.URL.Query().Get("hotelIds")
	checkIn := r.URL.Query().Get("checkInDate")
	checkOut := r.URL.Query().Get("checkOutDate")
	if hotelIDs == "" || checkIn == "" || checkOut == "" {
		utils.FailRequired(w, "Missing required query parameters",
			[]string{"hotelIds", "checkInDate", "checkOutDate"})
		return
	}

	adults, _ := strconv.Atoi(r.URL.Query().Get("adults"))
	rooms, _ := strconv.Atoi(r.URL.Query().Get("roomQuantity"))

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	offers, err := provider.GetHotelOffers(ctx, amadeus.HotelOffersParams{
		HotelIDs:     strings.Split(hotelIDs, ","),
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Adults:       adults,
		RoomQuantity: rooms,
		Currency:     r.URL.Query().Get("currency"),
		PriceRange:   r.URL.Query().Get("priceRange"),
	})
	if err != nil {
		respondProviderError(w, err)
		return
	}

	utils.SuccessCount(w, http.StatusOK, len(offers), offers)
}

// GET /api/destinations/hotels/offers/:offerId
func GetOfferDetails(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	offerID := ps.ByName("offerId")

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	detail, err := provider.GetOfferDetails(ctx, offerID)
	if err != nil {
		respondProviderError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, detail)
}

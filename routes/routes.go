package routes

import (
	"globetrotter/destinations"
	"globetrotter/flights"
	"globetrotter/itinerary"
	"globetrotter/middleware"
	"globetrotter/ratelim"
	"globetrotter/users"

	"github.com/julienschmidt/httprouter"
)

func AddUserRoutes(router *httprouter.Router) {
	router.POST("/api/users", ratelim.RateLimit(users.CreateUser))
	router.GET("/api/users", users.GetUserByEmail)
	router.GET("/api/users/:id", users.GetUser)
}

func AddItineraryRoutes(router *httprouter.Router) {
	router.POST("/api/itineraries", ratelim.RateLimit(itinerary.CreateItinerary))
	router.GET("/api/itineraries", itinerary.GetItineraries)
	router.GET("/api/itineraries/:id", itinerary.GetItinerary)
	router.PUT("/api/itineraries/:id", ratelim.RateLimit(itinerary.UpdateItinerary))
	router.DELETE("/api/itineraries/:id", ratelim.RateLimit(itinerary.DeleteItinerary))

	router.POST("/api/itineraries/:id/stops", ratelim.RateLimit(itinerary.AddStop))
	router.GET("/api/itineraries/:id/stops", itinerary.GetStops)
	router.PUT("/api/itineraries/:id/stops/:stopId", ratelim.RateLimit(itinerary.UpdateStop))
	router.DELETE("/api/itineraries/:id/stops/:stopId", ratelim.RateLimit(itinerary.DeleteStop))
	router.POST("/api/itineraries/:id/stops/:stopId/activities", ratelim.RateLimit(itinerary.AddActivity))
	router.POST("/api/itineraries/:id/stops/:stopId/hotels", ratelim.RateLimit(itinerary.AddHotel))
	router.POST("/api/itineraries/:id/stops/:stopId/hotels/refresh", ratelim.RateLimit(itinerary.RefreshHotelPricing))

	router.POST("/api/itineraries/:id/flights", ratelim.RateLimit(itinerary.AddFlight))
	router.GET("/api/itineraries/:id/budget", itinerary.CalculateBudget)
	router.GET("/api/itineraries/:id/export", middleware.Authenticate(itinerary.ExportItinerary))
}

func AddDestinationRoutes(router *httprouter.Router) {
	router.GET("/api/destinations/cities", ratelim.RateLimit(destinations.SearchCities))
	router.GET("/api/destinations/cities/:code", ratelim.RateLimit(destinations.GetCityByCode))
	router.GET("/api/destinations/activities", ratelim.RateLimit(destinations.SearchActivities))
	router.GET("/api/destinations/activities/by-square", ratelim.RateLimit(destinations.SearchActivitiesBySquare))
	router.GET("/api/destinations/activity/:id", ratelim.RateLimit(destinations.GetActivity))
	router.GET("/api/destinations/hotels", ratelim.RateLimit(destinations.SearchHotels))
	router.GET("/api/destinations/hotels/offers", ratelim.RateLimit(destinations.GetHotelOffers))
	router.GET("/api/destinations/hotels/offers/:offerId", ratelim.RateLimit(destinations.GetOfferDetails))
}

func AddFlightRoutes(router *httprouter.Router) {
	router.POST("/api/flights/price", ratelim.RateLimit(flights.ConfirmFlightPrice))
}

package itinerary

import (
	"context"
	"fmt"
	"time"

	"globetrotter/amadeus"
	"globetrotter/db"
	"globetrotter/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// provider is the shared travel-data client, wired in from main so tests can
// substitute a double.
var provider *amadeus.Client

func Init(client *amadeus.Client) {
	provider = client
}

var errNotFound = fmt.Errorf("not found")

func findStops(ctx context.Context, itineraryID string, withChildren bool) ([]models.Stop, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sequence", Value: 1}})
	cursor, err := db.StopCollection.Find(ctx, bson.M{"itineraryid": itineraryID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stops := []models.Stop{}
	for cursor.Next(ctx) {
		var stop models.Stop
		if err := cursor.Decode(&stop); err != nil {
			return nil, err
		}
		if withChildren {
			if stop.Activities, err = findActivities(ctx, stop.StopID); err != nil {
				return nil, err
			}
			if stop.Hotels, err = findHotels(ctx, stop.StopID); err != nil {
				return nil, err
			}
		} else {
			stop.Activities = []models.Activity{}
			stop.Hotels = []models.Hotel{}
		}
		stops = append(stops, stop)
	}
	return stops, cursor.Err()
}

func findActivities(ctx context.Context, stopID string) ([]models.Activity, error) {
	cursor, err := db.ActivityCollection.Find(ctx, bson.M{"stopid": stopID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	activities := []models.Activity{}
	for cursor.Next(ctx) {
		var activity models.Activity
		if err := cursor.Decode(&activity); err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	return activities, cursor.Err()
}

func findHotels(ctx context.Context, stopID string) ([]models.Hotel, error) {
	cursor, err := db.HotelCollection.Find(ctx, bson.M{"stopid": stopID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	hotels := []models.Hotel{}
	for cursor.Next(ctx) {
		var hotel models.Hotel
		if err := cursor.Decode(&hotel); err != nil {
			return nil, err
		}
		hotels = append(hotels, hotel)
	}
	return hotels, cursor.Err()
}

func findFlights(ctx context.Context, itineraryID string, byDeparture bool) ([]models.FlightSegment, error) {
	opts := options.Find()
	if byDeparture {
		opts.SetSort(bson.D{{Key: "departuredate", Value: 1}})
	}
	cursor, err := db.FlightCollection.Find(ctx, bson.M{"itineraryid": itineraryID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	flights := []models.FlightSegment{}
	for cursor.Next(ctx) {
		var flight models.FlightSegment
		if err := cursor.Decode(&flight); err != nil {
			return nil, err
		}
		flights = append(flights, flight)
	}
	return flights, cursor.Err()
}

func findBudget(ctx context.Context, itineraryID string) (*models.BudgetSummary, error) {
	var summary models.BudgetSummary
	err := db.BudgetCollection.FindOne(ctx, bson.M{"itineraryid": itineraryID}).Decode(&summary)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// loadItinerary assembles an itinerary with its nested graph. withChildren
// also loads per-stop activities and hotels and sorts flights by departure.
func loadItinerary(ctx context.Context, itineraryID string, withChildren bool) (*models.Itinerary, error) {
	var it models.Itinerary
	err := db.ItineraryCollection.FindOne(ctx, bson.M{"itineraryid": itineraryID}).Decode(&it)
	if err == mongo.ErrNoDocuments {
		return nil, errNotFound
	}
	if err != nil {
		return nil, err
	}

	if it.Stops, err = findStops(ctx, itineraryID, withChildren); err != nil {
		return nil, err
	}
	if it.Flights, err = findFlights(ctx, itineraryID, withChildren); err != nil {
		return nil, err
	}
	if it.BudgetSummary, err = findBudget(ctx, itineraryID); err != nil {
		return nil, err
	}
	return &it, nil
}

// parseDate accepts YYYY-MM-DD or RFC 3339 timestamps.
func parseDate(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("invalid value for %s: %q", field, raw)
}

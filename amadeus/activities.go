package amadeus

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// Activity is a normalized tours-and-activities result.
type Activity struct {
	ID               string        `json:"id"`
	Type             string        `json:"type"`
	Name             string        `json:"name"`
	ShortDescription string        `json:"shortDescription,omitempty"`
	Description      string        `json:"description,omitempty"`
	Rating           *float64      `json:"rating"`
	Price            ActivityPrice `json:"price"`
	BookingLink      string        `json:"bookingLink,omitempty"`
	MinimumDuration  string        `json:"minimumDuration,omitempty"`
	Pictures         []string      `json:"pictures"`
	Latitude         *float64      `json:"latitude"`
	Longitude        *float64      `json:"longitude"`
}

type ActivityPrice struct {
	Amount   *float64 `json:"amount"`
	Currency string   `json:"currency"`
}

type activityRecord struct {
	ID               string  `json:"id"`
	Type             string  `json:"type"`
	Name             string  `json:"name"`
	ShortDescription string  `json:"shortDescription"`
	Description      string  `json:"description"`
	Rating           *Number `json:"rating"`
	Price            struct {
		Amount       *Number `json:"amount"`
		CurrencyCode string  `json:"currencyCode"`
	} `json:"price"`
	BookingLink     string   `json:"bookingLink"`
	MinimumDuration string   `json:"minimumDuration"`
	Pictures        []string `json:"pictures"`
	GeoCode         struct {
		Latitude  *Number `json:"latitude"`
		Longitude *Number `json:"longitude"`
	} `json:"geoCode"`
}

func (raw activityRecord) normalize() Activity {
	pictures := raw.Pictures
	if pictures == nil {
		pictures = []string{}
	}
	return Activity{
		ID:               raw.ID,
		Type:             raw.Type,
		Name:             raw.Name,
		ShortDescription: raw.ShortDescription,
		Description:      raw.Description,
		Rating:           raw.Rating.Float(),
		Price: ActivityPrice{
			Amount:   raw.Price.Amount.Float(),
			Currency: raw.Price.CurrencyCode,
		},
		BookingLink:     raw.BookingLink,
		MinimumDuration: raw.MinimumDuration,
		Pictures:        pictures,
		Latitude:        raw.GeoCode.Latitude.Float(),
		Longitude:       raw.GeoCode.Longitude.Float(),
	}
}

func decodeActivities(body []byte) ([]Activity, error) {
	var envelope struct {
		Data []activityRecord `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &APIError{Status: http.StatusBadGateway, Code: "PROVIDER_ERROR", Message: "malformed activity response"}
	}
	activities := make([]Activity, 0, len(envelope.Data))
	for _, raw := range envelope.Data {
		activities = append(activities, raw.normalize())
	}
	return activities, nil
}

// SearchActivities finds tours and activities around a point. The provider
// bounds the radius to 0-20 km.
func (c *Client) SearchActivities(ctx context.Context, latitude, longitude, radius float64) ([]Activity, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	query.Set("radius", strconv.FormatFloat(radius, 'f', -1, 64))

	body, err := c.get(ctx, "/v1/shopping/activities", query)
	if err != nil {
		return nil, err
	}
	return decodeActivities(body)
}

// SearchActivitiesBySquare finds activities within a bounding box.
func (c *Client) SearchActivitiesBySquare(ctx context.Context, north, west, south, east float64) ([]Activity, error) {
	query := url.Values{}
	query.Set("north", strconv.FormatFloat(north, 'f', -1, 64))
	query.Set("west", strconv.FormatFloat(west, 'f', -1, 64))
	query.Set("south", strconv.FormatFloat(south, 'f', -1, 64))
	query.Set("east", strconv.FormatFloat(east, 'f', -1, 64))

	body, err := c.get(ctx, "/v1/shopping/activities/by-square", query)
	if err != nil {
		return nil, err
	}
	return decodeActivities(body)
}

// GetActivity fetches one activity by provider id.
func (c *Client) GetActivity(ctx context.Context, activityID string) (*Activity, error) {
	body, err := c.get(ctx, "/v1/shopping/activities/"+url.PathEscape(activityID), nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Data activityRecord `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &APIError{Status: http.StatusBadGateway, Code: "PROVIDER_ERROR", Message: "malformed activity response"}
	}
	activity := envelope.Data.normalize()
	return &activity, nil
}

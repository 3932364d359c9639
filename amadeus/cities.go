package amadeus

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// City is a normalized city search result.
type City struct {
	Type        string    `json:"type"`
	SubType     string    `json:"subType"`
	Name        string    `json:"name"`
	IataCode    string    `json:"iataCode"`
	CountryCode string    `json:"countryCode"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Airports    []Airport `json:"airports"`
}

// Airport is an airport attached to a city result.
type Airport struct {
	Name     string `json:"name"`
	IataCode string `json:"iataCode"`
}

type cityEnvelope struct {
	Data []struct {
		Type     string `json:"type"`
		SubType  string `json:"subType"`
		Name     string `json:"name"`
		IataCode string `json:"iataCode"`
		Address  struct {
			CountryCode string `json:"countryCode"`
		} `json:"address"`
		GeoCode struct {
			Latitude  Number `json:"latitude"`
			Longitude Number `json:"longitude"`
		} `json:"geoCode"`
		Relationships []struct {
			ID   string `json:"id"`
			Type string `json:"type"`
		} `json:"relationships"`
	} `json:"data"`
	Included struct {
		Airports map[string]struct {
			Name     string `json:"name"`
			IataCode string `json:"iataCode"`
		} `json:"airports"`
	} `json:"included"`
}

// SearchCities looks up cities by keyword, optionally filtered by ISO country
// code, including each city's airports.
func (c *Client) SearchCities(ctx context.Context, keyword, countryCode string, max int) ([]City, error) {
	if max <= 0 {
		max = 10
	}
	query := url.Values{}
	query.Set("keyword", keyword)
	query.Set("max", strconv.Itoa(max))
	query.Set("include", "AIRPORTS")
	if countryCode != "" {
		query.Set("countryCode", countryCode)
	}

	body, err := c.get(ctx, "/v1/reference-data/locations/cities", query)
	if err != nil {
		return nil, err
	}

	var envelope cityEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &APIError{Status: http.StatusBadGateway, Code: "PROVIDER_ERROR", Message: "malformed city search response"}
	}

	cities := make([]City, 0, len(envelope.Data))
	for _, raw := range envelope.Data {
		city := City{
			Type:        raw.Type,
			SubType:     raw.SubType,
			Name:        raw.Name,
			IataCode:    raw.IataCode,
			CountryCode: raw.Address.CountryCode,
			Latitude:    float64(raw.GeoCode.Latitude),
			Longitude:   float64(raw.GeoCode.Longitude),
			Airports:    []Airport{},
		}
		for _, rel := range raw.Relationships {
			if rel.Type != "Airport" {
				continue
			}
			if ap, ok := envelope.Included.Airports[rel.ID]; ok {
				city.Airports = append(city.Airports, Airport{Name: ap.Name, IataCode: ap.IataCode})
			}
		}
		cities = append(cities, city)
	}
	return cities, nil
}

// GetCityByCode resolves a city by exact IATA code: the first match of a
// keyword search using the code as keyword.
func (c *Client) GetCityByCode(ctx context.Context, iataCode string) (*City, error) {
	cities, err := c.SearchCities(ctx, iataCode, "", 10)
	if err != nil {
		return nil, err
	}
	if len(cities) == 0 {
		return nil, &APIError{
			Status:  http.StatusNotFound,
			Code:    "CITY_NOT_FOUND",
			Message: "City with code " + iataCode + " not found",
		}
	}
	return &cities[0], nil
}

package amadeus

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestClient returns a client pointed at a stub provider that always
// issues a token, then delegates API paths to handler.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("token endpoint called with %s", r.Method)
		}
		if err := r.ParseForm(); err != nil || r.Form.Get("grant_type") != "client_credentials" {
			t.Errorf("unexpected token request form: %v", r.Form)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "test-token",
			"expires_in":   1799,
		})
	})
	mux.HandleFunc("/", handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return NewClient("id", "secret", server.URL), server
}

func TestSearchCitiesNormalization(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/reference-data/locations/cities" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("missing bearer token, got %q", got)
		}
		if r.URL.Query().Get("keyword") != "Paris" {
			t.Errorf("keyword not forwarded: %v", r.URL.Query())
		}
		w.Write([]byte(`{
			"data": [{
				"type": "location",
				"subType": "city",
				"name": "Paris",
				"iataCode": "PAR",
				"address": {"countryCode": "FR"},
				"geoCode": {"latitude": "48.85341", "longitude": 2.3488},
				"relationships": [{"id": "CDG", "type": "Airport"}]
			}],
			"included": {
				"airports": {
					"CDG": {"name": "CHARLES DE GAULLE", "iataCode": "CDG"}
				}
			}
		}`))
	})

	cities, err := client.SearchCities(context.Background(), "Paris", "", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cities) != 1 {
		t.Fatalf("expected 1 city, got %d", len(cities))
	}
	city := cities[0]
	if city.IataCode != "PAR" || city.CountryCode != "FR" {
		t.Fatalf("unexpected city: %+v", city)
	}
	// latitude arrives quoted, longitude bare; both must decode
	if city.Latitude != 48.85341 || city.Longitude != 2.3488 {
		t.Fatalf("geo code not normalized: %+v", city)
	}
	if len(city.Airports) != 1 || city.Airports[0].IataCode != "CDG" {
		t.Fatalf("airports not joined from included block: %+v", city.Airports)
	}
}

func TestGetCityByCodeNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": []}`))
	})

	_, err := client.GetCityByCode(context.Background(), "XXX")
	apiErr := AsAPIError(err)
	if apiErr.Status != http.StatusNotFound || apiErr.Code != "CITY_NOT_FOUND" {
		t.Fatalf("expected CITY_NOT_FOUND 404, got %+v", apiErr)
	}
}

func TestProviderErrorNormalization(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors": [{"status": 400, "code": 477, "title": "INVALID FORMAT", "detail": "latitude out of range"}]}`))
	})

	_, err := client.SearchActivities(context.Background(), 999, 2.3, 5)
	apiErr := AsAPIError(err)
	if apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", apiErr.Status)
	}
	if apiErr.Message != "latitude out of range" {
		t.Fatalf("detail should win over title: %q", apiErr.Message)
	}
	if len(apiErr.Errors) != 1 || apiErr.Errors[0].Code != 477 {
		t.Fatalf("provider error list not preserved: %+v", apiErr.Errors)
	}
}

func TestGetHotelOffersRejectsTooManyIDs(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider should not be called")
	})

	ids := make([]string, 21)
	for i := range ids {
		ids[i] = "H"
	}
	_, err := client.GetHotelOffers(context.Background(), HotelOffersParams{
		HotelIDs:     ids,
		CheckInDate:  "2026-05-01",
		CheckOutDate: "2026-05-02",
	})
	apiErr := AsAPIError(err)
	if apiErr.Code != "TOO_MANY_HOTELS" || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected TOO_MANY_HOTELS 400, got %+v", apiErr)
	}
}

func TestGetHotelOffersDefaults(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("adults") != "1" || q.Get("roomQuantity") != "1" || q.Get("currency") != "USD" {
			t.Errorf("defaults not applied: %v", q)
		}
		if q.Get("bestRateOnly") != "true" {
			t.Errorf("bestRateOnly missing: %v", q)
		}
		w.Write([]byte(`{"data": [{
			"hotel": {"hotelId": "HLPAR123", "name": "Test Hotel"},
			"available": true,
			"offers": [{"id": "OFFER1", "price": {"currency": "USD", "base": "100.00", "total": "120.00"}}]
		}]}`))
	})

	offers, err := client.GetHotelOffers(context.Background(), HotelOffersParams{
		HotelIDs:     []string{"HLPAR123"},
		CheckInDate:  "2026-05-01",
		CheckOutDate: "2026-05-02",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(offers) != 1 || len(offers[0].Offers) != 1 {
		t.Fatalf("unexpected offers shape: %+v", offers)
	}
	price := offers[0].Offers[0].Price
	if price.Total == nil || *price.Total != 120 {
		t.Fatalf("quoted price total not decoded: %+v", price)
	}
}

func TestConfirmFlightPriceWrapsPayload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/shopping/flight-offers/pricing" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var payload struct {
			Data struct {
				Type         string            `json:"type"`
				FlightOffers []json.RawMessage `json:"flightOffers"`
			} `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("malformed payload: %v", err)
		}
		if payload.Data.Type != "flight-offers-pricing" || len(payload.Data.FlightOffers) != 1 {
			t.Errorf("offers not wrapped: %+v", payload.Data)
		}
		w.Write([]byte(`{"data": {"flightOffers": [{
			"id": "1",
			"type": "flight-offer",
			"price": {"currency": "EUR", "total": "250.40", "base": "200.00", "grandTotal": "250.40"}
		}]}}`))
	})

	pricing, err := client.ConfirmFlightPrice(context.Background(),
		[]json.RawMessage{json.RawMessage(`{"id":"1"}`)}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pricing.FlightOffers) != 1 {
		t.Fatalf("expected 1 priced offer, got %d", len(pricing.FlightOffers))
	}
	total := pricing.FlightOffers[0].Price.Total
	if total == nil || *total != 250.40 {
		t.Fatalf("price not normalized: %+v", pricing.FlightOffers[0].Price)
	}
}

func TestNumberUnmarshal(t *testing.T) {
	var record struct {
		Quoted Number  `json:"quoted"`
		Bare   Number  `json:"bare"`
		Null   *Number `json:"null"`
		Absent *Number `json:"absent"`
	}
	if err := json.Unmarshal([]byte(`{"quoted": "12.5", "bare": 7, "null": null}`), &record); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Quoted != 12.5 || record.Bare != 7 {
		t.Fatalf("numbers not decoded: %+v", record)
	}
	if record.Null != nil || record.Absent != nil {
		t.Fatalf("null handling wrong: %+v", record)
	}
	if record.Absent.Float() != nil {
		t.Fatal("nil Number should yield nil Float")
	}
	if err := json.Unmarshal([]byte(`{"quoted": "abc"}`), &record); err == nil {
		t.Fatal("expected error for non-numeric string")
	}
}

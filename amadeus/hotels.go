package amadeus

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// HotelListing is a normalized hotel-by-city search result.
type HotelListing struct {
	HotelID     string   `json:"hotelId"`
	Name        string   `json:"name"`
	ChainCode   string   `json:"chainCode,omitempty"`
	IataCode    string   `json:"iataCode,omitempty"`
	DupeID      int64    `json:"dupeId,omitempty"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	CountryCode string   `json:"countryCode,omitempty"`
	Distance    Distance `json:"distance"`
}

type Distance struct {
	Value *float64 `json:"value"`
	Unit  string   `json:"unit,omitempty"`
}

// HotelOffers is the per-hotel availability block of an offers search.
type HotelOffers struct {
	Hotel     HotelSummary `json:"hotel"`
	Available bool         `json:"available"`
	Offers    []HotelOffer `json:"offers"`
}

type HotelSummary struct {
	HotelID   string `json:"hotelId"`
	ChainCode string `json:"chainCode,omitempty"`
	Name      string `json:"name"`
	CityCode  string `json:"cityCode,omitempty"`
}

// HotelOffer is one priced room offer.
type HotelOffer struct {
	ID              string          `json:"id"`
	CheckInDate     string          `json:"checkInDate"`
	CheckOutDate    string          `json:"checkOutDate"`
	RoomType        string          `json:"roomType,omitempty"`
	RoomDescription string          `json:"roomDescription,omitempty"`
	Beds            int             `json:"beds,omitempty"`
	BedType         string          `json:"bedType,omitempty"`
	Price           OfferPrice      `json:"price"`
	Policies        OfferPolicies   `json:"policies"`
	Guests          json.RawMessage `json:"guests,omitempty"`
}

type OfferPrice struct {
	Currency   string          `json:"currency"`
	Base       *float64        `json:"base"`
	Total      *float64        `json:"total"`
	Taxes      json.RawMessage `json:"taxes,omitempty"`
	Variations json.RawMessage `json:"variations,omitempty"`
}

type OfferPolicies struct {
	PaymentType  string          `json:"paymentType,omitempty"`
	Cancellation json.RawMessage `json:"cancellation,omitempty"`
}

// OfferDetail is the full pricing detail for a single offer.
type OfferDetail struct {
	ID           string          `json:"id"`
	Hotel        HotelSummary    `json:"hotel"`
	CheckInDate  string          `json:"checkInDate"`
	CheckOutDate string          `json:"checkOutDate"`
	Room         json.RawMessage `json:"room,omitempty"`
	Price        OfferPrice      `json:"price"`
	Policies     json.RawMessage `json:"policies,omitempty"`
	Guests       json.RawMessage `json:"guests,omitempty"`
}

type hotelOfferRecord struct {
	ID           string `json:"id"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	Room         struct {
		Type          string `json:"type"`
		TypeEstimated struct {
			Category string `json:"category"`
			Beds     int    `json:"beds"`
			BedType  string `json:"bedType"`
		} `json:"typeEstimated"`
	} `json:"room"`
	Price    offerPriceRecord `json:"price"`
	Policies struct {
		PaymentType  string          `json:"paymentType"`
		Cancellation json.RawMessage `json:"cancellation"`
	} `json:"policies"`
	Guests json.RawMessage `json:"guests"`
}

type offerPriceRecord struct {
	Currency   string          `json:"currency"`
	Base       *Number         `json:"base"`
	Total      *Number         `json:"total"`
	Taxes      json.RawMessage `json:"taxes"`
	Variations json.RawMessage `json:"variations"`
}

func (raw offerPriceRecord) normalize() OfferPrice {
	return OfferPrice{
		Currency:   raw.Currency,
		Base:       raw.Base.Float(),
		Total:      raw.Total.Float(),
		Taxes:      raw.Taxes,
		Variations: raw.Variations,
	}
}

func (raw hotelOfferRecord) normalize() HotelOffer {
	return HotelOffer{
		ID:              raw.ID,
		CheckInDate:     raw.CheckInDate,
		CheckOutDate:    raw.CheckOutDate,
		RoomType:        raw.Room.Type,
		RoomDescription: raw.Room.TypeEstimated.Category,
		Beds:            raw.Room.TypeEstimated.Beds,
		BedType:         raw.Room.TypeEstimated.BedType,
		Price:           raw.Price.normalize(),
		Policies: OfferPolicies{
			PaymentType:  raw.Policies.PaymentType,
			Cancellation: raw.Policies.Cancellation,
		},
		Guests: raw.Guests,
	}
}

// SearchHotelsByCity lists hotels around a city IATA code within a radius in
// kilometers, optionally filtered by chain codes and amenities.
func (c *Client) SearchHotelsByCity(ctx context.Context, cityCode string, radius float64, chainCodes, amenities []string) ([]HotelListing, error) {
	query := url.Values{}
	query.Set("cityCode", cityCode)
	query.Set("radius", strconv.FormatFloat(radius, 'f', -1, 64))
	query.Set("radiusUnit", "KM")
	if len(chainCodes) > 0 {
		query.Set("chainCodes", strings.Join(chainCodes, ","))
	}
	if len(amenities) > 0 {
		query.Set("amenities", strings.Join(amenities, ","))
	}

	body, err := c.get(ctx, "/v1/reference-data/locations/hotels/by-city", query)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data []struct {
			HotelID   string `json:"hotelId"`
			Name      string `json:"name"`
			ChainCode string `json:"chainCode"`
			IataCode  string `json:"iataCode"`
			DupeID    int64  `json:"dupeId"`
			GeoCode   struct {
				Latitude  *Number `json:"latitude"`
				Longitude *Number `json:"longitude"`
			} `json:"geoCode"`
			Address struct {
				CountryCode string `json:"countryCode"`
			} `json:"address"`
			Distance struct {
				Value *Number `json:"value"`
				Unit  string  `json:"unit"`
			} `json:"distance"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &APIError{Status: http.StatusBadGateway, Code: "PROVIDER_ERROR", Message: "malformed hotel search response"}
	}

	hotels := make([]HotelListing, 0, len(envelope.Data))
	for _, raw := range envelope.Data {
		hotels = append(hotels, HotelListing{
			HotelID:     raw.HotelID,
			Name:        raw.Name,
			ChainCode:   raw.ChainCode,
			IataCode:    raw.IataCode,
			DupeID:      raw.DupeID,
			Latitude:    raw.GeoCode.Latitude.Float(),
			Longitude:   raw.GeoCode.Longitude.Float(),
			CountryCode: raw.Address.CountryCode,
			Distance:    Distance{Value: raw.Distance.Value.Float(), Unit: raw.Distance.Unit},
		})
	}
	return hotels, nil
}

// HotelOffersParams narrows a hotel-offers search.
type HotelOffersParams struct {
	HotelIDs     []string
	CheckInDate  string
	CheckOutDate string
	Adults       int
	RoomQuantity int
	Currency     string
	PriceRange   string
}

// maxHotelIDsPerRequest is the provider's bound on one offers search.
const maxHotelIDsPerRequest = 20

// GetHotelOffers fetches best-rate offers for up to 20 hotels.
func (c *Client) GetHotelOffers(ctx context.Context, params HotelOffersParams) ([]HotelOffers, error) {
	if len(params.HotelIDs) > maxHotelIDsPerRequest {
		return nil, &APIError{
			Status:  http.StatusBadRequest,
			Code:    "TOO_MANY_HOTELS",
			Message: "Maximum 20 hotel IDs allowed per request",
		}
	}
	if params.Adults <= 0 {
		params.Adults = 1
	}
	if params.RoomQuantity <= 0 {
		params.RoomQuantity = 1
	}
	if params.Currency == "" {
		params.Currency = "USD"
	}

	query := url.Values{}
	query.Set("hotelIds", strings.Join(params.HotelIDs, ","))
	query.Set("checkInDate", params.CheckInDate)
	query.Set("checkOutDate", params.CheckOutDate)
	query.Set("adults", strconv.Itoa(params.Adults))
	query.Set("roomQuantity", strconv.Itoa(params.RoomQuantity))
	query.Set("currency", params.Currency)
	query.Set("bestRateOnly", "true")
	if params.PriceRange != "" {
		query.Set("priceRange", params.PriceRange)
	}

	body, err := c.get(ctx, "/v3/shopping/hotel-offers", query)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data []struct {
			Hotel     HotelSummary       `json:"hotel"`
			Available bool               `json:"available"`
			Offers    []hotelOfferRecord `json:"offers"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &APIError{Status: http.StatusBadGateway, Code: "PROVIDER_ERROR", Message: "malformed hotel offers response"}
	}

	result := make([]HotelOffers, 0, len(envelope.Data))
	for _, raw := range envelope.Data {
		offers := make([]HotelOffer, 0, len(raw.Offers))
		for _, o := range raw.Offers {
			offers = append(offers, o.normalize())
		}
		result = append(result, HotelOffers{
			Hotel:     raw.Hotel,
			Available: raw.Available,
			Offers:    offers,
		})
	}
	return result, nil
}

// GetOfferDetails fetches full pricing for one offer id.
func (c *Client) GetOfferDetails(ctx context.Context, offerID string) (*OfferDetail, error) {
	body, err := c.get(ctx, "/v3/shopping/hotel-offers/"+url.PathEscape(offerID), nil)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data struct {
			ID           string           `json:"id"`
			Hotel        HotelSummary     `json:"hotel"`
			CheckInDate  string           `json:"checkInDate"`
			CheckOutDate string           `json:"checkOutDate"`
			Room         json.RawMessage  `json:"room"`
			Price        offerPriceRecord `json:"price"`
			Policies     json.RawMessage  `json:"policies"`
			Guests       json.RawMessage  `json:"guests"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &APIError{Status: http.StatusBadGateway, Code: "PROVIDER_ERROR", Message: "malformed offer detail response"}
	}

	return &OfferDetail{
		ID:           envelope.Data.ID,
		Hotel:        envelope.Data.Hotel,
		CheckInDate:  envelope.Data.CheckInDate,
		CheckOutDate: envelope.Data.CheckOutDate,
		Room:         envelope.Data.Room,
		Price:        envelope.Data.Price.normalize(),
		Policies:     envelope.Data.Policies,
		Guests:       envelope.Data.Guests,
	}, nil
}

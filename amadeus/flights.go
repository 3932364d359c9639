package amadeus

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// FlightPricing is the confirmed result of a flight-offers pricing call.
type FlightPricing struct {
	FlightOffers        []PricedFlightOffer `json:"flightOffers"`
	BookingRequirements json.RawMessage     `json:"bookingRequirements,omitempty"`
}

// PricedFlightOffer is one validated offer with an itemized fare breakdown.
type PricedFlightOffer struct {
	ID                       string            `json:"id"`
	Type                     string            `json:"type"`
	Source                   string            `json:"source,omitempty"`
	InstantTicketingRequired bool              `json:"instantTicketingRequired"`
	OneWay                   bool              `json:"oneWay"`
	LastTicketingDate        string            `json:"lastTicketingDate,omitempty"`
	NumberOfBookableSeats    int               `json:"numberOfBookableSeats,omitempty"`
	Itineraries              json.RawMessage   `json:"itineraries,omitempty"`
	Price                    FlightPrice       `json:"price"`
	PricingOptions           json.RawMessage   `json:"pricingOptions,omitempty"`
	ValidatingAirlineCodes   []string          `json:"validatingAirlineCodes,omitempty"`
	TravelerPricings         []TravelerPricing `json:"travelerPricings,omitempty"`
}

type FlightPrice struct {
	Currency   string    `json:"currency"`
	Total      *float64  `json:"total"`
	Base       *float64  `json:"base"`
	GrandTotal *float64  `json:"grandTotal"`
	Fees       []FareFee `json:"fees,omitempty"`
	Taxes      []FareTax `json:"taxes,omitempty"`
}

type FareFee struct {
	Amount *float64 `json:"amount"`
	Type   string   `json:"type"`
}

type FareTax struct {
	Amount *float64 `json:"amount"`
	Code   string   `json:"code"`
}

type TravelerPricing struct {
	TravelerID           string          `json:"travelerId"`
	FareOption           string          `json:"fareOption,omitempty"`
	TravelerType         string          `json:"travelerType,omitempty"`
	Price                FlightPrice     `json:"price"`
	FareDetailsBySegment json.RawMessage `json:"fareDetailsBySegment,omitempty"`
}

type flightPriceRecord struct {
	Currency   string  `json:"currency"`
	Total      *Number `json:"total"`
	Base       *Number `json:"base"`
	GrandTotal *Number `json:"grandTotal"`
	Fees       []struct {
		Amount *Number `json:"amount"`
		Type   string  `json:"type"`
	} `json:"fees"`
	Taxes []struct {
		Amount *Number `json:"amount"`
		Code   string  `json:"code"`
	} `json:"taxes"`
}

func (raw flightPriceRecord) normalize() FlightPrice {
	price := FlightPrice{
		Currency:   raw.Currency,
		Total:      raw.Total.Float(),
		Base:       raw.Base.Float(),
		GrandTotal: raw.GrandTotal.Float(),
	}
	for _, fee := range raw.Fees {
		price.Fees = append(price.Fees, FareFee{Amount: fee.Amount.Float(), Type: fee.Type})
	}
	for _, tax := range raw.Taxes {
		price.Taxes = append(price.Taxes, FareTax{Amount: tax.Amount.Float(), Code: tax.Code})
	}
	return price
}

// ConfirmFlightPrice validates flight offers from a prior search and returns
// confirmed pricing. Offers are passed through to the provider untouched.
func (c *Client) ConfirmFlightPrice(ctx context.Context, flightOffers []json.RawMessage, include []string) (*FlightPricing, error) {
	payload := map[string]interface{}{
		"data": map[string]interface{}{
			"type":         "flight-offers-pricing",
			"flightOffers": flightOffers,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &APIError{Status: http.StatusBadRequest, Code: "INVALID_OFFERS", Message: err.Error()}
	}

	var query url.Values
	if len(include) > 0 {
		query = url.Values{}
		query.Set("include", strings.Join(include, ","))
	}

	respBody, err := c.post(ctx, "/v1/shopping/flight-offers/pricing", query, body)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data struct {
			FlightOffers []struct {
				ID                       string            `json:"id"`
				Type                     string            `json:"type"`
				Source                   string            `json:"source"`
				InstantTicketingRequired bool              `json:"instantTicketingRequired"`
				OneWay                   bool              `json:"oneWay"`
				LastTicketingDate        string            `json:"lastTicketingDate"`
				NumberOfBookableSeats    int               `json:"numberOfBookableSeats"`
				Itineraries              json.RawMessage   `json:"itineraries"`
				Price                    flightPriceRecord `json:"price"`
				PricingOptions           json.RawMessage   `json:"pricingOptions"`
				ValidatingAirlineCodes   []string          `json:"validatingAirlineCodes"`
				TravelerPricings         []struct {
					TravelerID           string            `json:"travelerId"`
					FareOption           string            `json:"fareOption"`
					TravelerType         string            `json:"travelerType"`
					Price                flightPriceRecord `json:"price"`
					FareDetailsBySegment json.RawMessage   `json:"fareDetailsBySegment"`
				} `json:"travelerPricings"`
			} `json:"flightOffers"`
			BookingRequirements json.RawMessage `json:"bookingRequirements"`
		} `json:"data"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, &APIError{Status: http.StatusBadGateway, Code: "PROVIDER_ERROR", Message: "malformed pricing response"}
	}

	pricing := &FlightPricing{
		FlightOffers:        make([]PricedFlightOffer, 0, len(envelope.Data.FlightOffers)),
		BookingRequirements: envelope.Data.BookingRequirements,
	}
	for _, raw := range envelope.Data.FlightOffers {
		offer := PricedFlightOffer{
			ID:                       raw.ID,
			Type:                     raw.Type,
			Source:                   raw.Source,
			InstantTicketingRequired: raw.InstantTicketingRequired,
			OneWay:                   raw.OneWay,
			LastTicketingDate:        raw.LastTicketingDate,
			NumberOfBookableSeats:    raw.NumberOfBookableSeats,
			Itineraries:              raw.Itineraries,
			Price:                    raw.Price.normalize(),
			PricingOptions:           raw.PricingOptions,
			ValidatingAirlineCodes:   raw.ValidatingAirlineCodes,
		}
		for _, tp := range raw.TravelerPricings {
			offer.TravelerPricings = append(offer.TravelerPricings, TravelerPricing{
				TravelerID:           tp.TravelerID,
				FareOption:           tp.FareOption,
				TravelerType:         tp.TravelerType,
				Price:                tp.Price.normalize(),
				FareDetailsBySegment: tp.FareDetailsBySegment,
			})
		}
		pricing.FlightOffers = append(pricing.FlightOffers, offer)
	}
	return pricing, nil
}

package models

import "time"

// Itinerary is the root travel plan owned by a user.
type Itinerary struct {
	ItineraryID string     `json:"itineraryid" bson:"itineraryid"`
	UserID      string     `json:"userId" bson:"userid"`
	Name        string     `json:"name" bson:"name"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	TotalBudget *float64   `json:"totalBudget" bson:"totalbudget,omitempty"`
	Currency    string     `json:"currency" bson:"currency"`
	StartDate   *time.Time `json:"startDate" bson:"startdate,omitempty"`
	EndDate     *time.Time `json:"endDate" bson:"enddate,omitempty"`
	Status      string     `json:"status" bson:"status"` // planning/confirmed/completed/cancelled
	CreatedAt   time.Time  `json:"createdAt" bson:"createdat"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedat"`

	// populated on reads, never stored on the itinerary document
	Stops         []Stop          `json:"stops" bson:"-"`
	Flights       []FlightSegment `json:"flights" bson:"-"`
	BudgetSummary *BudgetSummary  `json:"budgetSummary,omitempty" bson:"-"`
	User          *UserPublic     `json:"user,omitempty" bson:"-"`
}

// Stop is one city within an itinerary. Sequence is the 1-based visiting
// order, unique per itinerary.
type Stop struct {
	StopID       string     `json:"stopid" bson:"stopid"`
	ItineraryID  string     `json:"itineraryid" bson:"itineraryid"`
	CityCode     string     `json:"cityCode" bson:"citycode"`
	CityName     string     `json:"cityName" bson:"cityname"`
	CountryCode  string     `json:"countryCode,omitempty" bson:"countrycode,omitempty"`
	Latitude     *float64   `json:"latitude" bson:"latitude,omitempty"`
	Longitude    *float64   `json:"longitude" bson:"longitude,omitempty"`
	Sequence     int        `json:"sequence" bson:"sequence"`
	CheckInDate  *time.Time `json:"checkInDate" bson:"checkindate,omitempty"`
	CheckOutDate *time.Time `json:"checkOutDate" bson:"checkoutdate,omitempty"`
	Nights       *int       `json:"nights" bson:"nights,omitempty"`
	Notes        string     `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt    time.Time  `json:"createdAt" bson:"createdat"`

	Activities []Activity `json:"activities" bson:"-"`
	Hotels     []Hotel    `json:"hotels" bson:"-"`
}

// Activity is a booked tour or activity attached to a stop. Price may be
// absent; unpriced activities contribute zero to the budget.
type Activity struct {
	ActivityID       string    `json:"activityid" bson:"activityid"`
	StopID           string    `json:"stopid" bson:"stopid"`
	CatalogID        string    `json:"catalogId" bson:"catalogid"`
	Name             string    `json:"name" bson:"name"`
	ShortDescription string    `json:"shortDescription,omitempty" bson:"shortdescription,omitempty"`
	Description      string    `json:"description,omitempty" bson:"description,omitempty"`
	Rating           *float64  `json:"rating" bson:"rating,omitempty"`
	Price            *float64  `json:"price" bson:"price,omitempty"`
	Currency         string    `json:"currency,omitempty" bson:"currency,omitempty"`
	BookingLink      string    `json:"bookingLink,omitempty" bson:"bookinglink,omitempty"`
	MinimumDuration  string    `json:"minimumDuration,omitempty" bson:"minimumduration,omitempty"`
	Pictures         []string  `json:"pictures" bson:"pictures,omitempty"`
	Latitude         *float64  `json:"latitude" bson:"latitude,omitempty"`
	Longitude        *float64  `json:"longitude" bson:"longitude,omitempty"`
	CreatedAt        time.Time `json:"createdAt" bson:"createdat"`
}

// Hotel is a booked hotel stay attached to a stop.
type Hotel struct {
	HotelID      string    `json:"hotelid" bson:"hotelid"`
	StopID       string    `json:"stopid" bson:"stopid"`
	CatalogID    string    `json:"catalogId" bson:"catalogid"`
	HotelName    string    `json:"hotelName" bson:"hotelname"`
	ChainCode    string    `json:"chainCode,omitempty" bson:"chaincode,omitempty"`
	OfferID      string    `json:"offerId,omitempty" bson:"offerid,omitempty"`
	RoomType     string    `json:"roomType,omitempty" bson:"roomtype,omitempty"`
	CheckInDate  time.Time `json:"checkInDate" bson:"checkindate"`
	CheckOutDate time.Time `json:"checkOutDate" bson:"checkoutdate"`
	Nights       int       `json:"nights" bson:"nights"`
	PriceBase    *float64  `json:"priceBase" bson:"pricebase,omitempty"`
	PriceTotal   float64   `json:"priceTotal" bson:"pricetotal"`
	Currency     string    `json:"currency" bson:"currency"`
	PaymentType  string    `json:"paymentType,omitempty" bson:"paymenttype,omitempty"`
	Cancellation string    `json:"cancellation,omitempty" bson:"cancellation,omitempty"`
	Latitude     *float64  `json:"latitude" bson:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude" bson:"longitude,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdat"`
}

// FlightSegment is a flight attached to the itinerary as a whole.
type FlightSegment struct {
	FlightID      string     `json:"flightid" bson:"flightid"`
	ItineraryID   string     `json:"itineraryid" bson:"itineraryid"`
	FlightOfferID string     `json:"flightOfferId,omitempty" bson:"flightofferid,omitempty"`
	FromCityCode  string     `json:"fromCityCode" bson:"fromcitycode"`
	ToCityCode    string     `json:"toCityCode" bson:"tocitycode"`
	DepartureDate *time.Time `json:"departureDate" bson:"departuredate,omitempty"`
	ArrivalDate   *time.Time `json:"arrivalDate" bson:"arrivaldate,omitempty"`
	CarrierCode   string     `json:"carrierCode,omitempty" bson:"carriercode,omitempty"`
	FlightNumber  string     `json:"flightNumber,omitempty" bson:"flightnumber,omitempty"`
	Duration      string     `json:"duration,omitempty" bson:"duration,omitempty"`
	Passengers    int        `json:"passengers" bson:"passengers"`
	PriceBase     *float64   `json:"priceBase" bson:"pricebase,omitempty"`
	PriceTotal    float64    `json:"priceTotal" bson:"pricetotal"`
	Currency      string     `json:"currency" bson:"currency"`
	CabinClass    string     `json:"cabinClass,omitempty" bson:"cabinclass,omitempty"`
	CreatedAt     time.Time  `json:"createdAt" bson:"createdat"`
}

// BudgetSummary is the single persisted snapshot of an itinerary's last
// computed cost breakdown. Exactly one per itinerary; recalculation
// overwrites it in place.
type BudgetSummary struct {
	ItineraryID    string    `json:"itineraryid" bson:"itineraryid"`
	FlightsCost    float64   `json:"flightsCost" bson:"flightscost"`
	HotelsCost     float64   `json:"hotelsCost" bson:"hotelscost"`
	ActivitiesCost float64   `json:"activitiesCost" bson:"activitiescost"`
	TotalCost      float64   `json:"totalCost" bson:"totalcost"`
	Currency       string    `json:"currency" bson:"currency"`
	LastCalculated time.Time `json:"lastCalculated" bson:"lastcalculated"`
}

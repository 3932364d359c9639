package itinerary

import (
	"math"
	"testing"

	"globetrotter/models"
)

func fptr(v float64) *float64 { return &v }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeBreakdownSumsCategories(t *testing.T) {
	it := &models.Itinerary{
		Currency:    "USD",
		TotalBudget: fptr(1000),
		Flights: []models.FlightSegment{
			{PriceTotal: 500},
		},
		Stops: []models.Stop{
			{
				Hotels: []models.Hotel{
					{PriceTotal: 300},
				},
				Activities: []models.Activity{
					{Price: fptr(50)},
				},
			},
		},
	}

	breakdown := computeBreakdown(it)

	if !almostEqual(breakdown.Total, 850) {
		t.Fatalf("expected total 850, got %v", breakdown.Total)
	}
	if !almostEqual(breakdown.Flights.Cost, 500) || breakdown.Flights.Count != 1 {
		t.Fatalf("unexpected flights line: %+v", breakdown.Flights)
	}
	if !almostEqual(breakdown.Hotels.Cost, 300) || breakdown.Hotels.Count != 1 {
		t.Fatalf("unexpected hotels line: %+v", breakdown.Hotels)
	}
	if !almostEqual(breakdown.Activities.Cost, 50) || breakdown.Activities.Count != 1 {
		t.Fatalf("unexpected activities line: %+v", breakdown.Activities)
	}
	if breakdown.Remaining == nil || !almostEqual(*breakdown.Remaining, 150) {
		t.Fatalf("expected remaining 150, got %v", breakdown.Remaining)
	}
	if breakdown.OverBudget {
		t.Fatal("850 of 1000 should not be over budget")
	}
	if breakdown.Currency != "USD" {
		t.Fatalf("expected currency USD, got %q", breakdown.Currency)
	}
}

func TestComputeBreakdownPercentagesSumToHundred(t *testing.T) {
	it := &models.Itinerary{
		Currency: "EUR",
		Flights:  []models.FlightSegment{{PriceTotal: 200}},
		Stops: []models.Stop{
			{
				Hotels:     []models.Hotel{{PriceTotal: 600}},
				Activities: []models.Activity{{Price: fptr(200)}},
			},
		},
	}

	breakdown := computeBreakdown(it)

	sum := breakdown.Flights.Percentage + breakdown.Hotels.Percentage + breakdown.Activities.Percentage
	if !almostEqual(sum, 100) {
		t.Fatalf("expected percentages to sum to 100, got %v", sum)
	}
	if !almostEqual(breakdown.Hotels.Percentage, 60) {
		t.Fatalf("expected hotels at 60%%, got %v", breakdown.Hotels.Percentage)
	}
}

func TestComputeBreakdownEmptyItinerary(t *testing.T) {
	it := &models.Itinerary{Currency: "USD"}

	breakdown := computeBreakdown(it)

	if breakdown.Total != 0 {
		t.Fatalf("expected zero total, got %v", breakdown.Total)
	}
	if breakdown.Flights.Percentage != 0 || breakdown.Hotels.Percentage != 0 || breakdown.Activities.Percentage != 0 {
		t.Fatalf("expected zero percentages on empty itinerary, got %+v", breakdown)
	}
	if breakdown.Remaining != nil {
		t.Fatalf("expected nil remaining without a budget, got %v", *breakdown.Remaining)
	}
	if breakdown.OverBudget {
		t.Fatal("empty itinerary cannot be over budget")
	}
}

func TestComputeBreakdownUnpricedActivitiesCounted(t *testing.T) {
	it := &models.Itinerary{
		Currency: "USD",
		Stops: []models.Stop{
			{
				Activities: []models.Activity{
					{Price: fptr(25)},
					{Price: nil},
				},
			},
		},
	}

	breakdown := computeBreakdown(it)

	if breakdown.Activities.Count != 2 {
		t.Fatalf("expected 2 activities counted, got %d", breakdown.Activities.Count)
	}
	if !almostEqual(breakdown.Activities.Cost, 25) {
		t.Fatalf("unpriced activity should contribute zero, got cost %v", breakdown.Activities.Cost)
	}
}

func TestComputeBreakdownOverBudget(t *testing.T) {
	it := &models.Itinerary{
		Currency:    "USD",
		TotalBudget: fptr(100),
		Flights:     []models.FlightSegment{{PriceTotal: 250}},
	}

	breakdown := computeBreakdown(it)

	if !breakdown.OverBudget {
		t.Fatal("expected over budget")
	}
	if breakdown.Remaining == nil || !almostEqual(*breakdown.Remaining, -150) {
		t.Fatalf("expected remaining -150, got %v", breakdown.Remaining)
	}
}

func TestParseDate(t *testing.T) {
	got, err := parseDate("startDate", "2026-03-15")
	if err != nil || got == nil {
		t.Fatalf("expected date, got %v / %v", got, err)
	}
	if got.Year() != 2026 || got.Month() != 3 || got.Day() != 15 {
		t.Fatalf("wrong date parsed: %v", got)
	}

	got, err = parseDate("startDate", "2026-03-15T10:30:00Z")
	if err != nil || got == nil {
		t.Fatalf("expected RFC3339 date, got %v / %v", got, err)
	}

	got, err = parseDate("startDate", "")
	if err != nil || got != nil {
		t.Fatalf("empty string should be absent, got %v / %v", got, err)
	}

	if _, err = parseDate("startDate", "15/03/2026"); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestValidStatus(t *testing.T) {
	for _, status := range []string{"planning", "confirmed", "completed", "cancelled"} {
		if !validStatus(status) {
			t.Fatalf("%q should be valid", status)
		}
	}
	if validStatus("archived") {
		t.Fatal("unknown status accepted")
	}
}

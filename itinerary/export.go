package itinerary

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"globetrotter/middleware"
	"globetrotter/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// GET /api/itineraries/:id/export
// Renders a printable PDF summary of the itinerary with a share-link QR code.
func ExportItinerary(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	itineraryID := ps.ByName("id")

	tokenString := r.Header.Get("Authorization")
	if _, err := middleware.ValidateJWT(tokenString); err != nil {
		log.Printf("JWT validation error: %v", err)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	it, err := loadItinerary(ctx, itineraryID, true)
	if err == errNotFound {
		utils.RespondWithError(w, http.StatusNotFound, "Itinerary not found")
		return
	}
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to export itinerary", err.Error())
		return
	}

	breakdown := computeBreakdown(it)

	frontend := os.Getenv("FRONTEND_URL")
	if frontend == "" {
		frontend = "http://localhost:5173"
	}
	shareLink := frontend + "/itineraries/" + itineraryID

	qrPNG, err := qrcode.Encode(shareLink, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, it.Name)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	if it.StartDate != nil && it.EndDate != nil {
		pdf.Cell(0, 10, fmt.Sprintf("%s - %s",
			it.StartDate.Format("Jan 2, 2006"), it.EndDate.Format("Jan 2, 2006")))
		pdf.Ln(8)
	}
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s", it.Status))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 10, "Stops")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	for _, stop := range it.Stops {
		pdf.Cell(0, 8, fmt.Sprintf("%d. %s (%s)", stop.Sequence, stop.CityName, stop.CityCode))
		pdf.Ln(7)
		for _, hotel := range stop.Hotels {
			pdf.Cell(0, 7, fmt.Sprintf("    Hotel: %s - %.2f %s", hotel.HotelName, hotel.PriceTotal, hotel.Currency))
			pdf.Ln(6)
		}
		for _, activity := range stop.Activities {
			line := "    Activity: " + activity.Name
			if activity.Price != nil {
				line += fmt.Sprintf(" - %.2f %s", *activity.Price, activity.Currency)
			}
			pdf.Cell(0, 7, line)
			pdf.Ln(6)
		}
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 10, "Flights")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	for _, flight := range it.Flights {
		pdf.Cell(0, 7, fmt.Sprintf("%s -> %s  %.2f %s", flight.FromCityCode, flight.ToCityCode, flight.PriceTotal, flight.Currency))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 10, "Budget")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Flights: %.2f  Hotels: %.2f  Activities: %.2f", breakdown.Flights.Cost, breakdown.Hotels.Cost, breakdown.Activities.Cost))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Total: %.2f %s", breakdown.Total, breakdown.Currency))
	pdf.Ln(6)
	if breakdown.Budget != nil {
		pdf.Cell(0, 7, fmt.Sprintf("Target budget: %.2f  Remaining: %.2f", *breakdown.Budget, *breakdown.Remaining))
		pdf.Ln(6)
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 20, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=itinerary-"+itineraryID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

package users

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"globetrotter/db"
	"globetrotter/middleware"
	"globetrotter/models"
	"globetrotter/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// POST /api/users
func CreateUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req struct {
		Email     string `json:"email"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatarUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Email == "" {
		utils.FailRequired(w, "Missing required fields", []string{"email"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := db.UserCollection.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to create user", err.Error())
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "A user with this email already exists")
		return
	}

	now := time.Now()
	user := models.User{
		UserID:    utils.GetUUID(),
		Email:     req.Email,
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to create user", err.Error())
		return
	}

	token, err := middleware.IssueToken(user.UserID, user.Email)
	if err != nil {
		log.Printf("Error issuing token for user %s: %v", user.UserID, err)
		utils.Fail(w, http.StatusInternalServerError, "Failed to create user", err.Error())
		return
	}

	log.Printf("Created user: %s (%s)", user.UserID, user.Email)
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success": true,
		"data":    user,
		"token":   token,
	})
}

// GET /api/users/:id
func GetUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to fetch user", err.Error())
		return
	}

	if user.Itineraries, err = findUserItineraries(ctx, user.UserID); err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to fetch user", err.Error())
		return
	}

	utils.Success(w, http.StatusOK, user)
}

// GET /api/users?email=xxx
func GetUserByEmail(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	email := r.URL.Query().Get("email")
	if email == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "email query parameter is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to fetch user", err.Error())
		return
	}

	if user.Itineraries, err = findUserItineraries(ctx, user.UserID); err != nil {
		utils.Fail(w, http.StatusInternalServerError, "Failed to fetch user", err.Error())
		return
	}

	utils.Success(w, http.StatusOK, user)
}

// findUserItineraries loads the user's itineraries, newest first, each with
// its stops and latest budget summary.
func findUserItineraries(ctx context.Context, userID string) ([]models.Itinerary, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdat", Value: -1}})
	cursor, err := db.ItineraryCollection.Find(ctx, bson.M{"userid": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	itineraries := []models.Itinerary{}
	for cursor.Next(ctx) {
		var it models.Itinerary
		if err := cursor.Decode(&it); err != nil {
			return nil, err
		}

		stopOpts := options.Find().SetSort(bson.D{{Key: "sequence", Value: 1}})
		stopCursor, err := db.StopCollection.Find(ctx, bson.M{"itineraryid": it.ItineraryID}, stopOpts)
		if err != nil {
			return nil, err
		}
		stops := []models.Stop{}
		if err := stopCursor.All(ctx, &stops); err != nil {
			return nil, err
		}
		it.Stops = stops

		var summary models.BudgetSummary
		err = db.BudgetCollection.FindOne(ctx, bson.M{"itineraryid": it.ItineraryID}).Decode(&summary)
		if err == nil {
			it.BudgetSummary = &summary
		} else if err != mongo.ErrNoDocuments {
			return nil, err
		}

		itineraries = append(itineraries, it)
	}
	return itineraries, cursor.Err()
}

package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mdarmaan6204/nutri-tracker/middlewares"
	"github.com/mdarmaan6204/nutri-tracker/services"
	"github.com/mdarmaan6204/nutri-tracker/utils"
)

type MealController struct {
	meals      *services.MealService
	predictor  services.Predictor
	uploader   *utils.S3Uploader
	uploadDir  string
	logger     logrus.FieldLogger
	production bool
}

// NewMealController wires the meal endpoints. uploader may be nil when
// no bucket is configured; photo archiving is then skipped.
func NewMealController(
	meals *services.MealService,
	predictor services.Predictor,
	uploader *utils.S3Uploader,
	uploadDir string,
	logger logrus.FieldLogger,
	production bool,
) *MealController {
	return &MealController{
		meals:      meals,
		predictor:  predictor,
		uploader:   uploader,
		uploadDir:  uploadDir,
		logger:     logger,
		production: production,
	}
}

// Add receives a food photo and relays it to the prediction gateway.
// The upload is buffered on disk for the duration of the request and
// removed on every exit path.
func (h *MealController) Add(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondBadRequest(c, "No image file uploaded")
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		respondError(c, h.production, err)
		return
	}
	tmpPath := filepath.Join(h.uploadDir, uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		respondError(c, h.production, err)
		return
	}
	defer os.Remove(tmpPath)

	f, err := os.Open(tmpPath)
	if err != nil {
		respondError(c, h.production, err)
		return
	}
	prediction, err := h.predictor.Predict(c.Request.Context(), f, file.Filename)
	f.Close()
	if err != nil {
		respondError(c, h.production, err)
		return
	}

	resp := gin.H{"success": true, "prediction": prediction}
	if h.uploader != nil {
		url, err := h.uploader.UploadFile(c.Request.Context(), tmpPath, "meals")
		if err != nil {
			h.logger.Warnf("photo archive failed: %v", err)
		} else {
			resp["imageUrl"] = url
		}
	}
	c.JSON(http.StatusOK, resp)
}

type SaveMealInput struct {
	FoodName  string                   `json:"foodName"`
	Detected  []string                 `json:"detected"`
	Nutrition []services.NutritionItem `json:"nutrition"`
	MealType  string                   `json:"mealType"`
	Date      *time.Time               `json:"date"`
	ImageURL  string                   `json:"imageUrl"`
}

func (h *MealController) Save(c *gin.Context) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	var input SaveMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBadRequest(c, "Invalid meal payload")
		return
	}

	in := services.SaveMealInput{
		FoodName:  input.FoodName,
		Detected:  input.Detected,
		Nutrition: input.Nutrition,
		MealType:  input.MealType,
		ImageURL:  input.ImageURL,
	}
	if input.Date != nil {
		in.Date = *input.Date
	}

	meal, err := h.meals.SaveMeal(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, h.production, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "meal": meal})
}

func (h *MealController) History(c *gin.Context) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	// Non-numeric values fall through as zero and take the defaults.
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	meals, pagination, err := h.meals.ListMeals(c.Request.Context(), userID, page, limit)
	if err != nil {
		respondError(c, h.production, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "meals": meals, "pagination": pagination})
}

func (h *MealController) All(c *gin.Context) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	meals, err := h.meals.ListAllMeals(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.production, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "meals": meals})
}

func (h *MealController) Delete(c *gin.Context) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondBadRequest(c, "Invalid meal id")
		return
	}

	if err := h.meals.DeleteMeal(c.Request.Context(), userID, uint(id)); err != nil {
		respondError(c, h.production, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mdarmaan6204/nutri-tracker/middlewares"
	"github.com/mdarmaan6204/nutri-tracker/services"
)

type SummaryController struct {
	meals      *services.MealService
	production bool
}

func NewSummaryController(meals *services.MealService, production bool) *SummaryController {
	return &SummaryController{meals: meals, production: production}
}

// Daily serves GET /daily/:date where :date is YYYY-MM-DD, interpreted
// in local server time.
func (h *SummaryController) Daily(c *gin.Context) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	date, err := time.ParseInLocation("2006-01-02", c.Param("date"), time.Local)
	if err != nil {
		respondBadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	summary, err := h.meals.DailySummary(c.Request.Context(), userID, date)
	if err != nil {
		respondError(c, h.production, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "meals": summary.Meals, "totals": summary.Totals, "date": summary.Date})
}

// Monthly serves GET /monthly/:year/:month.
func (h *SummaryController) Monthly(c *gin.Context) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1970 {
		respondBadRequest(c, "Invalid year")
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		respondBadRequest(c, "Invalid month")
		return
	}

	summary, err := h.meals.MonthlySummary(c.Request.Context(), userID, year, month)
	if err != nil {
		respondError(c, h.production, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"dailyData":     summary.DailyData,
		"monthlyTotals": summary.MonthlyTotals,
	})
}

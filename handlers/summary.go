package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"finance-api/middleware"
	"finance-api/models"
	"finance-api/services"

	"github.com/gin-gonic/gin"
)

type SummaryHandler struct {
	Service *services.SummaryService
}

// Monthly returns the calendar-month report. month and year default to
// the current month.
func (h *SummaryHandler) Monthly(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	if v := c.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Mois invalide"})
			return
		}
		month = m
	}
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Année invalide"})
			return
		}
		year = y
	}

	report, err := h.Service.BuildMonthlyReport(c.Request.Context(), userID, month, year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du calcul du résumé mensuel"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// Range returns the custom-period report. Both start_date and end_date
// are required.
func (h *SummaryHandler) Range(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	startParam := c.Query("start_date")
	endParam := c.Query("end_date")
	if startParam == "" || endParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Les dates de début et de fin sont requises"})
		return
	}

	start, err := models.ParseDate(startParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date de début invalide"})
		return
	}
	end, err := models.ParseDate(endParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date de fin invalide"})
		return
	}

	report, err := h.Service.BuildRangeReport(c.Request.Context(), userID, start, end)
	if err != nil {
		if errors.Is(err, services.ErrDateRangeRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Les dates de début et de fin sont requises"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du calcul du résumé personnalisé"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// Alerts returns the budget alerts for the current month.
func (h *SummaryHandler) Alerts(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	report, err := h.Service.BuildAlerts(c.Request.Context(), userID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des alertes"})
		return
	}

	c.JSON(http.StatusOK, report)
}

package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"finance-api/middleware"
	"finance-api/models"
	"finance-api/services"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	Service *services.CategoryService
}

func (h *CategoryHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	categories, err := h.Service.List(c.Request.Context(), userID, c.Query("type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des catégories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.Service.Create(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Une catégorie avec ce nom existe déjà pour ce type"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création de la catégorie"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Catégorie créée avec succès",
		"category": category,
	})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.Service.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie non trouvée"})
		case errors.Is(err, services.ErrCategoryNameTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Une catégorie avec ce nom existe déjà pour ce type"})
		case errors.Is(err, services.ErrNothingToUpdate):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Aucune donnée à mettre à jour"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour de la catégorie"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Catégorie mise à jour avec succès",
		"category": category,
	})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.Service.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie non trouvée"})
		case errors.Is(err, services.ErrCategoryInUse):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cette catégorie ne peut pas être supprimée car elle est utilisée par des dépenses ou revenus"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression de la catégorie"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Catégorie supprimée avec succès"})
}

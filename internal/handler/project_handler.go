package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"portfolio_server/internal/model"
	"portfolio_server/internal/service"

	"github.com/gin-gonic/gin"
)

// ProjectHandler handles catalog requests
type ProjectHandler struct {
	service service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(s service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: s}
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.service.ListProjects(c.Request.Context())
	if err != nil {
		log.Printf("Error listing projects: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch projects"})
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) GetImage(c *gin.Context) {
	imageID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image ID"})
		return
	}

	content, err := h.service.GetImage(c.Request.Context(), imageID)
	if err != nil {
		if errors.Is(err, service.ErrImageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
			return
		}
		log.Printf("Error fetching image %d: %v", imageID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch image"})
		return
	}

	c.Data(http.StatusOK, "image/jpeg", content)
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	price, ok := parsePrice(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form: " + err.Error()})
		return
	}

	req := model.CreateProjectRequest{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Price:       price,
		Images:      form.File["images"],
	}

	project, err := h.service.CreateProject(c.Request.Context(), req)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error creating project: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add project"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Project added successfully",
		"projectId": project.ID,
	})
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	price, ok := parsePrice(c)
	if !ok {
		return
	}

	// deletedImageIds arrives as a JSON-encoded array inside a form field.
	var deletedImageIDs []int64
	if raw := c.PostForm("deletedImageIds"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &deletedImageIDs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deletedImageIds: " + err.Error()})
			return
		}
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form: " + err.Error()})
		return
	}

	req := model.UpdateProjectRequest{
		Name:            c.PostForm("name"),
		Description:     c.PostForm("description"),
		Price:           price,
		DeletedImageIDs: deletedImageIDs,
		NewImages:       form.File["newImages"],
	}

	if err := h.service.UpdateProject(c.Request.Context(), projectID, req); err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error updating project %d: %v", projectID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project updated successfully"})
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	projectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	if err := h.service.DeleteProject(c.Request.Context(), projectID); err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}
		log.Printf("Error deleting project %d: %v", projectID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

func parsePrice(c *gin.Context) (float64, bool) {
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
		return 0, false
	}
	return price, true
}

func isValidationError(err error) bool {
	return errors.Is(err, service.ErrNameRequired) ||
		errors.Is(err, service.ErrNegativePrice) ||
		errors.Is(err, service.ErrTooManyImages) ||
		errors.Is(err, service.ErrFileSizeExceeded)
}

// RegisterProjectRoutes registers the public read routes and the admin-only
// write routes.
func (h *ProjectHandler) RegisterProjectRoutes(rg *gin.RouterGroup, jwtAuthMW, adminMW gin.HandlerFunc) {
	rg.GET("/projects", h.ListProjects)
	rg.GET("/images/:id", h.GetImage)

	rg.POST("/projects", jwtAuthMW, adminMW, h.CreateProject)
	rg.PUT("/projects/:id", jwtAuthMW, adminMW, h.UpdateProject)
	rg.DELETE("/projects/:id", jwtAuthMW, adminMW, h.DeleteProject)
}

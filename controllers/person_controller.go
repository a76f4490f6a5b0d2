package controllers

import (
	"net/http"
	"strconv"

	"github.com/JeffersonNayron/Turma-B/models"
	"github.com/JeffersonNayron/Turma-B/services"

	"github.com/gin-gonic/gin"
)

// PersonController exposes the attendance operations over JSON.
type PersonController struct {
	attendance *services.AttendanceService
}

func NewPersonController(attendance *services.AttendanceService) *PersonController {
	return &PersonController{attendance: attendance}
}

// List returns every person with the status as of now.
func (pc *PersonController) List(c *gin.Context) {
	people, err := pc.attendance.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, people)
}

func (pc *PersonController) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	person, err := pc.attendance.Get(c.Request.Context(), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, person)
}

func (pc *PersonController) Add(c *gin.Context) {
	var req models.AddPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and location are required"})
		return
	}

	person, err := pc.attendance.Add(c.Request.Context(), req.PersonName(), req.PersonLocation())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "person": person})
}

func (pc *PersonController) Start(c *gin.Context) {
	var req models.PersonIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	person, err := pc.attendance.Start(c.Request.Context(), req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "person": person})
}

func (pc *PersonController) EditTime(c *gin.Context) {
	var req models.EditTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	person, err := pc.attendance.EditTime(c.Request.Context(), req.ID, req.Start(), req.End())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "person": person})
}

func (pc *PersonController) EditLocation(c *gin.Context) {
	var req models.EditLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := pc.attendance.EditLocation(c.Request.Context(), req.ID, req.NewLocation()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SendMessage is mounted behind the admin role check.
func (pc *PersonController) SendMessage(c *gin.Context) {
	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := pc.attendance.SendMessage(c.Request.Context(), req.ID, req.Text()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (pc *PersonController) Delete(c *gin.Context) {
	var req models.PersonIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := pc.attendance.Delete(c.Request.Context(), req.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Reset clears every activity window and message; people are kept.
func (pc *PersonController) Reset(c *gin.Context) {
	n, err := pc.attendance.Reset(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reset": n})
}

// Purge deletes every person. Admin only.
func (pc *PersonController) Purge(c *gin.Context) {
	if err := pc.attendance.Purge(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rudra-raghu108/mist-backend/internal/common"
	"github.com/rudra-raghu108/mist-backend/internal/models"
	"github.com/rudra-raghu108/mist-backend/internal/training"
)

type addExampleReq struct {
	Question   string  `json:"question" binding:"required"`
	Answer     string  `json:"answer" binding:"required"`
	Confidence float64 `json:"confidence"`
}

func (h *Handler) AddTrainingExample(c *gin.Context) {
	uid, okk := userIDFromContext(c)
	if !okk {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	var req addExampleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	ex, err := h.TrainSvc.AddExample(c.Request.Context(), uid, req.Question, req.Answer, req.Confidence)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, 10030, "failed to add example")
		return
	}

	common.OK(c, gin.H{"example": ex})
}

type addCustomResponseReq struct {
	Trigger  string `json:"trigger" binding:"required"`
	Response string `json:"response" binding:"required"`
	Priority int    `json:"priority"`
}

func (h *Handler) AddCustomResponse(c *gin.Context) {
	uid, okk := userIDFromContext(c)
	if !okk {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	var req addCustomResponseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	cr, err := h.TrainSvc.AddCustomResponse(c.Request.Context(), uid, req.Trigger, req.Response, req.Priority)
	if err != nil {
		common.Fail(c, http.StatusBadRequest, 10031, "failed to add custom response")
		return
	}

	common.OK(c, gin.H{"custom_response": cr})
}

func (h *Handler) ListCustomResponses(c *gin.Context) {
	uid, okk := userIDFromContext(c)
	if !okk {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	responses, err := h.TrainSvc.ListCustomResponses(c.Request.Context(), uid)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50003, "failed to list custom responses")
		return
	}

	common.OK(c, gin.H{"custom_responses": responses})
}

func (h *Handler) GetAIProfile(c *gin.Context) {
	uid, okk := userIDFromContext(c)
	if !okk {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	p, err := h.TrainSvc.Profile(c.Request.Context(), uid)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50003, "failed to load profile")
		return
	}

	n, err := h.TrainSvc.CountExamples(c.Request.Context(), uid)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, 50003, "failed to load profile")
		return
	}

	common.OK(c, gin.H{
		"enabled":         p.Enabled,
		"learning_rate":   p.LearningRate,
		"last_trained_at": p.LastTrainedAt,
		"total_examples":  n,
	})
}

type updateAIProfileReq struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

func (h *Handler) UpdateAIProfile(c *gin.Context) {
	uid, okk := userIDFromContext(c)
	if !okk {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	var req updateAIProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	if err := h.TrainSvc.SetEnabled(c.Request.Context(), uid, *req.Enabled); err != nil {
		common.Fail(c, http.StatusInternalServerError, 50003, "failed to update profile")
		return
	}

	common.OK(c, gin.H{"enabled": *req.Enabled})
}

// TrainAI enqueues an asynchronous training job for the caller. An
// Idempotency-Key header makes retried requests return the same job.
func (h *Handler) TrainAI(c *gin.Context) {
	uid, okk := userIDFromContext(c)
	if !okk {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	idempoKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
	if len(idempoKey) > 128 {
		common.Fail(c, http.StatusBadRequest, 10003, "idempotency key too long")
		return
	}
	var idempoKeyPtr *string
	if idempoKey != "" {
		idempoKeyPtr = &idempoKey
	}

	jobID, err := common.NewULID()
	if err != nil {
		log.Printf("[TrainAI] NewULID failed uid=%d err=%v", uid, err)
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}

	j := &training.Job{
		ID:             jobID,
		UserID:         uid,
		IdempotencyKey: idempoKeyPtr,
		Status:         training.JobQueued,
	}

	job, created, err := h.TrainSvc.CreateJobOrGetExisting(c.Request.Context(), j)
	if err != nil {
		log.Printf("[TrainAI] CreateJobOrGetExisting failed uid=%d job_id=%s err=%v", uid, jobID, err)
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}

	// Enqueue only when a new job was created
	if created {
		if err := h.Rabbit.PublishJob(c.Request.Context(), job.ID); err != nil {
			log.Printf("[TrainAI] PublishJob failed uid=%d job_id=%s err=%v", uid, job.ID, err)
			common.Fail(c, http.StatusInternalServerError, 50002, "enqueue failed")
			return
		}
	}

	common.OK(c, gin.H{"job_id": job.ID})
}

func (h *Handler) GetTrainJob(c *gin.Context) {
	uid, okk := userIDFromContext(c)
	if !okk {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}
	jobID := c.Param("job_id")
	if jobID == "" {
		common.Fail(c, http.StatusBadRequest, 10002, "job_id required")
		return
	}

	j, err := h.TrainSvc.GetJob(c.Request.Context(), jobID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			common.Fail(c, http.StatusNotFound, 40402, "job not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}
	if j.UserID != uid {
		// hide existence
		common.Fail(c, http.StatusNotFound, 40402, "job not found")
		return
	}

	common.OK(c, gin.H{
		"job": gin.H{
			"id":                 j.ID,
			"status":             j.Status,
			"result_success":     j.ResultSuccess,
			"result_message":     j.ResultMessage,
			"total_examples":     j.TotalExamples,
			"average_confidence": j.AverageConfidence,
			"new_patterns":       j.NewPatterns,
			"error":              j.Error,
			"created_at":         j.CreatedAt,
			"updated_at":         j.UpdatedAt,
		},
	})
}

type suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// GetSuggestions returns quick-start prompt cards, personalised with the
// caller's campus and focus when set.
func (h *Handler) GetSuggestions(c *gin.Context) {
	uid, okk := userIDFromContext(c)
	if !okk {
		common.Fail(c, http.StatusUnauthorized, 40101, "unauthorized")
		return
	}

	suggestions := []suggestion{
		{"Admissions Process", "About admission requirements and deadlines", "admissions"},
		{"Engineering Programs", "Explore top engineering courses", "academics"},
		{"Hostel Facilities", "Information about accommodation and fees", "hostel"},
		{"Campus Events", "Discover clubs, events, and activities", "campus_life"},
		{"Placement Statistics", "Career opportunities and company visits", "placements"},
		{"Fee Structure", "Tuition fees and scholarship information", "fees"},
	}

	var user models.User
	if err := h.DB.First(&user, uid).Error; err == nil {
		if user.Campus != "" {
			suggestions = append(suggestions, suggestion{
				Title:       user.Campus + " Campus",
				Description: "Specific information about the " + user.Campus + " campus",
				Category:    "campus_specific",
			})
		}
		if user.Focus != "" {
			suggestions = append(suggestions, suggestion{
				Title:       user.Focus + " Focus",
				Description: "Information related to " + user.Focus,
				Category:    "personalized",
			})
		}
	}

	common.OK(c, gin.H{"suggestions": suggestions})
}

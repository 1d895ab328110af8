package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/rudra-raghu108/mist-backend/internal/common"
)

// Scaffolded surface carried over from the original service layout.
// These routes exist so clients can discover the API shape; behavior
// lands with the FAQ, analytics and scraping services.

func (h *Handler) GetFAQ(c *gin.Context)           { common.NotImplemented(c) }
func (h *Handler) AnalyticsSummary(c *gin.Context) { common.NotImplemented(c) }
func (h *Handler) StartScrape(c *gin.Context)      { common.NotImplemented(c) }

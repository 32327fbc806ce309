package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func ServiceBanner(c *gin.Context) {
	RespondOK(c, gin.H{
		"name":        "Sakti-Link Edge Server",
		"description": "Voice-first empowerment platform for rural women",
		"status":      "running",
	})
}

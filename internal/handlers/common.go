package handlers

import (
	"net/http"

	"github.com/szolzol/humbug-quiz-sub000/internal/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Envelope is the shared response shape for every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

func fail(c *gin.Context, err error) {
	if !services.Expected(err) {
		log.WithError(err).WithField("path", c.Request.URL.Path).Error("unexpected error")
		c.JSON(http.StatusInternalServerError, Envelope{Success: false, Error: "internal error"})
		return
	}
	c.JSON(services.HTTPStatus(err), Envelope{Success: false, Error: err.Error()})
}

func failMsg(c *gin.Context, status int, msg string) {
	c.JSON(status, Envelope{Success: false, Error: msg})
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// parseIDParam reads a uuid path parameter
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

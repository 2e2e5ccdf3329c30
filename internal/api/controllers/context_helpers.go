package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"schoolmeal/internal/services"
	"schoolmeal/pkg/middleware"
	"schoolmeal/pkg/utils"
)

// actorFrom reads the caller set by the JWT middleware. It responds 401 and returns false when absent.
func actorFrom(c *gin.Context) (services.Actor, bool) {
	userID, err := uuid.Parse(c.GetString(middleware.UserIDKey))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Missing or invalid user in token")
		return services.Actor{}, false
	}
	return services.Actor{
		UserID:    userID,
		Role:      c.GetString(middleware.RoleKey),
		SessionID: c.GetString(middleware.SessionIDKey),
	}, true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func slotParams(c *gin.Context) (int, int, bool) {
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid week")
		return 0, 0, false
	}
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid day")
		return 0, 0, false
	}
	return week, day, true
}

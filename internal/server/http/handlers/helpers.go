package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	domainErrors "github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/errors"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/policy"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/server/http/dto"
	"github.com/AmanKr31/Farm-Bazzar-sub000/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// CurrentActor returns the authenticated caller as seen by the policy.
func CurrentActor(c *gin.Context) policy.Actor {
	actor := policy.Actor{ID: CurrentUserID(c)}
	if val, ok := c.Get(middleware.RoleContextKey); ok {
		actor.Role, _ = val.(model.Role)
	}
	return actor
}

var kindStatus = map[string]int{
	"Forbidden":           http.StatusForbidden,
	"NotFound":            http.StatusNotFound,
	"InvalidTransition":   http.StatusUnprocessableEntity,
	"NotNegotiable":       http.StatusUnprocessableEntity,
	"PriceExceedsListing": http.StatusUnprocessableEntity,
	"InsufficientStock":   http.StatusUnprocessableEntity,
	"InvalidLineItem":     http.StatusUnprocessableEntity,
	"OrderNotDelivered":   http.StatusUnprocessableEntity,
	"SessionClosed":       http.StatusConflict,
	"DuplicateReview":     http.StatusConflict,
	"AlreadyReplied":      http.StatusConflict,
	"AlreadyFinalized":    http.StatusConflict,
	"Conflict":            http.StatusConflict,
	"AlreadyExists":       http.StatusConflict,
	"InvalidInput":        http.StatusBadRequest,
	"InvalidCredentials":  http.StatusUnauthorized,
}

// statusFor maps a domain error kind to an HTTP status.
func statusFor(kind string) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// respondError writes the JSON error body for err. Unexpected errors are
// attached to the context so the request logger reports them.
func respondError(c *gin.Context, err error) {
	kind := domainErrors.Kind(err)
	status := statusFor(kind)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "internal error"
	}
	c.JSON(status, dto.ErrorResponse{Error: kind, Message: msg})
}

// respondBindError reports a malformed request body as InvalidInput.
func respondBindError(c *gin.Context, err error) {
	resp := dto.ErrorResponse{Error: "InvalidInput", Message: "malformed request body"}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		resp.Message = "request validation failed"
		for _, fe := range verrs {
			resp.Fields = append(resp.Fields, dto.FieldError{Field: fe.Field(), Rule: fe.Tag()})
		}
	}
	c.JSON(http.StatusBadRequest, resp)
}

// pathID parses a positive integer path parameter, writing an error
// response when it is malformed.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, fmt.Errorf("invalid %s: %w", name, domainErrors.ErrInvalidInput))
		return 0, false
	}
	return id, true
}

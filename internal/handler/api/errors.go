package api

import (
	"errors"
	"net/http"

	"wellness-booking/internal/domain/reservation"
	"wellness-booking/internal/handler/httperr"
	"wellness-booking/internal/handler/middleware"
	"wellness-booking/internal/pkg/errs"
	"wellness-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type conflictDetail struct {
	RoomID   string `json:"roomId"`
	RoomName string `json:"roomName,omitempty"`
	Date     string `json:"date"`
	Range    string `json:"range"`
}

// respondError maps the category marker attached by the usecase layer to a status code.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errs.Is(err, errs.ErrValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, rootMessage(err), nil)
	case errs.Is(err, errs.ErrNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, rootMessage(err), nil)
	case errs.Is(err, errs.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", nil)
	case errs.Is(err, errs.ErrConflict):
		var ce *reservation.ConflictError
		if errors.As(err, &ce) {
			httperr.AbortWithError(c, http.StatusConflict, err, ce.Error(), conflictDetail{
				RoomID:   ce.RoomID.String(),
				RoomName: ce.RoomName,
				Date:     ce.Window.Date.String(),
				Range:    ce.Window.String(),
			})
			return
		}
		httperr.AbortWithError(c, http.StatusConflict, err, rootMessage(err), nil)
	case errs.Is(err, errs.ErrInsufficientResource):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, rootMessage(err), nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, fallback, nil)
	}
}

// rootMessage strips wrapping context so clients see the domain message only.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

func currentSession(c *gin.Context) (commands.Session, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return commands.Session{}, false
	}
	sessionID, ok := middleware.GetCheckoutSessionID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusBadRequest, nil, "Missing or invalid "+middleware.CheckoutSessionHeader+" header", nil)
		return commands.Session{}, false
	}
	return commands.Session{ID: sessionID, UserID: userID}, true
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

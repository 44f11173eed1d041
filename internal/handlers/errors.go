package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"crud-apps/internal/handlers/dto"
	"crud-apps/internal/models"
)

var notFoundErrors = []error{
	models.ErrTaskNotFound,
	models.ErrExpenseNotFound,
	models.ErrVenueNotFound,
	models.ErrEventNotFound,
	models.ErrTicketTypeNotFound,
	models.ErrBookingNotFound,
}

// handleError maps domain errors to status codes. Anything unrecognised is
// logged and reported as a bare 500.
func handleError(c *gin.Context, log logrus.FieldLogger, err error) {
	_ = c.Error(err)

	for _, sentinel := range notFoundErrors {
		if errors.Is(err, sentinel) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Detail: capitalize(sentinel.Error())})
			return
		}
	}

	switch {
	case errors.Is(err, models.ErrCapacityExceeded):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Detail: capitalize(models.ErrCapacityExceeded.Error())})

	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Detail: validationDetail(err)})

	default:
		log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Detail: "internal server error"})
	}
}

// bindError reports a malformed body or query string.
func bindError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Detail: "invalid request: " + err.Error()})
}

// pathID parses the :id parameter, answering 422 itself when it is not a number.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Detail: "invalid id " + strconv.Quote(c.Param("id"))})
		return 0, false
	}
	return id, true
}

func validationDetail(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, models.ErrValidation.Error()+": "); i >= 0 {
		msg = msg[i+len(models.ErrValidation.Error())+2:]
	}
	return msg
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

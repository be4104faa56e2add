package handlers

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/frostbyte/internal/domain/models"
)

var errMissingDate = errors.New("missing date")

// missingDateMessage is the wire text for an absent date.
const missingDateMessage = "Missing date"

// dateError renders a date binding failure as a 400 body.
func dateError(err error) gin.H {
	if errors.Is(err, errMissingDate) {
		return gin.H{"error": missingDateMessage}
	}
	return gin.H{"error": err.Error()}
}

// bindDate reads the {"date": "YYYY-MM-DD"} body of the validation endpoints.
// An empty body is treated like a missing date.
func bindDate(c *gin.Context) (time.Time, error) {
	var req models.DateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		return time.Time{}, fmt.Errorf("invalid request body: %w", err)
	}
	return parseDate(req.Date)
}

func parseDate(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, errMissingDate
	}
	date, err := models.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return date, nil
}

package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/flockfeed/backend/internal/models"
	"github.com/pageza/flockfeed/backend/internal/types"
)

// pathID parses a UUID path parameter, writing a 400 when it is malformed.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, fmt.Errorf("invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}

// listQuery binds skip/limit and the optional owner filters.
func listQuery(c *gin.Context) (types.ListQuery, bool) {
	var q types.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return q, false
	}
	return q, true
}

func optionalID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id := uuid.MustParse(s)
	return &id
}

// dateOrToday parses a YYYY-MM-DD value; empty means the current UTC day.
func dateOrToday(c *gin.Context, s string) (time.Time, bool) {
	if s == "" {
		return models.DateOnly(time.Now().UTC()), true
	}
	d, err := models.ParseDate(s)
	if err != nil {
		badRequest(c, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s))
		return time.Time{}, false
	}
	return d, true
}

package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func GetOperator(c *fiber.Ctx) string {
	operator, _ := c.Locals("operator").(string)
	return operator
}

// parseDate reads a YYYY-MM-DD query value in loc. An empty value yields the
// zero time.
func parseDate(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation("2006-01-02", value, loc)
}

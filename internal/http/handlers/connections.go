package handlers

import (
	"net/http"
	"strings"

	intconfig "raildesk/internal/config"
	"raildesk/internal/domain"
	"raildesk/internal/pricing"
	"raildesk/internal/repositories"
	"raildesk/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/connections?from=&to=&date=&maxPrice=
func SearchConnections(c *gin.Context) {
	from := utils.NormalizeSpace(c.Query("from"))
	to := utils.NormalizeSpace(c.Query("to"))
	date := strings.TrimSpace(c.Query("date"))

	if from == "" || to == "" {
		RespondDomainError(c, domain.ValidationError{Field: "from/to", Msg: "both stations are required"})
		return
	}
	if date == "" {
		date = utils.FormatDate(utils.NowUTC())
	} else if !utils.ValidDate(date) {
		RespondDomainError(c, domain.ValidationError{Field: "date", Msg: "expected YYYY-MM-DD"})
		return
	}

	repo := repositories.ConnectionRepository{DB: intconfig.DB}
	connections, err := repo.Search(from, to, date)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "connection search failed", Err: err})
		return
	}

	if raw := strings.TrimSpace(c.Query("maxPrice")); raw != "" {
		max, err := utils.ParseAmount(raw)
		if err != nil || max < 0 {
			RespondDomainError(c, domain.ValidationError{Field: "maxPrice", Msg: "expected a decimal amount"})
			return
		}
		connections = repositories.FilterByMaxPrice(connections, max)
	}

	c.JSON(http.StatusOK, gin.H{
		"connections": connections,
		"count":       len(connections),
	})
}

// GET /api/stations
func Stations(c *gin.Context) {
	repo := repositories.ConnectionRepository{DB: intconfig.DB}
	stations, err := repo.Stations()
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "station listing failed", Err: err})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stations": stations})
}

// GET /api/discount-cards
// The wizard renders its per-passenger dropdown from the same table the
// engine prices with.
func DiscountCards(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"discountCards": pricing.DiscountCards})
}

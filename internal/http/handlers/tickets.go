package handlers

import (
	"log"
	"net/http"
	"strconv"

	"raildesk/internal/domain"
	"raildesk/internal/domain/models"
	"raildesk/internal/http/middleware"
	"raildesk/internal/services"
	"raildesk/internal/utils"

	"github.com/gin-gonic/gin"
)

var sessions = services.NewSessionManager()

func deskStore(c *gin.Context) *services.TicketStore {
	return sessions.Store(middleware.GetSessionID(c))
}

// respondTicket returns the draft after a mutation. The ticket is null when
// no draft exists; the wizard checks for that and re-starts.
func respondTicket(c *gin.Context, st *services.TicketStore) {
	ticket := st.CurrentTicket()
	payload := gin.H{"ticket": ticket}
	if breakdown, ok := st.PriceBreakdown(); ok {
		payload["breakdown"] = breakdown
	}
	c.JSON(http.StatusOK, payload)
}

// POST /api/tickets/start
func StartTicket(c *gin.Context) {
	st := deskStore(c)
	st.StartNewTicket()

	ticket := st.CurrentTicket()
	c.JSON(http.StatusCreated, gin.H{"ticket": ticket})
}

// GET /api/tickets/current
func GetCurrentTicket(c *gin.Context) {
	st := deskStore(c)
	ticket := st.CurrentTicket()
	if ticket == nil {
		RespondDomainError(c, domain.NotFoundError{Resource: "draft ticket"})
		return
	}
	respondTicket(c, st)
}

// PUT /api/tickets/route
func SetRoute(c *gin.Context) {
	var req services.RouteSelectionPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	if utils.TrimOrEmpty(req.FromStation) == "" || utils.TrimOrEmpty(req.ToStation) == "" {
		RespondDomainError(c, domain.ValidationError{Field: "fromStation/toStation", Msg: "both stations are required"})
		return
	}
	if req.DepartureDate != "" && !utils.ValidDate(req.DepartureDate) {
		RespondDomainError(c, domain.ValidationError{Field: "departureDate", Msg: "expected YYYY-MM-DD"})
		return
	}
	if req.DepartureTime != "" {
		day := req.DepartureDate
		if day == "" {
			day = utils.FormatDate(utils.NowUTC())
		}
		if _, err := utils.ParseDateTime(day + "T" + utils.TrimOrEmpty(req.DepartureTime)); err != nil {
			RespondDomainError(c, domain.ValidationError{Field: "departureTime", Msg: "expected HH:MM"})
			return
		}
	}
	if req.BasePrice != nil && *req.BasePrice < 0 {
		RespondDomainError(c, domain.ValidationError{Field: "basePrice", Msg: "must not be negative"})
		return
	}

	st := deskStore(c)
	st.SetRouteSelection(req)
	respondTicket(c, st)
}

// PUT /api/tickets/passenger-categories
func SetPassengerCategories(c *gin.Context) {
	var req models.PassengerCategories
	if !BindJSONOrError(c, &req) {
		return
	}

	// the wizard step enforces the floor and caps before the store sees
	// the mutation; the store guards them again
	if !req.Valid() {
		RespondDomainError(c, domain.ValidationError{Field: "passengerCategories", Msg: "each counter must be between 0 and 9"})
		return
	}
	if req.Sum() < 1 {
		RespondDomainError(c, domain.ValidationError{Field: "passengerCategories", Msg: "at least one passenger is required"})
		return
	}

	st := deskStore(c)
	st.SetPassengerCategories(req)
	respondTicket(c, st)
}

type passengerCountRequest struct {
	Count int `json:"count"`
}

// PUT /api/tickets/passenger-count
func SetPassengerCount(c *gin.Context) {
	var req passengerCountRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	st := deskStore(c)
	st.SetPassengerCount(req.Count)
	respondTicket(c, st)
}

type returnTypeRequest struct {
	ReturnType models.ReturnType `json:"returnType"`
}

// PUT /api/tickets/return-type
func SetReturnType(c *gin.Context) {
	var req returnTypeRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !req.ReturnType.Valid() {
		RespondDomainError(c, domain.ValidationError{Field: "returnType", Msg: "expected one-way, round-trip-open or round-trip-fixed"})
		return
	}

	st := deskStore(c)
	st.SetReturnType(req.ReturnType)
	respondTicket(c, st)
}

type returnDateRequest struct {
	ReturnDate string `json:"returnDate"`
}

// PUT /api/tickets/return-date
func SetReturnDate(c *gin.Context) {
	var req returnDateRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !utils.ValidDate(req.ReturnDate) {
		RespondDomainError(c, domain.ValidationError{Field: "returnDate", Msg: "expected YYYY-MM-DD"})
		return
	}

	st := deskStore(c)
	st.SetReturnDate(req.ReturnDate)
	respondTicket(c, st)
}

// PUT /api/tickets/passengers/:index
func UpdatePassenger(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		RespondDomainError(c, domain.ValidationError{Field: "index", Msg: "must be a non-negative integer"})
		return
	}

	var req services.PassengerUpdate
	if !BindJSONOrError(c, &req) {
		return
	}

	st := deskStore(c)
	st.UpdatePassenger(index, req)
	respondTicket(c, st)
}

type servicesRequest struct {
	Services []models.AdditionalService `json:"services"`
}

// PUT /api/tickets/services
func SetAdditionalServices(c *gin.Context) {
	var req servicesRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	for _, svc := range req.Services {
		if svc.Quantity < 1 {
			RespondDomainError(c, domain.ValidationError{Field: "services", Msg: "quantity must be at least 1"})
			return
		}
		if svc.TotalPrice < 0 {
			RespondDomainError(c, domain.ValidationError{Field: "services", Msg: "totalPrice must not be negative"})
			return
		}
	}

	st := deskStore(c)
	st.SetAdditionalServices(req.Services)
	respondTicket(c, st)
}

// GET /api/tickets/discount-eligibility
func DiscountEligibility(c *gin.Context) {
	st := deskStore(c)
	c.JSON(http.StatusOK, gin.H{"complete": st.DiscountsStepComplete()})
}

// POST /api/tickets/issue
func IssueTicket(c *gin.Context) {
	st := deskStore(c)
	snap, ok := st.IssueTicket()
	if !ok {
		RespondDomainError(c, domain.NotFoundError{Resource: "draft ticket"})
		return
	}
	if claims, ok := middleware.GetAuthClaims(c); ok {
		log.Printf("[TICKET] session_id=%s action=issue user_id=%v",
			middleware.GetSessionID(c), claims["user_id"])
	}
	c.JSON(http.StatusCreated, gin.H{"ticket": snap})
}

// POST /api/tickets/cancel
func CancelTicket(c *gin.Context) {
	st := deskStore(c)
	st.CancelTicketProcess()
	c.JSON(http.StatusOK, gin.H{"message": "ticket process cancelled"})
}

// GET /api/tickets/issued
func GetIssuedTickets(c *gin.Context) {
	st := deskStore(c)
	issued := st.IssuedTickets()
	c.JSON(http.StatusOK, gin.H{
		"tickets": issued,
		"count":   len(issued),
	})
}

// GET /api/tickets/issued/:index/e-ticket
func GetIssuedETicketPDF(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		RespondDomainError(c, domain.ValidationError{Field: "index", Msg: "must be a non-negative integer"})
		return
	}

	st := deskStore(c)
	ticket, ok := st.IssuedTicketAt(index)
	if !ok {
		RespondDomainError(c, domain.NotFoundError{Resource: "issued ticket"})
		return
	}

	svc := services.DocsService{SessionID: middleware.GetSessionID(c)}
	pdfBytes, filename, err := svc.GenerateETicket(ticket, index)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to render e-ticket", err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

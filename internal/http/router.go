package api

import (
	"log"
	stdhttp "net/http"

	intconfig "raildesk/internal/config"
	h "raildesk/internal/http/handlers"
	"raildesk/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetJWTSecret(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Timetable / catalog feeding the wizard
		api.GET("/stations", h.Stations)
		api.GET("/connections", h.SearchConnections)
		api.GET("/discount-cards", h.DiscountCards)

		// Ticket wizard (per desk session)
		tickets := api.Group("/tickets")
		tickets.Use(middleware.Session(), middleware.AuthOptional(h.JWTSecret()))
		{
			tickets.POST("/start", h.StartTicket)
			tickets.GET("/current", h.GetCurrentTicket)
			tickets.PUT("/route", h.SetRoute)
			tickets.PUT("/passenger-categories", h.SetPassengerCategories)
			tickets.PUT("/passenger-count", h.SetPassengerCount)
			tickets.PUT("/return-type", h.SetReturnType)
			tickets.PUT("/return-date", h.SetReturnDate)
			tickets.PUT("/passengers/:index", h.UpdatePassenger)
			tickets.PUT("/services", h.SetAdditionalServices)
			tickets.GET("/discount-eligibility", h.DiscountEligibility)
			tickets.POST("/issue", h.IssueTicket)
			tickets.POST("/cancel", h.CancelTicket)
			tickets.GET("/issued", h.GetIssuedTickets)
			tickets.GET("/issued/:index/e-ticket", h.GetIssuedETicketPDF)
		}
	}

	h.SetRouter(r)
	return r
}

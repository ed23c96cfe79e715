package router

import (
	"github.com/labstack/echo/v4"

	"github.com/averden/hospitality-booking/internal/handler"
	"github.com/averden/hospitality-booking/internal/middleware"
	"github.com/averden/hospitality-booking/internal/model"
)

// Handlers collects every handler group the router wires up.
type Handlers struct {
	Auth         *handler.AuthHandler
	Browse       *handler.BrowseHandler
	Availability *handler.AvailabilityHandler
	Search       *handler.SearchHandler
	Booking      *handler.BookingHandler
	AdminListing *handler.AdminListingHandler
	AdminLoc     *handler.AdminLocationHandler
	AdminUser    *handler.AdminUserHandler
	AdminBooking *handler.AdminBookingHandler
	AdminReport  *handler.AdminReportHandler
	AdminMedia   *handler.AdminMediaHandler
}

// Register wires all routes onto the Echo instance. publicMW carries
// middleware applied to the unauthenticated catalog routes only (rate
// limiting and the response cache); authenticated routes skip the
// cache so users never see each other's data.
func Register(e *echo.Echo, h Handlers, jwtSecret string, publicMW ...echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	// Session endpoints. Logout works with a refresh token alone, so it
	// stays outside the JWT group.
	auth := e.Group("/v1/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/refresh-access", h.Auth.RefreshAccess)
	auth.POST("/logout", h.Auth.Logout)

	// Public catalog. Cacheable and rate limited.
	pub := e.Group("/v1", publicMW...)
	pub.GET("/locations", h.Browse.ListLocations)
	pub.GET("/facilities", h.Browse.ListFacilities)
	pub.GET("/locations/:id/listings", h.Browse.ListingsByLocation)
	pub.GET("/listings/:slug", h.Browse.ListingBySlug)
	pub.GET("/listings/:id/availability", h.Availability.ListingAvailability)
	pub.GET("/search/listings", h.Search.SearchListings)

	// Everything past here needs a valid access token.
	user := e.Group("/v1")
	user.Use(middleware.JWTAuth(jwtSecret))
	user.Use(middleware.RequireRole(model.RoleAdmin, model.RoleStaff, model.RoleUser))
	user.GET("/me", h.Auth.Me)
	user.POST("/listings/:id/quote", h.Booking.Quote)
	user.POST("/bookings", h.Booking.Create)
	user.GET("/bookings", h.Booking.List)
	user.GET("/bookings/:id", h.Booking.Get)
	user.POST("/bookings/:id/confirm", h.Booking.Confirm)
	user.POST("/bookings/:id/cancel", h.Booking.Cancel)

	// Management surface shared by staff and admins. Staff visibility
	// is group-scoped inside the handlers.
	mgmt := e.Group("/v1/admin")
	mgmt.Use(middleware.JWTAuth(jwtSecret))
	mgmt.Use(middleware.RequireRole(model.RoleAdmin, model.RoleStaff))
	mgmt.GET("/listings", h.AdminListing.ListListings)
	mgmt.POST("/listings", h.AdminListing.CreateListing)
	mgmt.GET("/listings/:id", h.AdminListing.GetListing)
	mgmt.PUT("/listings/:id", h.AdminListing.UpdateListing)
	mgmt.PUT("/listings/:id/status", h.AdminListing.SetListingStatus)
	mgmt.POST("/listings/:id/resources", h.AdminListing.CreateResource)
	mgmt.PUT("/listings/:id/resources/:resourceID", h.AdminListing.UpdateResource)
	mgmt.DELETE("/listings/:id/resources/:resourceID", h.AdminListing.DeleteResource)
	mgmt.PUT("/listings/:id/rules", h.AdminListing.UpsertRule)
	mgmt.DELETE("/listings/:id/rules/:ruleID", h.AdminListing.DeleteRule)
	mgmt.GET("/listings/:id/media", h.AdminMedia.List)
	mgmt.POST("/listings/:id/media", h.AdminMedia.Upload)
	mgmt.DELETE("/listings/:id/media/:mediaID", h.AdminMedia.Delete)
	mgmt.GET("/bookings", h.AdminBooking.ListBookings)
	mgmt.GET("/bookings/:id", h.AdminBooking.GetBooking)
	mgmt.PUT("/bookings/:id/status", h.AdminBooking.SetBookingStatus)
	mgmt.POST("/bookings/:id/cancel", h.AdminBooking.CancelBooking)
	mgmt.GET("/reports/bookings", h.AdminReport.BookingReport)
	mgmt.POST("/locations", h.AdminLoc.CreateLocation)
	mgmt.PUT("/locations/:id", h.AdminLoc.UpdateLocation)
	mgmt.POST("/facilities", h.AdminLoc.CreateFacility)
	mgmt.PUT("/facilities/:id", h.AdminLoc.UpdateFacility)
	mgmt.DELETE("/facilities/:id", h.AdminLoc.DeleteFacility)

	// Admin-only: destructive geography changes, accounts and groups.
	admin := e.Group("/v1/admin")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.DELETE("/locations/:id", h.AdminLoc.DeleteLocation)
	admin.GET("/users", h.AdminUser.ListUsers)
	admin.PUT("/users/:id/role", h.AdminUser.SetUserRole)
	admin.PUT("/users/:id/active", h.AdminUser.SetUserActive)
	admin.POST("/groups", h.AdminUser.CreateGroup)
	admin.GET("/groups", h.AdminUser.ListGroups)
	admin.GET("/groups/:id", h.AdminUser.GetGroup)
	admin.PUT("/groups/:id", h.AdminUser.UpdateGroup)
	admin.DELETE("/groups/:id", h.AdminUser.DeleteGroup)
}

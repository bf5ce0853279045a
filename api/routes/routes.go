package routes

import (
	"time"

	"kemlabels/api/handler"
	"kemlabels/api/middleware"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo      *echo.Echo
	Auth      *handler.AuthHandler
	Session   middleware.SessionMiddleware
	AuthRate  *middleware.RateLimiter
	LoginRate *middleware.RateLimiter
}

func NewRouter(e *echo.Echo, authHandler *handler.AuthHandler, session middleware.SessionMiddleware) *Router {
	return &Router{
		Echo:      e,
		Auth:      authHandler,
		Session:   session,
		AuthRate:  middleware.NewRateLimiter(rate.Limit(5), 10, 5*time.Minute),
		LoginRate: middleware.NewRateLimiter(rate.Limit(2), 4, 10*time.Minute),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo

	e.POST("/signup", r.Auth.SignUp, r.AuthRate.Middleware())
	e.POST("/signin", r.Auth.SignIn, r.LoginRate.Middleware())
	e.GET("/logout", r.Auth.Logout, r.Session.RequireSession)
	e.POST("/logout", r.Auth.Logout, r.Session.RequireSession)

	e.GET("/users/:id/verify/:token", r.Auth.VerifyEmail, r.AuthRate.Middleware())
	e.GET("/isUserVerified", r.Auth.IsUserVerified, r.Session.RequireSession)
	e.GET("/checkVerification", r.Auth.CheckVerification, r.Session.RequireSession)
	e.GET("/generateToken", r.Auth.RegenerateToken, r.Session.RequireSession, r.AuthRate.Middleware())

	e.POST("/emailExists", r.Auth.EmailExists, r.AuthRate.Middleware())
	e.POST("/forgotpassword", r.Auth.ForgotPassword, r.LoginRate.Middleware())
	e.POST("/generateNewOTP", r.Auth.GenerateNewOTP, r.LoginRate.Middleware())
	e.POST("/checkOTP", r.Auth.CheckOTP, r.LoginRate.Middleware())
	e.POST("/updateUserPass", r.Auth.UpdateUserPass, r.LoginRate.Middleware())
}

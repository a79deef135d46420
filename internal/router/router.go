package router

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"musicmentor/internal/auth"
	"musicmentor/internal/config"
	"musicmentor/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokenHandler *handler.TokenHandler,
	userHandler *handler.UserHandler,
	classHandler *handler.ClassHandler,
	selectionHandler *handler.SelectionHandler,
	paymentHandler *handler.PaymentHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	// Bounds every store call made on behalf of a request.
	e.Use(middleware.ContextTimeout(10 * time.Second))

	e.Validator = &CustomValidator{validator: validator.New()}

	// Bearer verification for the protected subset of routes. Claims decode
	// into auth.Claims so handlers get the email without re-parsing.
	bearer := echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	})

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Music Mentor is running")
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Token issuing
	e.POST("/jwt", tokenHandler.Issue)

	// Users
	e.GET("/users", userHandler.ListUsers, bearer)
	e.POST("/users", userHandler.RegisterUser)
	e.GET("/users/admin/:email", userHandler.CheckAdmin, bearer)
	e.GET("/users/instructor/:email", userHandler.CheckInstructor, bearer)
	e.GET("/users/student/:email", userHandler.CheckStudent, bearer)
	e.PATCH("/users/:id", userHandler.UpdateRole, bearer)
	e.GET("/allinstructors", userHandler.ListInstructors)
	e.GET("/popularinstructors", classHandler.PopularInstructors)

	// Classes
	e.GET("/allclass", classHandler.ListClasses)
	e.POST("/addclass", classHandler.AddClass)
	e.GET("/myclass/:email", classHandler.MyClasses)
	e.PATCH("/allclass/:id", classHandler.UpdateStatus)
	e.PATCH("/classfeedback/:id", classHandler.UpdateFeedback)
	e.PATCH("/updateclass/:id", classHandler.UpdateClass)
	e.GET("/popularclasses", classHandler.PopularClasses)

	// Selections
	e.POST("/selectedclasses", selectionHandler.AddSelection)
	e.GET("/myselectedclass/:email", selectionHandler.MySelections)
	e.DELETE("/myselectedclass/:id", selectionHandler.RemoveSelection)

	// Payments
	e.POST("/create-payment-intent", paymentHandler.CreatePaymentIntent, bearer)
	e.POST("/payments", paymentHandler.CompletePayment, bearer)
	e.GET("/payments/:email", paymentHandler.PaymentsByStudent)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

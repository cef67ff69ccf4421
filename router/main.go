package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/ojst60/DevBootcamp/database"
	"github.com/ojst60/DevBootcamp/handlers"
	bootcamp_handlers "github.com/ojst60/DevBootcamp/handlers/bootcamp"
	course_handlers "github.com/ojst60/DevBootcamp/handlers/course"
	"github.com/ojst60/DevBootcamp/services"
	"github.com/ojst60/DevBootcamp/services/geocoder"
	"github.com/ojst60/DevBootcamp/utils"
	"github.com/ojst60/DevBootcamp/utils/middleware"
	"github.com/ojst60/DevBootcamp/utils/validation"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(app *fiber.App, store database.Storage, g geocoder.Geocoder, security middleware.SecurityConfig) {
	validator := validation.NewValidator()

	bootcampService := services.NewBootcampService(store.Bootcamps(), g, validator)
	courseService := services.NewCourseService(store.Courses(), store.Bootcamps(), validator)

	bootcampHandler := bootcamp_handlers.NewBootcampHandler(bootcampService)
	courseHandler := course_handlers.NewCourseHandler(courseService)

	// Apply security middleware
	middleware.SetupSecurity(app, security)

	// Prometheus scrape endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API v1 group
	api := app.Group("/api/v1")

	// Health check endpoint (public)
	api.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))

	// Bootcamp routes
	bootcamps := api.Group("/bootcamps")
	bootcamps.Get("/radius/:postcode/:distance", bootcampHandler.GetBootcampsInRadius)
	bootcamps.Get("/", bootcampHandler.ListBootcamps)
	bootcamps.Post("/", bootcampHandler.CreateBootcamp)
	bootcamps.Get("/:id", bootcampHandler.GetBootcamp)
	bootcamps.Put("/:id", bootcampHandler.UpdateBootcamp)
	bootcamps.Delete("/:id", bootcampHandler.DeleteBootcamp)

	// Courses nested under a bootcamp
	bootcamps.Get("/:bootcampId/courses", courseHandler.ListCourses)
	bootcamps.Post("/:bootcampId/courses", courseHandler.CreateCourse)

	// Course routes
	courses := api.Group("/courses")
	courses.Get("/", courseHandler.ListCourses)
	courses.Get("/:id", courseHandler.GetCourse)
	courses.Put("/:id", courseHandler.UpdateCourse)
	courses.Delete("/:id", courseHandler.DeleteCourse)

	// Anything else
	app.Use(middleware.NotFound)
}

package main

import (
	"log"

	"tracker/config"
	controllers "tracker/controllers/course"
	"tracker/database"
	"tracker/logger"
	"tracker/progression"
	"tracker/routers/courseRoutes"
	"tracker/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

func main() {
	config.LoadConfig()

	appLog, err := logger.New(config.AppConfig.LogMode)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer appLog.Sync()

	database.ConnectDb()
	db := database.Database.Db

	service := progression.NewService(
		database.NewCourseStore(db),
		appLog.With("component", "progression"),
		progression.WithQuizPolicy(progression.QuizPolicy{
			MaxAttempts: config.AppConfig.QuizMaxAttempts,
			PassPercent: config.AppConfig.QuizPassPercent,
		}),
	)
	courseController := controllers.NewCourseController(service, appLog.With("component", "http"))

	app := fiber.New()

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(fiberLogger.New(fiberLogger.Config{
		Format: "[${time}] ${locals:requestid} ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	courseRoutes.SetupCourseRoutes(app, courseController)
	courseRoutes.SetupAdminCourseRoutes(app, db, courseController)

	scheduler, err := utils.InitializeEnrollmentScheduler(db, appLog, config.AppConfig.EnrollmentSweepCron)
	if err != nil {
		appLog.Fatal("failed to start enrollment scheduler", "error", err)
	}
	defer scheduler.Stop()

	appLog.Info("server is running", "port", config.AppConfig.Port)
	if err := app.Listen(":" + config.AppConfig.Port); err != nil {
		appLog.Error("server stopped", "error", err)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"dispatch/cmd"
	"dispatch/internal/adapters/out/postgres/assignmentrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/riderrepo"
	"dispatch/internal/adapters/out/postgres/rulerepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/rule"
	"dispatch/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrateDB(gormDB)

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Error building composition root: %v", err)
	}

	if err := seedDefaultRule(context.Background(), &app); err != nil {
		log.Fatalf("Error seeding default rule: %v", err)
	}

	jobManager := app.CreateJobManager(
		time.Duration(configs.AutoAssignIntervalSeconds)*time.Second,
		time.Duration(configs.AutoAssignTickTimeoutSeconds)*time.Second,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                     goDotEnvVariable("HTTP_PORT"),
		DBHost:                       goDotEnvVariable("DB_HOST"),
		DBPort:                       goDotEnvVariable("DB_PORT"),
		DBUser:                       goDotEnvVariable("DB_USER"),
		DBPassword:                   goDotEnvVariable("DB_PASSWORD"),
		DBName:                       goDotEnvVariable("DB_NAME"),
		DBSslMode:                    goDotEnvVariable("DB_SSLMODE"),
		AutoAssignIntervalSeconds:    goDotEnvInt("AUTO_ASSIGN_INTERVAL_SECONDS", 30),
		AutoAssignTickTimeoutSeconds: goDotEnvInt("AUTO_ASSIGN_TICK_TIMEOUT_SECONDS", 20),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvInt(key string, fallback int) int {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func mustMigrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&riderrepo.RiderDTO{},
		&rulerepo.RuleDTO{},
		&assignmentrepo.AssignmentDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

// seedDefaultRule stores a permissive default rule on first start so the
// scheduler has a configuration to snapshot before an operator tunes one.
func seedDefaultRule(ctx context.Context, app *cmd.CompositionRoot) error {
	uow := app.UnitOfWorkFactory().Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	_, err := uow.RuleRepository().GetActive(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	criteria, err := rule.NewCriteria(5.0, 3, false, 1.0, 1.0, 1.0)
	if err != nil {
		return err
	}
	defaultRule, err := rule.NewAutoAssignRule(kernel.NewUUID(), "default", criteria)
	if err != nil {
		return err
	}
	defaultRule.Deactivate()

	if err := uow.RuleRepository().Save(ctx, defaultRule); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}

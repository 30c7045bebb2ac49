package main

import (
	"context"
	"html/template"
	"net/http"

	"nfl-rankings-go/config"
	"nfl-rankings-go/database"
	"nfl-rankings-go/handlers"
	"nfl-rankings-go/logging"
	"nfl-rankings-go/middleware"
	"nfl-rankings-go/services"
	"nfl-rankings-go/templates"

	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Failed to load configuration: %v", err)
	}

	logging.Configure(logging.Config{
		Level:       cfg.Logging.Level,
		Prefix:      cfg.Logging.Prefix,
		EnableColor: cfg.Logging.EnableColor,
	})
	cfg.LogConfiguration()

	// Season repository: MongoDB when reachable, in-memory otherwise. The
	// dataset is reloaded from the workbook on every startup either way.
	var seasonRepo services.SeasonRepository
	db, err := database.NewMongoConnection(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		Database: cfg.Database.Database,
		Timeout:  cfg.Database.Timeout,
	})
	if err != nil {
		logging.Warnf("Database connection failed: %v", err)
		logging.Warn("Continuing with in-memory season repository")
		seasonRepo = database.NewMemorySeasonRepository()
	} else {
		defer db.Close()
		seasonRepo = database.NewMongoSeasonRepository(db)
	}

	// Load the season workbook
	ctx := context.Background()
	dataLoader := services.NewDataLoader(services.NewWorkbookLoader(), seasonRepo)
	if err := dataLoader.LoadSeasonData(ctx, cfg.Data.WorkbookPath); err != nil {
		logging.Fatalf("Failed to load season data: %v", err)
	}

	// Parse templates
	pageTemplates, err := template.New("").Funcs(templates.GetTemplateFuncs()).ParseGlob("templates/*.html")
	if err != nil {
		logging.Fatalf("Error parsing templates: %v", err)
	}

	// Ranking views
	rankingService := services.NewRankingService(seasonRepo, cfg.Data.MinYear)
	rankingHandler := handlers.NewRankingHandler(pageTemplates, rankingService)

	// Simulator: a broken team universe disables the simulator view only;
	// the ranking views keep working off the same repository.
	teamService := services.NewTeamService(seasonRepo)
	var bracketService *services.BracketService
	teams, seasonYear, universeErr := teamService.BuildTeamUniverse(ctx)
	if universeErr != nil {
		logging.Errorf("Simulator disabled: %v", universeErr)
	} else {
		bracketService = services.NewBracketService(teams)
	}

	deltaService := services.NewRankDeltaService(services.NewScoringService())
	sessionService := services.NewSessionService(cfg.Session.TTL)
	simulatorHandler := handlers.NewSimulatorHandler(pageTemplates, sessionService,
		bracketService, deltaService, seasonYear, universeErr)

	sessionMiddleware := middleware.NewSessionMiddleware(cfg.Session.JWTSecret, cfg.Session.TTL)

	// Setup routes
	r := mux.NewRouter()
	r.Use(middleware.SecurityMiddleware)

	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("static/"))))

	r.HandleFunc("/", rankingHandler.GetDashboard).Methods("GET")
	r.HandleFunc("/rankings", rankingHandler.GetDashboard).Methods("GET")
	r.HandleFunc("/api/rank-history", rankingHandler.GetRankHistory).Methods("GET")
	r.HandleFunc("/api/winpct-history", rankingHandler.GetWinPctHistory).Methods("GET")

	sim := r.PathPrefix("/simulator").Subrouter()
	sim.Use(sessionMiddleware.EnsureSession)
	sim.HandleFunc("", simulatorHandler.GetSimulator).Methods("GET")
	sim.HandleFunc("/division-winner", simulatorHandler.PostDivisionWinner).Methods("POST")
	sim.HandleFunc("/wildcards", simulatorHandler.PostWildCards).Methods("POST")
	sim.HandleFunc("/round-winners", simulatorHandler.PostRoundWinners).Methods("POST")
	sim.HandleFunc("/conference-champion", simulatorHandler.PostConferenceChampion).Methods("POST")
	sim.HandleFunc("/super-bowl", simulatorHandler.PostSuperBowlChampion).Methods("POST")
	sim.HandleFunc("/reset", simulatorHandler.PostReset).Methods("POST")

	addr := cfg.GetServerAddress()
	logging.Infof("Server starting on %s", addr)
	logging.Fatal(http.ListenAndServe(addr, r))
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/mani1234567sk/backend-dream/internal/auth"
	"github.com/mani1234567sk/backend-dream/internal/config"
	"github.com/mani1234567sk/backend-dream/internal/domain"
	"github.com/mani1234567sk/backend-dream/internal/handlers"
	"github.com/mani1234567sk/backend-dream/internal/repository"
	"github.com/mani1234567sk/backend-dream/internal/service"
	"github.com/mani1234567sk/backend-dream/internal/service/booking"
	"github.com/mani1234567sk/backend-dream/internal/service/ground"
	"github.com/mani1234567sk/backend-dream/internal/service/league"
	"github.com/mani1234567sk/backend-dream/internal/service/match"
	"github.com/mani1234567sk/backend-dream/internal/service/team"
	"github.com/mani1234567sk/backend-dream/internal/service/user"
	"github.com/mani1234567sk/backend-dream/pkg/database"
	"github.com/mani1234567sk/backend-dream/pkg/logger"
	"github.com/mani1234567sk/backend-dream/server"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := defaultConfigPath
	if v, ok := os.LookupEnv("CONFIG_PATH"); ok && v != "" {
		configPath = v
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("failed to load configuration")
	}

	lg := logger.Setup(cfg.App.Environment, cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(ctx, database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, lg)
	if err != nil {
		lg.Fatal().Err(err).Msg("failed to initialize db")
	}
	defer func() {
		if err := db.Close(); err != nil {
			lg.Error().Err(err).Msg("error occurred on closing database connection")
		} else {
			lg.Info().Msg("database connection closed gracefully")
		}
	}()

	if err := database.Migrate(db, cfg.Database.MigrationsPath); err != nil {
		lg.Fatal().Err(err).Msg("migration error")
	}

	dbInstance := database.NewDB(db)
	txManager, err := database.NewTransactionManager(db)
	if err != nil {
		lg.Fatal().Err(err).Msg("error creating transaction manager")
	}

	clock := clockwork.NewRealClock()
	loc := cfg.Location()

	tokens, err := auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL, clock)
	if err != nil {
		lg.Fatal().Err(err).Msg("error creating token manager")
	}

	joinPolicy, err := domain.ParseJoinPolicy(cfg.Leagues.JoinPolicy)
	if err != nil {
		lg.Fatal().Err(err).Msg("invalid league join policy")
	}

	userRepo := repository.NewUserRepository(dbInstance)
	teamRepo := repository.NewTeamRepository(dbInstance)
	leagueRepo := repository.NewLeagueRepository(dbInstance)
	matchRepo := repository.NewMatchRepository(dbInstance)
	groundRepo := repository.NewGroundRepository(dbInstance)
	reviewRepo := repository.NewReviewRepository(dbInstance)
	bookingRepo := repository.NewBookingRepository(dbInstance)
	statsRepo := repository.NewStatsRepository(dbInstance)

	services := &service.Services{
		UserService:    user.NewUserService(userRepo, tokens, cfg.Auth.AdminEmails, lg),
		TeamService:    team.NewTeamService(teamRepo, userRepo, leagueRepo, txManager, lg),
		LeagueService:  league.NewLeagueService(leagueRepo, teamRepo, userRepo, txManager, joinPolicy, clock, loc, lg),
		MatchService:   match.NewMatchService(matchRepo, txManager, clock, loc, lg),
		GroundService:  ground.NewGroundService(groundRepo, reviewRepo, txManager, lg),
		BookingService: booking.NewBookingService(bookingRepo, groundRepo, txManager, clock, loc, lg),
		StatsService:   service.NewStatsService(statsRepo, lg),
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	h := handlers.NewHandler(services, tokens, cfg.CORS.AllowedOrigins, lg)
	srv := server.New(cfg.App.Port, h.InitRoutes())

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		lg.Info().Str("port", cfg.App.Port).Str("environment", cfg.App.Environment).Msg("starting server")
		if err := srv.Run(); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()

		lg.Info().Msg("gracefully shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		lg.Error().Err(err).Msg("server terminated with error")
		return
	}
	lg.Info().Msg("server stopped gracefully")
}

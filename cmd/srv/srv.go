package main

import (
	"net/http"

	"github.com/skinrally/backend/config"
	"github.com/skinrally/backend/internal/client"
	"github.com/skinrally/backend/internal/domain"
	"github.com/skinrally/backend/internal/repository"
	"github.com/skinrally/backend/pkg/logger"
	xredis "github.com/skinrally/backend/pkg/redis"
	"github.com/skinrally/backend/pkg/router"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App

	configs *config.Configs
	logger  logger.Logger

	db          *gorm.DB
	redisClient *redis.Client

	userRepo      repository.UserRepository
	raffleRepo    repository.RaffleRepository
	entryRepo     repository.RaffleEntryRepository
	balanceTxRepo repository.BalanceTransactionRepository

	notifier client.Notifier

	userDomain   domain.UserDomain
	raffleDomain domain.RaffleDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadLogger() {
	s.logger = logger.NewLogger()
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.New(mysql.Config{
		DSN:                       s.configs.Database.ConnectionString(),
		DefaultStringSize:         256,
		DisableDatetimePrecision:  true,
		DontSupportRenameIndex:    true,
		DontSupportRenameColumn:   true,
		SkipInitializeWithVersion: false,
	}), &gorm.Config{})
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRedis() {
	var err error
	s.redisClient, err = xredis.NewClient(s.configs.Redis)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.raffleRepo = repository.NewRaffleRepository()
	s.entryRepo = repository.NewRaffleEntryRepository()
	s.balanceTxRepo = repository.NewBalanceTransactionRepository()
}

func (s *srv) loadDomains() {
	s.notifier = client.NewRedisNotifier(s.redisClient)

	s.userDomain = domain.NewUserDomain(s.userRepo, s.balanceTxRepo)
	s.raffleDomain = domain.NewRaffleDomain(
		s.raffleRepo, s.entryRepo, s.userRepo, s.balanceTxRepo, s.notifier)
}

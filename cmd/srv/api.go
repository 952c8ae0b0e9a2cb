package main

import (
	"fmt"
	"net/http"

	"github.com/skinrally/backend/internal/middleware"
	"github.com/skinrally/backend/pkg/router"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadRedis()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.configs.ApiServer.Port),
		Handler: s.router.Handler(),
	}

	s.logger.Infof("Starting server on port: %s", s.configs.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.Before(middleware.Trace())
	s.router.AddCloser(middleware.Logger())

	// Raffle API
	router.POST(s.router, "/createRaffle", s.raffleDomain.Create)
	router.GET(s.router, "/getRaffle", s.raffleDomain.Get)
	router.GET(s.router, "/getRaffles", s.raffleDomain.GetList)
	router.POST(s.router, "/buyRaffleTickets", s.raffleDomain.BuyTickets)
	router.POST(s.router, "/drawRaffle", s.raffleDomain.Draw)
	router.GET(s.router, "/getMyEntries", s.raffleDomain.GetMyEntries)

	// User API
	router.GET(s.router, "/getUser", s.userDomain.Get)
	router.POST(s.router, "/deposit", s.userDomain.Deposit)
	router.GET(s.router, "/getBalanceTransactions", s.userDomain.GetBalanceTransactions)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/catalogworks/go-catalog-server/catalog"
	"github.com/catalogworks/go-catalog-server/identity"
	"github.com/catalogworks/go-catalog-server/internal/config"
	"github.com/catalogworks/go-catalog-server/server"
	"github.com/catalogworks/go-catalog-server/sessions"
	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	_ = godotenv.Load()

	c := config.New()
	displayAppname(c.GetAppName())

	handler, err := buildServer(c)
	if err != nil {
		return err
	}

	server := &http.Server{Addr: c.GetPort(), Handler: handler}
	go listenAndServe(server)
	waitForStopSignal()
	returnError = shutdown(server)
	return returnError
}

func buildServer(c config.Config) (*server.Server, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.GetProviderTimeout())
	defer cancel()

	provider, err := identity.NewProvider(ctx, identity.ProviderConfig{
		Issuer:       c.GetIssuer(),
		ClientID:     c.GetClientID(),
		ClientSecret: c.GetClientSecret(),
		RedirectURL:  c.GetRedirectURL(),
		TokenInfoURL: c.GetTokenInfoURL(),
		UserInfoURL:  c.GetUserInfoURL(),
		RevokeURL:    c.GetRevokeURL(),
		Timeout:      c.GetProviderTimeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("identity.NewProvider: %w", err)
	}

	identityService, err := identity.NewService(provider, sessions.NewInMemoryRepo())
	if err != nil {
		return nil, fmt.Errorf("identity.NewService: %w", err)
	}

	return server.New(c, identityService, catalog.NewInMemoryRepo())
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/formlab/questionnaire/internal/app"
)

func main() {
	a, err := app.NewApp(os.Getenv("CONFIG_PATH"))
	if err != nil {
		panic(err)
	}

	go func() {
		if err := a.ListenAndServeHTTP(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger := a.Logger()
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Shutdown(ctx); err != nil {
		logger := a.Logger()
		logger.Error().Err(err).Msg("shutdown failed")
	}
}

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adminconsole/internal/config"
	internalhttp "adminconsole/internal/http"
	"adminconsole/internal/seed"
)

func main() {
	runSeed := flag.Bool("seed", false, "create the schema and default data, then exit")
	flag.Parse()

	env := config.LoadEnv()
	db := config.ConnectDB(env.DBDSN)
	defer config.CloseDB()

	if *runSeed {
		if err := seed.Run(db); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
		return
	}

	srv := &http.Server{
		Addr:         env.AppAddr,
		Handler:      internalhttp.NewRouter(env),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
	log.Println("server stopped")
}

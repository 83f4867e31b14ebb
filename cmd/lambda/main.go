package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/statutecheck/statutecheck/internal/app"
	"github.com/statutecheck/statutecheck/internal/config"
	"github.com/statutecheck/statutecheck/internal/constraint"
	"github.com/statutecheck/statutecheck/internal/transport/lambdatransport"
	"github.com/statutecheck/statutecheck/internal/verify"
	"github.com/statutecheck/statutecheck/internal/verify/cache"
)

func main() {
	cfg := config.Load()

	obs := verify.NewAsyncCheckObserver(verify.NewCheckLatencyLogger(log.Default()), cfg.ObsBuffer)
	defer obs.Close()

	verifier := verify.New(
		verify.WithBackendFactory(func() constraint.Backend {
			b := constraint.NewIntervalBackend()
			b.Timeout = cfg.SolverTimeout
			return b
		}),
		verify.WithWorkers(cfg.VerifyWorkers),
		verify.WithBudget(cfg.VerifyMaxChecks, cfg.VerifyTimeout),
		verify.WithCheckObserver(obs),
	)
	c := cache.NewInMemory(cfg.CacheMaxItems)

	svc := app.NewService(verifier, c)
	h := lambdatransport.NewHandler(svc)

	lambda.Start(h.Verify)
}

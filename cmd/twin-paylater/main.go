// twin-paylater simulates a "pay-in-3" BNPL provider API: eligibility
// checks, agreement creation with a fixed three-instalment schedule, and
// dev tooling to simulate instalment outcomes (fail, retry, manual update)
// with a full activity log.
//
// All state is in memory, loaded from a seed fixture (JSON or YAML) or the
// built-in defaults, and restorable via POST /api/paylater/dev/reset or the
// /admin control plane.
package main

import (
	"log"

	"github.com/wondertwin-ai/twin-paylater/internal/api"
	"github.com/wondertwin-ai/twin-paylater/internal/paylater"
	"github.com/wondertwin-ai/twin-paylater/internal/store"
	plwebhook "github.com/wondertwin-ai/twin-paylater/internal/webhook"
	"github.com/wondertwin-ai/twin-paylater/pkg/admin"
	"github.com/wondertwin-ai/twin-paylater/pkg/twincore"
	pkgwebhook "github.com/wondertwin-ai/twin-paylater/pkg/webhook"
)

func main() {
	cfg, err := twincore.ParseFlags("twin-paylater")
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 12117
	}
	if cfg.WebhookSecret == "" {
		cfg.WebhookSecret = "whsec_paylater_dev"
	}

	twin := twincore.New(cfg)

	seed := store.DefaultSeed()
	if cfg.SeedFile != "" {
		seed, err = store.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			log.Fatalf("failed to load seed data: %v", err)
		}
		twin.Logger.Info("loaded seed data", "file", cfg.SeedFile)
	}
	memStore := store.New(seed)

	dispatcher := pkgwebhook.NewDispatcher(pkgwebhook.Config{
		URL:         cfg.WebhookURL,
		Secret:      cfg.WebhookSecret,
		Signer:      plwebhook.NewSigner(),
		Logger:      twin.Logger,
		AutoDeliver: cfg.WebhookURL != "",
	})

	svc := paylater.New(memStore)
	svc.SetNotifier(dispatcherNotifier{dispatcher})

	apiHandler := api.NewHandler(svc, twin.Middleware())
	apiHandler.Routes(twin.Router)

	adminHandler := admin.NewHandler(memStore, twin.Middleware(), memStore.Clock)
	adminHandler.SetFlusher(dispatcher)
	adminHandler.Routes(twin.Router)

	twin.Logger.Info("twin-paylater ready",
		"port", cfg.Port,
		"users", memStore.Users.Count(),
		"carts", memStore.Carts.Count(),
		"scenarios", memStore.Scenarios.Count(),
		"webhook_url", cfg.WebhookURL,
	)

	if err := twin.Serve(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// dispatcherNotifier adapts the webhook dispatcher to paylater.Notifier.
type dispatcherNotifier struct {
	d *pkgwebhook.Dispatcher
}

func (n dispatcherNotifier) Emit(eventType string, payload map[string]any) {
	n.d.Enqueue(eventType, payload)
}

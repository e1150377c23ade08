// cmd/taskpanel/main.go
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/taskpanel/taskpanel/internal/apiclient"
	"github.com/taskpanel/taskpanel/internal/config"
	"github.com/taskpanel/taskpanel/internal/dashboard"
	"github.com/taskpanel/taskpanel/internal/logger"
	"github.com/taskpanel/taskpanel/internal/session"
	"github.com/taskpanel/taskpanel/internal/tui"
)

func main() {
	// Load configuration (environment, optionally .env)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logging.Development); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	// Token storage doubles as the client's token source.
	tokens := session.NewFileTokenStore(cfg.Storage.TokenFile)

	api := apiclient.New(cfg.API.BaseURL,
		apiclient.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		apiclient.WithTokenSource(tokens),
	)

	sess := session.New(api, tokens)

	// The TUI asks for confirmation in its own modal before invoking
	// Delete, so the controller's gate always passes here.
	ctrl := dashboard.New(api, dashboard.ConfirmFunc(func(string) bool { return true }))
	ctrl.Bind(sess)

	// Rebuild the session from a durable token, if any.
	sess.Restore(context.Background())

	if err := tui.Run(sess, ctrl, api); err != nil {
		logger.Error("ui terminated", err)
		log.Fatalf("taskpanel: %v", err)
	}
}

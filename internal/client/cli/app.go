package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"healthdesk/internal/client/api"
	"healthdesk/internal/client/config"
	"healthdesk/internal/client/keystore"
	"healthdesk/internal/client/services"
	"healthdesk/internal/client/session"
	"healthdesk/internal/logging"
)

// App wires the session store, the request gateway and the application
// services behind the REPL.
type App struct {
	config    *config.Config
	log       logging.Logger
	db        *sql.DB
	session   *session.Store
	auth      services.AuthService
	clients   services.ClientService
	programs  services.ProgramService
	dashboard services.DashboardService
	reader    *bufio.Reader
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := keystore.Open(ctx, c.StorePath)
	if err != nil {
		log.Error(ctx, "error initializing local store", "err", err)
		return nil, err
	}

	store := session.NewStore(db, log)

	gateway := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, api.WithTokenSource(store))
	// An authorization failure anywhere tears the session down; the REPL
	// notices on its next prompt and falls back to the login commands.
	gateway.SetAuthFailureHandler(func() {
		_ = store.EndSession(context.Background())
		fmt.Println("Session expired, please log in again.")
	})
	store.SetOnEnd(func() {
		log.Debug(context.Background(), "session ended")
	})

	return &App{
		config:    c,
		log:       log,
		db:        db,
		session:   store,
		auth:      services.NewAuthService(gateway, store),
		clients:   services.NewClientService(gateway),
		programs:  services.NewProgramService(gateway),
		dashboard: services.NewDashboardService(gateway),
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

// Run rehydrates the session and starts the REPL. Initialization must finish
// before any protected command is reachable.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.session.Initialize(ctx); err != nil {
		a.log.Error(ctx, "session initialization failed", "err", err)
		return err
	}

	fmt.Println("HealthDesk CLI (type 'help' for commands)")
	if user, ok := a.session.Current(); ok {
		fmt.Printf("Welcome back, %s!\n", user.Username)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
	return nil
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// status renders the prompt suffix, e.g. "(alice)".
func (a *App) status() string {
	if user, ok := a.session.Current(); ok {
		return fmt.Sprintf("(%s)", user.Username)
	}
	return ""
}

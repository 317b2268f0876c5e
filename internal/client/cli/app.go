package cli

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/userboarding/internal/client/client"
	"github.com/dmitrijs2005/userboarding/internal/client/config"
	"github.com/dmitrijs2005/userboarding/internal/client/services"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const statusCheckInterval = 5 * time.Second

type App struct {
	config      *config.Config
	authService services.AuthService
	email       string
	mu          sync.RWMutex
	mode        Mode
	reader      *bufio.Reader
	out         io.Writer
	now         func() time.Time
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, c.SessionDSN)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		db.Close()
		return nil, err
	}

	as := services.NewAuthService(apiClient, db)

	return &App{
		config:      c,
		authService: as,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		now:         time.Now,
	}, nil
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

// Run restores a previously stored session, starts the status watcher and
// blocks in the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)

	if info, err := a.authService.Session(ctx); err == nil {
		a.email = info.Email
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(ctx, statusCheckInterval)

	printlnFn("Welcome to userboarding CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.email != ""
}

func (a *App) getStatus() string {
	s := a.email
	if m := a.Mode(); m != "" {
		if s != "" {
			s += " "
		}
		s += string(m)
	}
	if s == "" {
		return ""
	}
	return "(" + s + ")"
}

// StartOnlineStatusWatcher pings the server every interval and flips Mode
// accordingly. It returns when ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.authService.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

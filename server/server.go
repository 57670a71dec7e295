// Package server runs the http server that exposes the game, chat, and user apis.
package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/zlitery/wordgrid/db/chat"
	gamedb "github.com/zlitery/wordgrid/db/game"
	"github.com/zlitery/wordgrid/db/ranking"
	"github.com/zlitery/wordgrid/db/user"
	"github.com/zlitery/wordgrid/game"
	"github.com/zlitery/wordgrid/server/certificate"
	serverchat "github.com/zlitery/wordgrid/server/chat"
	servergame "github.com/zlitery/wordgrid/server/game"
)

type (
	// Server runs the site.
	Server struct {
		log         *log.Logger
		tokenizer   Tokenizer
		userDao     UserDao
		games       GameRegistry
		chat        ChatHub
		upgrader    serverchat.Upgrader
		socketCfg   serverchat.Config
		rankings    RankingReader
		history     HistoryReader
		httpServer  *http.Server
		httpsServer *http.Server
		Config
	}

	// Config contains fields which describe the server.
	Config struct {
		// HTTPPort is the TCP port for http requests.  All traffic is redirected to the https port.
		HTTPPort int
		// HTTPSPort is the TCP port for https requests.
		HTTPSPort int
		// StopDur is how long the server may take to shut down.
		StopDur time.Duration
		// Challenge is the ACME HTTP-01 challenge used to get a certificate.
		Challenge certificate.Challenge
		// TLSCertFile is the public HTTPS certificate file.
		TLSCertFile string
		// TLSKeyFile is the private HTTPS key file.
		TLSKeyFile string
		// NoTLSRedirect disables redirection to https from http when true.
		NoTLSRedirect bool
	}

	// Handlers groups the dependencies the server's endpoints are built on.
	Handlers struct {
		// Tokenizer issues and checks bearer tokens.
		Tokenizer Tokenizer
		// UserDao creates and authenticates users.
		UserDao UserDao
		// Games routes game commands.
		Games GameRegistry
		// Chat broadcasts game chat.
		Chat ChatHub
		// Upgrader turns http requests into websocket connections.
		Upgrader serverchat.Upgrader
		// SocketConfig configures the chat sockets of upgraded connections.
		SocketConfig serverchat.Config
		// Rankings reads player standings.
		Rankings RankingReader
		// History reads players' finished games.
		History HistoryReader
	}

	// Tokenizer creates and reads tokens from http traffic.
	Tokenizer interface {
		Create(userID int64, username string) (string, error)
		Read(tokenString string) (userID int64, username string, err error)
	}

	// UserDao creates and authenticates users.
	UserDao interface {
		Create(ctx context.Context, username, email, password string) (*user.User, error)
		Login(ctx context.Context, username, password string) (*user.User, error)
	}

	// GameRegistry runs the game commands of the api.
	GameRegistry interface {
		Create(ctx context.Context, creator game.User, language string) (*game.Info, error)
		List(ctx context.Context) ([]game.Info, error)
		Get(ctx context.Context, id game.ID, viewerID int64) (*game.Info, error)
		Join(ctx context.Context, id game.ID, u game.User) (*game.Info, error)
		Start(ctx context.Context, id game.ID, userID int64) (*game.Info, error)
		End(ctx context.Context, id game.ID, userID int64) (*game.Info, error)
		Move(ctx context.Context, id game.ID, userID int64, input servergame.MoveInput) (*game.Info, *game.Move, error)
		Moves(ctx context.Context, id game.ID) ([]game.Move, error)
	}

	// ChatHub persists and broadcasts game chat.
	ChatHub interface {
		Attach(gameID game.ID, s serverchat.Subscriber)
		Detach(gameID game.ID, s serverchat.Subscriber)
		Publish(ctx context.Context, m chat.Message) (*chat.Message, error)
		History(ctx context.Context, gameID game.ID) ([]chat.Message, error)
	}

	// RankingReader reads player standings.
	RankingReader interface {
		Top(ctx context.Context, n int) ([]ranking.Row, error)
		Read(ctx context.Context, userID int64) (*ranking.Row, error)
	}

	// HistoryReader reads a player's finished games.
	HistoryReader interface {
		History(ctx context.Context, userID int64) ([]gamedb.HistoryEntry, error)
	}
)

// NewServer creates a Server from the config and handler dependencies.
func (cfg Config) NewServer(log *log.Logger, h Handlers) (*Server, error) {
	if err := cfg.validate(log, h); err != nil {
		return nil, fmt.Errorf("creating server: validation: %w", err)
	}
	httpAddr := fmt.Sprintf(":%d", cfg.HTTPPort)
	if cfg.HTTPPort <= 0 {
		httpAddr = ""
	}
	httpsAddr := fmt.Sprintf(":%d", cfg.HTTPSPort)
	httpServeMux := new(http.ServeMux)
	httpServer := &http.Server{
		Addr:    httpAddr,
		Handler: httpServeMux,
	}
	httpsServeMux := new(http.ServeMux)
	httpsServer := &http.Server{
		Addr:    httpsAddr,
		Handler: httpsServeMux,
	}
	s := Server{
		log:         log,
		tokenizer:   h.Tokenizer,
		userDao:     h.UserDao,
		games:       h.Games,
		chat:        h.Chat,
		upgrader:    h.Upgrader,
		socketCfg:   h.SocketConfig,
		rankings:    h.Rankings,
		history:     h.History,
		httpServer:  httpServer,
		httpsServer: httpsServer,
		Config:      cfg,
	}
	httpServeMux.HandleFunc("/", s.handleHTTP)
	httpsServeMux.HandleFunc("/", s.handleHTTPS)
	return &s, nil
}

// validate ensures the configuration has no errors.
func (cfg Config) validate(log *log.Logger, h Handlers) error {
	switch {
	case log == nil:
		return fmt.Errorf("log required")
	case h.Tokenizer == nil:
		return fmt.Errorf("tokenizer required")
	case h.UserDao == nil:
		return fmt.Errorf("user dao required")
	case h.Games == nil:
		return fmt.Errorf("game registry required")
	case h.Chat == nil:
		return fmt.Errorf("chat hub required")
	case h.Upgrader == nil:
		return fmt.Errorf("websocket upgrader required")
	case h.Rankings == nil:
		return fmt.Errorf("ranking reader required")
	case h.History == nil:
		return fmt.Errorf("history reader required")
	case cfg.HTTPSPort <= 0:
		return fmt.Errorf("invalid https port: %v", cfg.HTTPSPort)
	case cfg.StopDur <= 0:
		return fmt.Errorf("stop timeout duration required")
	}
	return nil
}

// Run the server asynchronously until it receives a shutdown signal.
// When the HTTP/HTTPS servers stop, errors are logged to the error channel.
func (s *Server) Run() <-chan error {
	errC := make(chan error, 2)
	if s.validHTTPAddr() {
		go func() {
			errC <- s.httpServer.ListenAndServe()
		}()
	}
	s.log.Printf("starting https server at https://127.0.0.1%v", s.httpsServer.Addr)
	go func() {
		switch {
		case s.validHTTPAddr():
			if _, err := tls.LoadX509KeyPair(s.TLSCertFile, s.TLSKeyFile); err != nil {
				errC <- fmt.Errorf("loading tls certificate: %v", err)
				return
			}
			errC <- s.httpsServer.ListenAndServeTLS(s.TLSCertFile, s.TLSKeyFile)
		default:
			if len(s.TLSCertFile) != 0 || len(s.TLSKeyFile) != 0 {
				s.log.Printf("ignoring TLS_CERT_FILE/TLS_KEY_FILE variables since HTTP_PORT was not specified")
			}
			errC <- s.httpsServer.ListenAndServe()
		}
	}()
	return errC
}

// Stop asks the server to shutdown and waits for the shutdown to complete.
// An error is returned if the context times out.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancelFunc := context.WithTimeout(ctx, s.StopDur)
	defer cancelFunc()
	httpsShutdownErr := s.httpsServer.Shutdown(ctx)
	httpShutdownErr := s.httpServer.Shutdown(ctx)
	switch {
	case httpsShutdownErr != nil:
		return httpsShutdownErr
	case httpShutdownErr != nil:
		return httpShutdownErr
	}
	return nil
}

// handleHTTP serves acme challenges and redirects other traffic to https.
func (s *Server) handleHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case s.Challenge.IsFor(r.URL.Path):
		if err := s.Challenge.Handle(w, r.URL.Path); err != nil {
			s.log.Printf("serving acme challenge: %v", err)
			s.httpError(w, http.StatusInternalServerError)
		}
	default:
		s.redirectToHTTPS(w, r)
	}
}

// handleHTTPS serves the api endpoints.
func (s *Server) handleHTTPS(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.TLS == nil && !s.NoTLSRedirect && s.validHTTPAddr():
		s.handleHTTP(w, r)
	default:
		s.handleAPI(w, r)
	}
}

// validHTTPAddr determines if the HTTP address is valid.
// If it is, the HTTP server is started to redirect to HTTPS and serve certificate challenges.
func (s *Server) validHTTPAddr() bool {
	return len(s.httpServer.Addr) > 0
}

// redirectToHTTPS redirects the request to https.
func (s *Server) redirectToHTTPS(w http.ResponseWriter, r *http.Request) {
	host := r.Host
	if strings.Contains(host, ":") {
		var err error
		host, _, err = net.SplitHostPort(host)
		if err != nil {
			s.handleError(w, fmt.Errorf("redirecting to https: %w", err))
			return
		}
	}
	if s.httpsServer.Addr != ":443" {
		host += s.httpsServer.Addr
	}
	httpsURI := "https://" + host + r.URL.Path
	http.Redirect(w, r, httpsURI, http.StatusTemporaryRedirect)
}

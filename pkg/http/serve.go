package xhttp

import (
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/maggiehq/ledger/pkg/logger"
	"github.com/valyala/fasthttp"
)

const (
	StatusOK                  = http.StatusOK
	StatusCreated             = http.StatusCreated
	StatusBadRequest          = http.StatusBadRequest
	StatusUnauthorized        = http.StatusUnauthorized
	StatusNotFound            = http.StatusNotFound
	StatusConflict            = http.StatusConflict
	StatusRequestTimeout      = http.StatusRequestTimeout
	StatusInternalServerError = http.StatusInternalServerError
)

func StatusText(code int) string { return http.StatusText(code) }

type Server = fasthttp.Server

type ServerOption struct {
	// IdleTimeout bounds how long a keep-alive connection may sit unused
	// before the server reclaims it.
	IdleTimeout time.Duration

	// MaxRequestBodySize caps uploads; receipt images go through here.
	MaxRequestBodySize int

	ReadBufferSize  int
	WriteBufferSize int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	Concurrency     int
	Name            string
}

var DefaultServerOption = ServerOption{
	IdleTimeout:        time.Second * 10,
	MaxRequestBodySize: 8 * 1024 * 1024, // receipts are small images
	ReadBufferSize:     1024 * 8,
	WriteBufferSize:    1024 * 8,
	ReadTimeout:        time.Millisecond * 2500,
	WriteTimeout:       time.Millisecond * 2500,
	Concurrency:        30_000,
}

type Engine struct {
	*Router
	*Server
	option ServerOption
	middle []MiddlewareFunc
}

func NewServer(option ServerOption) *Engine {
	return &Engine{
		Server: &fasthttp.Server{
			IdleTimeout:           option.IdleTimeout,
			MaxRequestBodySize:    option.MaxRequestBodySize,
			ReadBufferSize:        option.ReadBufferSize,
			WriteBufferSize:       option.WriteBufferSize,
			ReadTimeout:           option.ReadTimeout,
			WriteTimeout:          option.WriteTimeout,
			Concurrency:           option.Concurrency,
			Name:                  option.Name,
			NoDefaultServerHeader: true,
			NoDefaultContentType:  true,
			CloseOnShutdown:       true,
			Logger:                logger.GetLogger(),
		},
		Router: CreateDefaultRouter(),
		option: option,
	}
}

func CreateServer() *Engine {
	return NewServer(DefaultServerOption)
}

func (e *Engine) ListenAndServe(addr string) error {
	if err := e.DoRouting(); err != nil {
		return err
	}
	e.Server.Logger.Printf("[xhttp] server is listening on %s", addr)
	return e.Server.ListenAndServe(addr)
}

func (e *Engine) DoRouting() error {
	for method, route := range e.Router.List() {
		for _, r := range route {
			e.Server.Logger.Printf("[xhttp] method: %s, path: %s", method, r)
		}
	}
	e.Server.Handler = e.Router.Handler
	// reverse so the first registered middleware runs outermost
	slices.Reverse(e.middle)
	for _, m := range e.middle {
		e.Server.Handler = m(e.Server.Handler)
	}
	return nil
}

// Use adds middleware to the chain which is run for every request.
func (e *Engine) Use(middleware MiddlewareFunc) {
	e.middle = append(e.middle, middleware)
}

func (e *Engine) CloseOnSignal() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig
		e.Shutdown()
	}()
}

// Shutdown gracefully shuts down the server without interrupting any
// active connections.
func (e *Engine) Shutdown() {
	e.Server.Logger.Printf("[xhttp] server is shutting down, process id: %d", os.Getpid())
	if err := e.Server.Shutdown(); err != nil {
		e.Server.Logger.Printf("[xhttp] error while shutting down: %v", err)
	}
}

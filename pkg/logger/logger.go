package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config define destino, formato y nivel de los logs.
type Config struct {
	Env     string    // "development" escribe en consola con colores; cualquier otro valor, una línea JSON
	Level   string    // nivel zerolog (debug, info, warn, error); vacío o inválido = info
	Service string    // opcional; se agrega como campo service en cada línea
	Output  io.Writer // nil = os.Stdout
}

// Logger envuelve un zerolog.Logger para pasarlo por constructor a use cases y adaptadores.
type Logger struct {
	zl zerolog.Logger
}

// New arma el logger de la aplicación y lo deja también como logger global de zerolog.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	ctx := zerolog.New(out).Level(levelFrom(cfg.Level)).With().Timestamp()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	zl := ctx.Logger()
	log.Logger = zl
	return &Logger{zl: zl}
}

// Nop descarta todo; lo usan los constructores cuando reciben nil.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func levelFrom(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }

// Fatal escribe y termina el proceso con os.Exit(1).
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// Named deriva un logger con el campo component (http, checkout, tx, storectl).
func (l *Logger) Named(component string) *Logger {
	return &Logger{zl: l.zl.With().Str("component", component).Logger()}
}

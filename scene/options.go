package scene

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Fetcher loads external resources (referenced documents,
// color profiles). It returns false when the resource is not available.
type Fetcher func(identifier string) ([]byte, bool)

// NopFetcher treats all external resources as absent.
func NopFetcher(string) ([]byte, bool) { return nil, false }

// DirFetcher returns a Fetcher reading files relative to `dir`.
// Identifiers escaping `dir` are rejected.
func DirFetcher(dir string) Fetcher {
	return func(identifier string) ([]byte, bool) {
		if strings.Contains(identifier, "://") {
			return nil, false
		}
		name := filepath.Join(dir, filepath.FromSlash(identifier))
		rel, err := filepath.Rel(dir, name)
		if err != nil || strings.HasPrefix(rel, "..") {
			return nil, false
		}
		b, err := os.ReadFile(name)
		if err != nil {
			return nil, false
		}
		return b, true
	}
}

// Parser builds an element tree from the content of
// an external document.
type Parser func(data []byte) (Element, error)

// Option configures a build.
type Option func(*config)

type config struct {
	viewport        Bounds
	ppi             float64
	fetch           Fetcher
	parse           Parser
	logger          *slog.Logger
	errorMode       ErrorMode
	maxPatternDepth int
	maxTileSize     int
}

const (
	// OutputPPI is the resolution of the output space:
	// absolute transforms map to points.
	OutputPPI = 72

	defaultMaxPatternDepth = 8
	defaultMaxTileSize     = 4096
)

func defaultConfig() config {
	return config{
		viewport:        Bounds{W: 600, H: 400},
		ppi:             OutputPPI,
		fetch:           NopFetcher,
		errorMode:       IgnoreErrorMode,
		maxPatternDepth: defaultMaxPatternDepth,
		maxTileSize:     defaultMaxTileSize,
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = Logger()
	}
	if cfg.fetch == nil {
		cfg.fetch = NopFetcher
	}
	if cfg.ppi <= 0 {
		cfg.ppi = OutputPPI
	}
	return cfg
}

// WithResolution sets the root viewport, expressed in pixels
// at the resolution `ppi` (pixels per inch).
func WithResolution(viewport Bounds, ppi float64) Option {
	return func(c *config) {
		c.viewport, c.ppi = viewport, ppi
	}
}

// WithFetcher sets the collaborator used to load external resources.
func WithFetcher(f Fetcher) Option {
	return func(c *config) { c.fetch = f }
}

// WithParser sets the function used to read external documents,
// referenced by IRIs like "other.svg#id".
// Without parser, such references are unresolved.
func WithParser(p Parser) Option {
	return func(c *config) { c.parse = p }
}

// WithLogger sets the logger used by one build.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithErrorMode sets how diagnostics are reported.
func WithErrorMode(mode ErrorMode) Option {
	return func(c *config) { c.errorMode = mode }
}

// WithMaxPatternDepth bounds the nesting of patterns used
// inside pattern content.
func WithMaxPatternDepth(depth int) Option {
	return func(c *config) { c.maxPatternDepth = depth }
}

// WithMaxTileSize bounds the pixel size of the pattern tiles.
func WithMaxTileSize(size int) Option {
	return func(c *config) { c.maxTileSize = size }
}

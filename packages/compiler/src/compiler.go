package compiler

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ngc-metadata/packages/compiler/src/config"
	"ngc-metadata/packages/compiler/src/css"
	"ngc-metadata/packages/compiler/src/logging"
	"ngc-metadata/packages/compiler/src/manifest"
	"ngc-metadata/packages/compiler/src/metadata"
	"ngc-metadata/packages/compiler/src/summary"
)

// Compiler turns directive manifests into normalized metadata and stores their summaries
type Compiler struct {
	config *config.CompilerConfig
	logger *zap.Logger
	store  *summary.Store
	hosts  *HostResolver
}

// Result holds what one Compile call produced, in manifest order
type Result struct {
	Directives []*metadata.CompileDirectiveMetadata
	// Hosts are the host wrappers of the components that declare a selector
	Hosts     []*metadata.CompileDirectiveMetadata
	// Summaries lists each written summary key once
	Summaries []summary.Key
	// Warnings describe problems that did not stop compilation
	Warnings []string
}

// Matcher indexes the compiled directives by selector
func (r *Result) Matcher() (*metadata.DirectiveMatcher, error) {
	return metadata.NewDirectiveMatcher(r.Directives)
}

// NewCompiler creates a new compiler instance
func NewCompiler(cfg *config.CompilerConfig, logger *zap.Logger) (*Compiler, error) {
	if cfg == nil {
		cfg = config.NewCompilerConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger = logging.OrNop(logger)

	store, err := summary.Open(cfg.Summary.Dir, cfg.SummaryFormat(), logger.Named("summary"))
	if err != nil {
		return nil, err
	}
	hosts, err := NewHostResolver(cfg.HostCacheSize)
	if err != nil {
		return nil, err
	}
	return &Compiler{config: cfg, logger: logger, store: store, hosts: hosts}, nil
}

// Store returns the summary store the compiler writes to
func (c *Compiler) Store() *summary.Store { return c.store }

// Hosts returns the compiler's host descriptor cache
func (c *Compiler) Hosts() *HostResolver { return c.hosts }

type entry struct {
	path      string
	directive manifest.Directive
}

type compiled struct {
	directive *metadata.CompileDirectiveMetadata
	host      *metadata.CompileDirectiveMetadata
	keys      []summary.Key
	warnings  []string
}

// Compile loads every manifest, normalizes its directives concurrently and writes their summaries.
// The first failure cancels the remaining work.
func (c *Compiler) Compile(ctx context.Context, paths []string) (*Result, error) {
	var entries []entry
	for _, path := range paths {
		file, err := manifest.Load(path)
		if err != nil {
			return nil, err
		}
		c.logger.Debug("manifest loaded", zap.String("path", path), zap.Int("directives", len(file.Directives)))
		for _, d := range file.Directives {
			entries = append(entries, entry{path: path, directive: d})
		}
	}

	result := &Result{}
	if len(entries) == 0 {
		c.logger.Info("nothing to compile", zap.Int("manifests", len(paths)))
		return result, nil
	}

	jobs := c.config.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// each goroutine owns its own slot
	results := make([]compiled, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(entries)))

	for i, e := range entries {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			out, err := c.compileEntry(e)
			if err != nil {
				return fmt.Errorf("%s: %w", e.path, err)
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	written := make(map[summary.Key]bool)
	for _, r := range results {
		result.Directives = append(result.Directives, r.directive)
		if r.host != nil {
			result.Hosts = append(result.Hosts, r.host)
		}
		result.Warnings = append(result.Warnings, r.warnings...)
		for _, key := range r.keys {
			if written[key] {
				result.Warnings = append(result.Warnings, fmt.Sprintf("summary %s is written by more than one directive, only one of them is kept", key))
				c.logger.Warn("summary key collision", zap.Stringer("key", key))
				continue
			}
			written[key] = true
			result.Summaries = append(result.Summaries, key)
		}
	}
	c.logger.Info("compilation finished",
		zap.Int("manifests", len(paths)),
		zap.Int("directives", len(result.Directives)),
		zap.Int("hosts", len(result.Hosts)),
		zap.String("summaries", c.store.Dir()),
	)
	return result, nil
}

func (c *Compiler) compileEntry(e entry) (compiled, error) {
	cfg, err := e.directive.ToConfig()
	if err != nil {
		return compiled{}, err
	}
	d := metadata.CreateDirectiveMetadata(cfg)
	out := compiled{directive: d}

	if tmpl := d.Template(); tmpl != nil {
		for _, url := range tmpl.StyleURLs() {
			if !css.IsStyleURLResolvable(url) {
				out.warnings = append(out.warnings, fmt.Sprintf("%s: directive %s: style url %q cannot be resolved", e.path, e.directive.Name, url))
				c.logger.Warn("unresolvable style url", zap.String("directive", e.directive.Name), zap.String("url", url))
			}
		}
	}

	if selector := d.Selector(); d.IsComponent() && selector != nil && *selector != "" {
		host, err := c.hosts.Resolve(d.Type(), *selector)
		if err != nil {
			return compiled{}, fmt.Errorf("directive %s: host: %w", e.directive.Name, err)
		}
		out.host = host
	}

	for _, desc := range []*metadata.CompileDirectiveMetadata{out.directive, out.host} {
		if desc == nil {
			continue
		}
		key, err := c.store.Put(desc)
		if err != nil {
			return compiled{}, err
		}
		out.keys = append(out.keys, key)
	}
	c.logger.Debug("directive compiled",
		zap.String("manifest", e.path),
		zap.String("name", e.directive.Name),
		zap.Bool("host", out.host != nil),
	)
	return out, nil
}

package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kubiosec-ai/toolscan/internal/config"
	"github.com/kubiosec-ai/toolscan/internal/mcp"
	"github.com/kubiosec-ai/toolscan/internal/telemetry"
)

// DefaultTimeout bounds the spawn+handshake+list sequence per server.
const DefaultTimeout = 30 * time.Second

// ErrServerNotFound is returned when a --server filter names a server
// that is not present in the configuration.
var ErrServerNotFound = errors.New("server not found in configuration")

// Options configures an Orchestrator.
type Options struct {
	// Timeout is the per-server extraction deadline. Zero means
	// DefaultTimeout.
	Timeout time.Duration
	// Concurrency caps the number of servers processed at once.
	// Zero or negative means unbounded.
	Concurrency int
	// DryRun skips all subprocess I/O and yields empty-tool results.
	DryRun bool
	// Logger receives per-server progress and failure detail. Nil
	// means slog.Default().
	Logger *slog.Logger
}

// Orchestrator fans out one extraction task per configured server and
// joins them at a single barrier. One server's failure never aborts
// the others.
type Orchestrator struct {
	lister      mcp.ToolLister
	timeout     time.Duration
	concurrency int
	dryRun      bool
	log         *slog.Logger
}

// NewOrchestrator creates an orchestrator that extracts tools via lister.
func NewOrchestrator(lister mcp.ToolLister, opts Options) *Orchestrator {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Orchestrator{
		lister:      lister,
		timeout:     opts.Timeout,
		concurrency: opts.Concurrency,
		dryRun:      opts.DryRun,
		log:         opts.Logger,
	}
}

// Run extracts tools from every configured server concurrently and
// assembles the run report. If only is non-empty, the run is restricted
// to that single server; an unknown name fails the whole run before any
// task starts. The servers sequence in the report always follows
// sorted configuration order regardless of task completion order.
func (o *Orchestrator) Run(ctx context.Context, cfg *config.Config, only string) (*Report, error) {
	names := cfg.ServerNames()
	if only != "" {
		if _, ok := cfg.MCPServers[only]; !ok {
			return nil, fmt.Errorf("server %q: %w", only, ErrServerNotFound)
		}
		names = []string{only}
	}

	log := telemetry.RunLogger(o.log, ctx)
	log.Info("starting scan", "servers", len(names), "dry_run", o.dryRun)

	start := time.Now()
	results := make([]ServerResult, len(names))

	g := new(errgroup.Group)
	if o.concurrency > 0 {
		g.SetLimit(o.concurrency)
	}
	for i, name := range names {
		g.Go(func() error {
			results[i] = o.extractOne(ctx, name, cfg.MCPServers[name], log)
			return nil
		})
	}
	_ = g.Wait()

	report := AssembleReport(telemetry.RunID(ctx), results, start, time.Since(start))
	log.Info("scan complete",
		"servers_processed", report.Metadata.ServersProcessed,
		"servers_successful", report.Metadata.ServersSuccessful,
		"seconds", report.Metadata.ProcessingTimeSeconds)
	return report, nil
}

// extractOne produces the always-present result for a single server.
// Every failure mode is absorbed here: connect errors and timeouts are
// classified, and a panicking lister is recovered into an internal_error
// result rather than dropping the server from the report.
func (o *Orchestrator) extractOne(ctx context.Context, name string, sc config.ServerConfig, log *slog.Logger) (result ServerResult) {
	log = log.With(slog.String("server", name))

	result = ServerResult{
		ServerName: name,
		Command:    sc.Command,
		Args:       emptyIfNilSlice(sc.Args),
		Env:        emptyIfNilMap(sc.Env),
		Status:     StatusOK,
		Tools:      []mcp.Tool{},
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("unexpected extraction error", "panic", r)
			result.Status = StatusFailed
			result.Reason = ReasonInternal
			result.Error = fmt.Sprintf("unexpected error: %v", r)
			result.Tools = []mcp.Tool{}
		}
	}()

	if o.dryRun {
		log.Debug("dry run, skipping connection")
		return result
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	log.Info("connecting")
	tools, err := o.lister.ListServerTools(ctx, mcp.ServerConfig{
		Name:    name,
		Command: sc.Command,
		Args:    sc.Args,
		Env:     sc.Env,
	})
	if err != nil {
		result.Status = StatusFailed
		result.Error = err.Error()
		if errors.Is(err, context.DeadlineExceeded) {
			result.Reason = ReasonTimeout
			log.Error("server timed out", "timeout", o.timeout.String())
		} else {
			result.Reason = ReasonConnect
			log.Error("extraction failed", "error", err)
		}
		return result
	}

	if len(tools) > 0 {
		result.Tools = tools
	}
	log.Info("extracted tools", "count", len(tools))
	return result
}

func emptyIfNilSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func emptyIfNilMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

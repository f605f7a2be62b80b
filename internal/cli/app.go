package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/brkyvrkn/network-kit/config"
	"github.com/brkyvrkn/network-kit/endpoint"
	"github.com/brkyvrkn/network-kit/internal/logging"
	"github.com/brkyvrkn/network-kit/internal/output"
	"github.com/brkyvrkn/network-kit/internal/pace"
	"github.com/brkyvrkn/network-kit/metrics"
	"github.com/brkyvrkn/network-kit/neterr"
	"github.com/brkyvrkn/network-kit/pkg/jsonpath"
	"github.com/brkyvrkn/network-kit/router"
	"github.com/brkyvrkn/network-kit/transport"
)

// app holds what a command needs after configuration has been resolved.
type app struct {
	cfg       *config.Config
	manager   *config.Manager
	logger    *zap.Logger
	formatter output.FormatProvider
	verbose   bool
	out       io.Writer
	errOut    io.Writer
}

// loadApp reads the configuration and applies the persistent flags on top
// of it. The caller must call close.
func loadApp(cmd *cobra.Command) (*app, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	env, _ := flags.GetString("env")
	token, _ := flags.GetString("token")
	level, _ := flags.GetString("log-level")
	verbose, _ := flags.GetBool("verbose")
	noColor, _ := flags.GetBool("no-color")
	format, _ := flags.GetString("output")

	outputFormat, err := output.ParseFormat(format)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if env != "" {
		cfg.Environment = env
	}
	if token != "" {
		cfg.Token = token
	}
	if level != "" {
		cfg.Log.Level = level
	}

	manager := config.Shared()
	if err := manager.Apply(cfg); err != nil {
		return nil, err
	}

	logger, err := logging.Setup(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}

	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); !ok || !output.IsTerminal(f) {
		noColor = true
	}

	return &app{
		cfg:       cfg,
		manager:   manager,
		logger:    logger,
		formatter: output.GetFormatter(outputFormat, verbose, noColor),
		verbose:   verbose,
		out:       out,
		errOut:    cmd.ErrOrStderr(),
	}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}

// exchange describes one command invocation against the router.
type exchange struct {
	endpoint   endpoint.Endpoint
	timeout    time.Duration
	repeat     int
	rate       float64
	extract    map[string]string
	resultPath string

	// metricsFile receives Prometheus metrics in text format after the run.
	metricsFile string
}

// send runs the exchange and prints every element through the formatter.
// With repeat > 1 only the first round trip is printed unless verbose is
// set, followed by a latency summary. A positive rate spaces the repeats.
func (a *app) send(ctx context.Context, x exchange) error {
	if x.repeat < 1 {
		x.repeat = 1
	}

	timeout := a.manager.Timeout()
	if x.timeout > 0 {
		timeout = x.timeout
	}

	printer := &printingTransport{next: transport.NewClient(), app: a}
	recorder := metrics.NewLatencyRecorder()

	opts := []router.Option{
		router.WithTimeout(timeout),
		router.WithTransport(printer),
		router.WithDecoder(router.DecoderFunc(rawBody)),
		router.WithLogger(a.logger),
		router.WithObserver(recorder),
		router.WithDispatcher(router.Immediate),
		router.WithResultPath(x.resultPath),
	}

	var registry *prometheus.Registry
	if x.metricsFile != "" {
		registry = prometheus.NewRegistry()
		opts = append(opts, router.WithObserver(metrics.NewCollector(registry, "netkit")))
	}

	r := router.New[[]byte](opts...)

	pacer := pace.New(x.rate)

	var lastErr *neterr.Error
	for i := 0; i < x.repeat; i++ {
		if err := pacer.Wait(ctx); err != nil {
			lastErr = neterr.ConnectionFailedError(err)
			fmt.Fprint(a.out, a.formatter.FormatError(lastErr))
			break
		}
		printer.quiet = i > 0 && !a.verbose

		body, err := r.Do(ctx, x.endpoint)
		if err != nil {
			nerr := neterr.From(err)
			lastErr = nerr
			if !printer.quiet || i == x.repeat-1 {
				fmt.Fprint(a.out, a.formatter.FormatError(nerr))
			}
			if ctx.Err() != nil {
				break
			}
			continue
		}

		if !printer.quiet {
			fmt.Fprint(a.out, a.formatter.FormatExtracted(a.extract(printer.last, body, x)))
		}
	}

	if x.repeat > 1 {
		fmt.Fprint(a.out, a.formatter.FormatSummary(recorder.Snapshot()))
	}

	if registry != nil {
		if err := prometheus.WriteToTextfile(x.metricsFile, registry); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
		a.logger.Debug("metrics written", zap.String("file", x.metricsFile))
	}

	if lastErr != nil {
		return fmt.Errorf("request failed: %w", lastErr)
	}
	return nil
}

// extract reads the --extract paths from the full response body. The
// selected result is included under its path when a result path is set.
func (a *app) extract(resp *transport.Response, result []byte, x exchange) map[string]string {
	values := map[string]string{}
	if len(x.extract) > 0 && resp != nil {
		extracted, err := jsonpath.ExtractMultiple(resp.Body, x.extract)
		if err != nil {
			a.logger.Warn("extraction failed", zap.Error(err))
		}
		for key, value := range extracted {
			values[key] = value
		}
	}
	if x.resultPath != "" {
		values[x.resultPath] = string(result)
	}
	return values
}

// printingTransport prints the built request and the raw response around
// each round trip.
type printingTransport struct {
	next  router.Transport
	app   *app
	quiet bool
	last  *transport.Response
}

func (p *printingTransport) Do(ctx context.Context, req *http.Request) (*transport.Response, error) {
	if !p.quiet {
		fmt.Fprint(p.app.out, p.app.formatter.FormatRequest(req))
	}

	resp, err := p.next.Do(ctx, req)
	p.last = resp
	if err == nil && resp != nil && !p.quiet {
		fmt.Fprint(p.app.out, p.app.formatter.FormatResponse(resp))
	}
	return resp, err
}

// rawBody keeps the successful body as it is; the formatter has already
// printed it.
func rawBody(data []byte, v any) error {
	dst, ok := v.(*[]byte)
	if !ok {
		return fmt.Errorf("decoding %T: unsupported target", v)
	}
	*dst = append((*dst)[:0], data...)
	return nil
}

// parsePairs turns "key=value" items into a map.
func parsePairs(items []string, sep string) (map[string]string, error) {
	if len(items) == 0 {
		return nil, nil
	}
	pairs := make(map[string]string, len(items))
	for _, item := range items {
		key, value, ok := cutTrim(item, sep)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid value %q, expected key%svalue", item, sep)
		}
		pairs[key] = value
	}
	return pairs, nil
}

// parseJSONObject decodes a --json argument. A leading @ reads a file.
func parseJSONObject(raw string) (endpoint.Parameters, error) {
	if raw == "" {
		return nil, nil
	}

	data := []byte(raw)
	if raw[0] == '@' {
		var err error
		data, err = os.ReadFile(raw[1:])
		if err != nil {
			return nil, fmt.Errorf("reading JSON body: %w", err)
		}
	}

	var params endpoint.Parameters
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("JSON body must be an object: %w", err)
	}
	return params, nil
}

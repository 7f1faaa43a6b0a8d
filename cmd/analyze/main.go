package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"case-analysis/config"
	"case-analysis/internal/analysis"
	"case-analysis/pkg/llmprovider"
	"case-analysis/pkg/log"
)

type options struct {
	provider string
	model    string
	apiKey   string
	baseURL  string
	system   string
	files    []string
	verbose  bool
}

func addFlags(fs *pflag.FlagSet, o *options) {
	fs.StringVarP(&o.provider, "provider", "p", "", "Provider: gemini, openrouter or local (default from config)")
	fs.StringVarP(&o.model, "model", "m", "", "Model id (default per provider)")
	fs.StringVarP(&o.apiKey, "api-key", "k", "", "API key (default from config or <PROVIDER>_API_KEY)")
	fs.StringVar(&o.baseURL, "base-url", "", "Override the provider endpoint")
	fs.StringVar(&o.system, "system", "", "System instruction (default: built-in case analyst)")
	fs.StringArrayVarP(&o.files, "file", "f", nil, "Attach a file; repeat for more")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "Log to stderr")
}

func newRootCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "analyze [flags] <prompt>",
		Short: "Run a case analysis from the command line",
		Long: `Send a prompt and any attached documents to a provider and stream the analysis to stdout.

Examples:
  analyze -f contract.pdf -f emails.txt "Find contradictions between the contract and the emails"
  analyze --provider local --model qwen2.5-7b-instruct "Summarize the obligations"`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), o, strings.Join(args, " "), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	addFlags(cmd.Flags(), o)
	return cmd
}

func run(ctx context.Context, o *options, prompt string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := log.NewNop()
	if o.verbose {
		logger = log.Init(log.ZapConfig{
			Level:    "debug",
			Mode:     log.ModeDevelopment,
			Encoding: log.EncodingConsole,
			Output:   stderr,
		})
	}

	opts, err := llmprovider.OptionsFromConfig(&cfg.LLM)
	if err != nil {
		return err
	}
	dispatcher := llmprovider.NewDispatcher(opts, logger)

	files := make([]llmprovider.AttachedFile, 0, len(o.files))
	for _, path := range o.files {
		f, err := readAttachment(path)
		if err != nil {
			return err
		}
		logger.Debugf(ctx, "attached %s (%s, %d bytes)", f.Name, f.MIMEType, f.SizeBytes)
		files = append(files, f)
	}

	settings := resolveSettings(o, cfg, dispatcher)

	printer := &suffixPrinter{w: stdout}
	text, err := dispatcher.GenerateCaseAnalysis(ctx, prompt, files, settings, printer.Print)
	if err != nil {
		if printer.n > 0 {
			fmt.Fprintln(stdout)
		}
		return err
	}

	// Flush anything the callback did not see.
	printer.Print(text)
	fmt.Fprintln(stdout)
	return nil
}

func resolveSettings(o *options, cfg *config.Config, d *llmprovider.Dispatcher) llmprovider.Settings {
	kind := llmprovider.ProviderKind(strings.ToLower(firstNonEmpty(o.provider, cfg.LLM.DefaultProvider, string(llmprovider.ProviderGemini))))
	return llmprovider.Settings{
		Provider:          kind,
		APIKey:            firstNonEmpty(o.apiKey, d.Defaults(kind).APIKey),
		Model:             o.model,
		BaseURL:           o.baseURL,
		SystemInstruction: firstNonEmpty(o.system, cfg.Analysis.SystemInstruction, analysis.DefaultSystemInstruction),
	}
}

// suffixPrinter writes only the part of each cumulative value not yet printed.
type suffixPrinter struct {
	w io.Writer
	n int
}

func (p *suffixPrinter) Print(cumulative string) {
	if len(cumulative) <= p.n {
		return
	}
	fmt.Fprint(p.w, cumulative[p.n:])
	p.n = len(cumulative)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

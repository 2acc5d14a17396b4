package main

import (
	"context"
	"fmt"
	"io"
	"net/http/httputil"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/hydrz/respbuild"
	"github.com/hydrz/respbuild/utils"
)

var version = "dev"

// flags holds the command line state of one command invocation.
type flags struct {
	option   respbuild.Option
	status   int
	headers  []string
	merges   []string
	origin   string
	playlist bool
}

// createRootCommand creates the main command.
func createRootCommand() *cobra.Command {
	f := &flags{option: *respbuild.DefaultOptions, status: 200}
	cmd := &cobra.Command{
		Use:     "respbuild [BODY_FILE]",
		Short:   "Build an HTTP response and print it",
		Long:    `respbuild - Assemble a raw HTTP response from flags, merge extra headers and tag it with its origin URL`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRootCommand(cmd, f, args)
		},
		SilenceUsage: true,
	}
	setupFlags(cmd, f)
	return cmd
}

// runRootCommand builds the response described by f and dumps it to stdout.
func runRootCommand(cmd *cobra.Command, f *flags, args []string) error {
	logger := respbuild.NewLogger(f.option)

	b := respbuild.NewBuilder().Status(f.status)
	for _, line := range f.headers {
		name, value, err := utils.ParseHeaderLine(line)
		if err != nil {
			return err
		}
		b.Header(name, value)
	}

	merge, err := utils.ParseHeaderLines(f.merges)
	if err != nil {
		return err
	}
	b.Headers(merge)

	if f.origin != "" {
		u, err := url.Parse(f.origin)
		if err != nil {
			return fmt.Errorf("invalid origin URL %s: %w", f.origin, err)
		}
		b.URL(u)
	}

	resp, err := buildResponse(cmd, f, b, args)
	if err != nil {
		return fmt.Errorf("failed to build response: %w", err)
	}
	defer resp.Body.Close()
	logger.Debug("Built response", "status", resp.StatusCode, "headers", len(resp.Header), "length", utils.FormatBytes(resp.ContentLength))

	dump, err := httputil.DumpResponse(resp.Response, true)
	if err != nil {
		return fmt.Errorf("failed to dump response: %w", err)
	}
	out := cmd.OutOrStdout()
	if _, err := out.Write(dump); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nLength: %s\n", utils.FormatBytes(resp.ContentLength))
	if origin, ok := resp.Origin(); ok {
		fmt.Fprintf(out, "Origin: %s\n", origin)
	}
	return nil
}

// buildResponse attaches the body named by args, if any.
func buildResponse(cmd *cobra.Command, f *flags, b *respbuild.Builder, args []string) (*respbuild.Response, error) {
	if len(args) == 0 {
		return b.Empty()
	}

	file, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to open body file: %w", err)
	}
	defer file.Close()

	var body io.ReadCloser = file
	if f.option.Progress && !f.option.Silent {
		var size int64
		if fi, err := file.Stat(); err == nil {
			size = fi.Size()
		}
		bar := progressbar.NewOptions64(size,
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription(fmt.Sprintf("%s (%s)", args[0], utils.FormatBytes(size))),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		)
		body = respbuild.NewProgressReader(file, size, args[0], func(current, total int64, _ string) {
			bar.Set64(current)
		})
		defer body.Close()
	}

	if f.playlist {
		p, err := respbuild.DecodePlaylist(body)
		if err != nil {
			return nil, err
		}
		return b.BodyPlaylist(p)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body file: %w", err)
	}
	return b.BodyBytes(data)
}

// setupFlags configures command line flags using the current values in f as defaults.
func setupFlags(cmd *cobra.Command, f *flags) {
	// Response options
	cmd.Flags().IntVarP(&f.status, "status", "s", f.status, "Response status code")
	cmd.Flags().StringArrayVarP(&f.headers, "header", "H", nil, "Response header, appended (Name: value)")
	cmd.Flags().StringArrayVarP(&f.merges, "merge", "m", nil, "Header merged over the -H headers, replacing same-name values")
	cmd.Flags().StringVarP(&f.origin, "url", "u", "", "Origin URL to attach to the response")
	cmd.Flags().BoolVar(&f.playlist, "playlist", false, "Parse the body file as an m3u8 playlist and re-encode it")
	// Behavior options
	cmd.Flags().BoolVar(&f.option.Progress, "progress", f.option.Progress, "Show progress while reading the body file")
	// Error handling and logging
	cmd.Flags().BoolVarP(&f.option.Debug, "debug", "d", f.option.Debug, "Enable debug logging")
	cmd.Flags().BoolVarP(&f.option.Verbose, "verbose", "v", f.option.Verbose, "Enable verbose output")
	cmd.Flags().BoolVar(&f.option.Silent, "silent", f.option.Silent, "Suppress all output except errors")
}

func main() {
	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd := createRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

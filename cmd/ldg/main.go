package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/ldg/constants"
	"github.com/joseph-ayodele/ldg/internal/common"
)

// errMismatches ends a validate run that finished with mismatches.
var errMismatches = errors.New("validation finished with mismatches")

type app struct {
	cfg    *common.Config
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg := common.LoadConfig()
	logger := common.NewLogger(cfg.Log, os.Stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, &app{cfg: cfg, logger: logger, stdout: os.Stdout, stderr: os.Stderr}, os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, a *app, args []string) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errMismatches) {
		a.logger.Error("command failed", "error", err)
		fmt.Fprintf(a.stderr, "\n❌ Error: %v\n", err)
	}
	return exitCode(err)
}

// exitCode maps a command error onto the documented process exit codes.
func exitCode(err error) int {
	switch {
	case err == nil:
		return constants.ExitOK
	case errors.Is(err, errMismatches):
		return constants.ExitMismatches
	case errors.Is(err, common.ErrCloudConfig):
		return constants.ExitCloudConfig
	case errors.Is(err, common.ErrCloudClient):
		return constants.ExitCloudClient
	case errors.Is(err, common.ErrNotFound):
		return constants.ExitInputMissing
	default:
		return constants.ExitUnexpected
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "ldg",
		Short:         "Logistics Document Guardian - OCR validation tool",
		Long:          "ldg runs OCR over logistics PDFs and checks that expected text from a truth CSV appears in the output.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newValidateCmd(a),
		newExtractCmd(a),
		newOCRDirCmd(a),
		newStubTruthCmd(a),
		newRunsCmd(a),
		newDBHealthCmd(a),
	)
	return root
}

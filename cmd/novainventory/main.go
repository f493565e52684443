package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"novainventory/internal/config"
	"novainventory/internal/orchestrator"
	"novainventory/pkg/logging"
)

const usage = "usage: --list  ..OR.. --host <hostname>"

// errUsage marks an unrecognized invocation; the usage line has already been printed.
var errUsage = errors.New("invalid invocation")

// runFunc performs one inventory run for the selected mode.
type runFunc func(ctx context.Context, runCfg orchestrator.Config) error

func main() {
	err := execute(context.Background(), os.Args[1:], os.Stdout, runInventory)
	switch {
	case errors.Is(err, errUsage):
		os.Exit(1)
	case err != nil:
		log.Fatalf("Error: %v", err)
	}
}

// execute parses args and dispatches to run. Every shape other than
// "--list" or "--host <token>" writes the usage line to out.
func execute(ctx context.Context, args []string, out io.Writer, run runFunc) error {
	if !recognizedShape(args) {
		fmt.Fprintln(out, usage)
		return errUsage
	}

	var (
		list      bool
		host      string
		usageSeen bool
	)

	rootCmd := &cobra.Command{
		Use:           "novainventory",
		Short:         "Dynamic inventory of compute instances for Ansible",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return errUsage
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			runCfg, ok := selectMode(cmd, list, host)
			if !ok {
				return errUsage
			}
			return run(cmd.Context(), runCfg)
		},
	}

	rootCmd.Flags().BoolVar(&list, "list", false, "Print every group and host")
	rootCmd.Flags().StringVar(&host, "host", "", "Print the attributes of instances matching a name or access IP")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetFlagErrorFunc(func(*cobra.Command, error) error { return errUsage })
	rootCmd.SetHelpFunc(func(*cobra.Command, []string) { usageSeen = true })
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)

	err := rootCmd.ExecuteContext(ctx)
	if usageSeen {
		err = errUsage
	}
	if errors.Is(err, errUsage) {
		fmt.Fprintln(out, usage)
	}
	return err
}

// recognizedShape admits only "--list", "--host <token>" and "--host=<token>".
// Cobra alone would also accept repeated flags, a trailing "--" and its
// hidden completion command.
func recognizedShape(args []string) bool {
	switch len(args) {
	case 1:
		return args[0] == "--list" || strings.HasPrefix(args[0], "--host=")
	case 2:
		return args[0] == "--host"
	default:
		return false
	}
}

// selectMode accepts exactly one of the two flags
func selectMode(cmd *cobra.Command, list bool, host string) (orchestrator.Config, bool) {
	listSet := cmd.Flags().Changed("list")
	hostSet := cmd.Flags().Changed("host")

	switch {
	case listSet && !hostSet && list:
		return orchestrator.Config{Mode: orchestrator.ModeList}, true
	case hostSet && !listSet:
		return orchestrator.Config{Mode: orchestrator.ModeHost, HostToken: host}, true
	default:
		return orchestrator.Config{}, false
	}
}

// runInventory loads the configuration, connects to the provider and prints the document.
func runInventory(ctx context.Context, runCfg orchestrator.Config) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.NewDefaultLogger()
	logger.SetLevel(logging.StringToLogLevel(cfg.LogLevel))

	runCfg.DefaultGroup = cfg.DefaultGroup
	runCfg.DefaultSSHUser = cfg.DefaultSSHUser
	runCfg.SSHUserRules = cfg.SSHUserRules

	service, err := orchestrator.NewDefaultService(ctx, runCfg, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize the service: %w", err)
	}

	return service.Run(ctx)
}

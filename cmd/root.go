// Package cmd contains the jarl CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jarlaunch/jarl/internal/cache"
	"github.com/jarlaunch/jarl/internal/config"
	"github.com/jarlaunch/jarl/internal/distributor"
	"github.com/jarlaunch/jarl/internal/jre"
	"github.com/jarlaunch/jarl/internal/launcher"
	"github.com/jarlaunch/jarl/internal/platform"
	"github.com/jarlaunch/jarl/internal/version"
	"github.com/jarlaunch/jarl/internal/workspace"
)

var rootCmd = &cobra.Command{
	Use:          "jarl <jar> [args...]",
	Short:        "Run jars without installing Java",
	Long:         `jarl runs a Java archive with a matching runtime, fetching and caching the runtime on demand and falling back to alternate versions when execution fails.`,
	RunE:         runLaunch,
	SilenceUsage: true,
	Args:         cobra.ArbitraryArgs,
}

// notifySignals are the signals that cancel the command context so
// the deferred session cleanup can remove the active workspace.
// Termination must be covered as well as interruption: a SIGTERM that
// took the default disposition would leave the extracted runtime
// behind in the temp directory.
var notifySignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func Execute() {
	err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s (%s) %s", version.Version, version.Commit, version.BuildTime)),
		fang.WithNotifySignal(notifySignals...),
	)
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntP("java", "j", config.DefaultJavaVersion, "Java major version to run the jar with")
	rootCmd.PersistentFlags().Bool("no-cache", false, "Bypass the runtime archive cache")
	rootCmd.PersistentFlags().Bool("no-fallback", false, "Do not try alternate Java versions on failure")
	rootCmd.PersistentFlags().Bool("force-workarounds", false, "Skip standard execution and start with compatibility flags")
	rootCmd.PersistentFlags().BoolP("keep-runtime", "k", false, "Keep the materialized runtime directory after exit")
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "Skip confirmation prompts")
	rootCmd.PersistentFlags().BoolP("dry-run", "n", false, "Print intended actions without performing them")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	// Everything after the jar path is passed through to the jar, not
	// parsed as jarl flags.
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionsCmd)
}

// runtimeProvider adapts the jre acquirer to the coordinator's
// Provider interface, fixing the host platform.
type runtimeProvider struct {
	acquirer *jre.Acquirer
	platform platform.Platform
}

func (p *runtimeProvider) Acquire(ctx context.Context, ver int, jarPath string, skipCache bool) (string, error) {
	rt, err := p.acquirer.Acquire(ctx, ver, p.platform, jarPath, skipCache)
	if err != nil {
		return "", err
	}

	return rt.JavaPath(), nil
}

func runLaunch(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("requires a jar file argument")
	}

	if !strings.HasSuffix(args[0], ".jar") {
		return fmt.Errorf("file must have .jar extension")
	}

	cfg, err := config.NewLoader().LoadForLaunch(cmd, args)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	// An unsupported platform is fatal: no runtime exists for it.
	plat, err := platform.Identify()
	if err != nil {
		return err
	}

	dist := distributor.New()

	if cfg.DryRun {
		return renderDryRun(cmd.OutOrStdout(), cfg, plat, dist)
	}

	store, err := cache.New("")
	if err != nil {
		return err
	}

	session := workspace.NewSession(cfg.KeepRuntime)
	defer finishSession(session, cfg)

	coordinator := launcher.NewCoordinator(
		&runtimeProvider{
			acquirer: jre.NewAcquirer(store, dist, session),
			platform: plat,
		},
		launcher.NewEngine(),
	)

	result, err := coordinator.Launch(cmd.Context(), launcher.Request{
		JarPath:          cfg.JarPath,
		JarArgs:          cfg.JarArgs,
		Version:          cfg.JavaVersion,
		SkipCache:        cfg.NoCache,
		NoFallback:       cfg.NoFallback,
		ForceWorkarounds: cfg.ForceWorkarounds,
	})
	if err != nil {
		var waErr *launcher.WorkaroundsError
		if errors.As(err, &waErr) {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("The jar could not be run. Possible causes:"))
			for _, cause := range waErr.Causes() {
				fmt.Fprintf(os.Stderr, "  - %s\n", cause)
			}
		}

		return err
	}

	if result.Fallback {
		log.Info("done", "java", result.Version, "note", "ran via fallback version")
	} else {
		log.Debug("done", "java", result.Version)
	}

	return nil
}

// finishSession releases the session's workspace, honoring the keep
// option and the cleanup confirmation prompt.
func finishSession(session *workspace.Session, cfg *config.Config) {
	active := session.Active()
	if active == nil {
		return
	}

	if session.Keep() {
		log.Info("keeping runtime", "path", active.Path())
		return
	}

	if !cfg.Yes && !confirm(os.Stdin, os.Stdout, fmt.Sprintf("Remove temporary runtime at %s?", active.Path())) {
		log.Info("leaving runtime in place", "path", active.Path())
		return
	}

	if err := session.Close(); err != nil {
		log.Warn("failed to clean up workspace", "err", err)
	}
}

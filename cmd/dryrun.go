package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jarlaunch/jarl/internal/cache"
	"github.com/jarlaunch/jarl/internal/config"
	"github.com/jarlaunch/jarl/internal/distributor"
	"github.com/jarlaunch/jarl/internal/platform"
)

// renderDryRun prints what a launch would do without touching the
// cache, the network, or any process. The only I/O is a read-only
// cache presence probe.
func renderDryRun(w io.Writer, cfg *config.Config, plat platform.Platform, dist *distributor.Client) error {
	fmt.Fprintln(w, TitleStyle.Render("Dry Run"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s %s\n", LabelStyle.Render("Jar:"), cfg.JarPath)
	if len(cfg.JarArgs) > 0 {
		fmt.Fprintf(w, "  %s %s\n", LabelStyle.Render("Args:"), strings.Join(cfg.JarArgs, " "))
	}

	fmt.Fprintf(w, "  %s %s\n", LabelStyle.Render("Platform:"), plat)
	fmt.Fprintf(w, "  %s %d\n", LabelStyle.Render("Java:"), cfg.JavaVersion)

	key := cache.Key{Version: cfg.JavaVersion, OS: plat.OS, Arch: plat.Arch}
	cacheState := "disabled (--no-cache)"

	if !cfg.NoCache {
		cacheState = "miss, would download and cache"

		if store, err := cache.New(""); err == nil {
			if _, ok := store.Lookup(key); ok {
				cacheState = "hit, would reuse cached archive"
			}
		}
	}

	fmt.Fprintf(w, "  %s %s (%s)\n", LabelStyle.Render("Cache:"), key.Filename(), cacheState)
	fmt.Fprintf(w, "  %s %s\n", LabelStyle.Render("Source:"), dist.ArchiveURL(cfg.JavaVersion, plat.OS, plat.Arch))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s java -jar %s %s\n", LabelStyle.Render("Would run:"), cfg.JarPath, strings.Join(cfg.JarArgs, " "))

	if cfg.NoFallback {
		fmt.Fprintf(w, "  %s\n", MutedStyle.Render("Fallback disabled: a failed launch is terminal"))
	}

	return nil
}

// confirm asks a yes/no question on w and reads the answer from r.
// Anything but an explicit yes declines.
func confirm(r io.Reader, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s [y/N] ", question)

	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))

	return answer == "y" || answer == "yes"
}

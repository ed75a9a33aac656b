package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jarlaunch/jarl/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the runtime archive cache",
}

var cacheInfoCmd = &cobra.Command{
	Use:          "info",
	Short:        "Show cached runtime archives",
	RunE:         runCacheInfo,
	SilenceUsage: true,
}

var cacheClearCmd = &cobra.Command{
	Use:          "clear",
	Short:        "Remove all cached runtime archives",
	RunE:         runCacheClear,
	SilenceUsage: true,
}

func init() {
	cacheCmd.AddCommand(cacheInfoCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

func runCacheInfo(cmd *cobra.Command, _ []string) error {
	store, err := cache.New("")
	if err != nil {
		return err
	}

	entries, err := store.Enumerate()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, TitleStyle.Render("Runtime cache"))
	fmt.Fprintf(w, "  %s %s\n", LabelStyle.Render("Location:"), store.Root())

	if len(entries) == 0 {
		fmt.Fprintf(w, "  %s\n", MutedStyle.Render("empty"))
		return nil
	}

	var total int64
	for _, entry := range entries {
		fmt.Fprintf(w, "  %-40s %10s\n", entry.Name, humanSize(entry.Size))
		total += entry.Size
	}

	fmt.Fprintf(w, "  %s %d archives, %s\n", LabelStyle.Render("Total:"), len(entries), humanSize(total))

	return nil
}

func runCacheClear(cmd *cobra.Command, _ []string) error {
	store, err := cache.New("")
	if err != nil {
		return err
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes && !confirm(os.Stdin, cmd.OutOrStdout(), fmt.Sprintf("Remove all cached runtimes under %s?", store.Root())) {
		return nil
	}

	if err := store.PurgeAll(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Cache cleared"))

	return nil
}

// humanSize renders a byte count for display.
func humanSize(n int64) string {
	const unit = 1024

	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jarlaunch/jarl/internal/distributor"
)

var versionsCmd = &cobra.Command{
	Use:          "versions",
	Short:        "List available Java versions",
	Long:         `Query the runtime distributor for available Java major versions. Falls back to a built-in table when the catalog is unreachable.`,
	RunE:         runVersions,
	SilenceUsage: true,
}

func runVersions(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	descriptions := make(map[int]string)
	for _, v := range distributor.StaticVersions {
		descriptions[v.Version] = v.Description
	}

	versions, err := distributor.New().AvailableVersions(cmd.Context())
	if err != nil {
		log.Warn("version catalog unavailable, showing known versions", "err", err)

		fmt.Fprintln(w, TitleStyle.Render("Known Java versions"))
		for _, v := range distributor.StaticVersions {
			fmt.Fprintf(w, "  %s  %s\n", LabelStyle.Render(strconv.Itoa(v.Version)), v.Description)
		}

		return nil
	}

	fmt.Fprintln(w, TitleStyle.Render("Available Java versions"))
	for _, v := range versions {
		desc := descriptions[v]
		if desc == "" {
			desc = MutedStyle.Render("available")
		}

		fmt.Fprintf(w, "  %s  %s\n", LabelStyle.Render(strconv.Itoa(v)), desc)
	}

	return nil
}

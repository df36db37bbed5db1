package main

import (
	"fmt"

	"github.com/mowens/crontabs/internal/discovery"
	"github.com/mowens/crontabs/internal/logger"
	"github.com/spf13/cobra"
)

var listShowTabs bool

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every job across all discovered crontabs",
	Long: `Run a full discovery pass over the configured locations and print the
merged view: one line per job, each with its effective user. Locations
that could not be read are reported but never abort the pass.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, log := setup()
		eng := newEngine(cfg)

		agg := discovery.New(eng, log)
		agg.Discover(locations(cfg, eng, log))

		if listShowTabs {
			for _, tab := range agg.Tabs() {
				switch {
				case tab.User != "":
					fmt.Printf("# user tab: %s\n", tab.User)
				case tab.Path != "":
					fmt.Printf("# file tab: %s\n", tab.Path)
				default:
					fmt.Println("# system tab")
				}
				for _, job := range tab.Jobs() {
					fmt.Println(job.Render(tab.System))
				}
			}
		} else {
			for _, job := range agg.All().Jobs() {
				fmt.Println(job.Render(true))
			}
		}

		for _, err := range agg.Errs() {
			log.Warn("location skipped", logger.Field{Key: "error", Value: err})
		}
	},
}

func init() {
	listCmd.Flags().BoolVar(&listShowTabs, "by-tab", false, "group output by source tab instead of merging")
}

package cmd

import (
	"groovefm/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the GrooveFM HTTP server",
	Long:  `Start the GrooveFM HTTP server, serving the catalog, favorites and playlist APIs`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

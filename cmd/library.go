package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"groovefm/config"
	"groovefm/store"

	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Inspect the local library",
	Long:  `Print the persisted favorites and playlists as JSON`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()

		kv, closeKV, err := store.OpenKV(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open library storage: %v\n", err)
			os.Exit(1)
		}
		defer closeKV()

		s := store.New(kv)
		ctx := context.Background()

		favorites, err := s.Favorites(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read favorites: %v\n", err)
			os.Exit(1)
		}
		playlists, err := s.Playlists(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read playlists: %v\n", err)
			os.Exit(1)
		}

		out, err := json.MarshalIndent(map[string]interface{}{
			"favorites": favorites,
			"playlists": playlists,
		}, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode library: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
	},
}

func init() {
	rootCmd.AddCommand(libraryCmd)
}

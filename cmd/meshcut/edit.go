package main

import (
	"github.com/philipparndt/meshcut/internal/app"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <file>",
	Short: "Open a mesh in the interactive cutter",
	Long: `Open a mesh in a window and cut it with freehand curves.

Right click starts and stops drawing, z cuts keeping the inside, Z keeps the
outside. Press h in the window for all keys.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(app.Options{
			File:   args[0],
			Config: cfg,
			Logger: logger,
		})
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/carpetaciudadana/co/internal/workflow"
)

var minticCmd = &cobra.Command{
	Use:   "mintic",
	Short: "National registry acceptance mock from the registry-notice topic",
	Run: func(cmd *cobra.Command, args []string) {
		runStage(workflow.RunMinTIC)
	},
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/carpetaciudadana/co/internal/workflow"
)

var registraduriaCmd = &cobra.Command{
	Use:   "registraduria",
	Short: "Identity verification mock from the verify-request topic",
	Run: func(cmd *cobra.Command, args []string) {
		runStage(workflow.RunRegistraduria)
	},
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/carpetaciudadana/co/internal/workflow"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Identity validation from the open-request queue",
	Long: `Consumes folder-opening requests, records them in the audit trail and hands
	the registry mock an XML verification request.`,
	Run: func(cmd *cobra.Command, args []string) {
		runStage(workflow.RunValidator)
	},
}

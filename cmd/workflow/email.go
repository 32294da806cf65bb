package main

import (
	"github.com/spf13/cobra"

	"github.com/carpetaciudadana/co/internal/workflow"
)

var emailCmd = &cobra.Command{
	Use:   "email",
	Short: "Email assignment from the folder-created exchange",
	Run: func(cmd *cobra.Command, args []string) {
		runStage(workflow.RunEmail)
	},
}

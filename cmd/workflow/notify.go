package main

import (
	"github.com/spf13/cobra"

	"github.com/carpetaciudadana/co/internal/workflow"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Registry notification from the identity-response queue",
	Run: func(cmd *cobra.Command, args []string) {
		runStage(workflow.RunNotifier)
	},
}

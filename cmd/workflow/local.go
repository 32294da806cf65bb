package main

import (
	"github.com/spf13/cobra"

	"github.com/carpetaciudadana/co/internal/workflow"
)

var path string

var localCmd = &cobra.Command{
	Use:   "local",
	Short: "Validation from local files and directories",
	Run: func(cmd *cobra.Command, args []string) {
		workflow.Local(path, logLevel)
	},
}

func init() {
	localCmd.Flags().StringVarP(&path, "path", "p", ".", "The path to read from. Can be a file or a directory.")
}

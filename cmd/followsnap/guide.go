package main

import (
	"github.com/spf13/cobra"

	"followsnap/pkg/request"
)

// guideCmd explains how to capture a request file
var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show how to capture the request file from your browser",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		request.WriteCaptureGuide(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(guideCmd)
}

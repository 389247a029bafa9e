package cmd

import (
	"github.com/spf13/cobra"
)

const (
	VERSION string = "0.1.0"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show humanizer version",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		out.KeyValue([][2]string{{"Version:", VERSION}})
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tabulator",
	Short: "ASCII tablature toolkit",
	Long:  `Parses ASCII guitar tablature into a structured score, renders it back, and exports MIDI.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

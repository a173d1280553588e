package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asciitab/tabulator/constants"
	"github.com/asciitab/tabulator/export"
	"github.com/asciitab/tabulator/parser"
	"github.com/asciitab/tabulator/util"
)

var exportTempo float64

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().Float64Var(&exportTempo, "tempo", constants.DefaultTempoBPM, "tempo in beats per minute")
}

var exportCmd = &cobra.Command{
	Use:   "export <in.tab> <out.mid>",
	Short: "Exports a tab file as a standard MIDI file",
	Long:  `Exports a tab file as a standard MIDI file`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			panic("Need 2 args...")
		}
		runExport(args[0], args[1])
	},
}

func runExport(in, out string) {
	score, err := parser.Parse(util.ReadFileOrPanic(in))
	if err != nil {
		panic("Could not parse " + in + " because: " + err.Error())
	}
	if err := export.WriteSMFFile(out, score, exportTempo); err != nil {
		panic("Could not write " + out + " because: " + err.Error())
	}
	fmt.Printf("Wrote %v\n", out)
}

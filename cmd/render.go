package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asciitab/tabulator/parser"
	"github.com/asciitab/tabulator/render"
	"github.com/asciitab/tabulator/util"
)

var renderGrid bool

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().BoolVar(&renderGrid, "grid", false, "re-derive the grid from the model instead of emitting stored raw lines")
}

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Parses a tab file and renders it back to text",
	Long:  `Parses a tab file and renders it back to text`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		runRender(args[0])
	},
}

func runRender(path string) {
	score, err := parser.Parse(util.ReadFileOrPanic(path))
	if err != nil {
		panic("Could not parse " + path + " because: " + err.Error())
	}
	if renderGrid {
		fmt.Print(render.FromModel(score))
		return
	}
	fmt.Print(render.Raw(score))
}

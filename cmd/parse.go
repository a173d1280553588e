package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/asciitab/tabulator/parser"
	"github.com/asciitab/tabulator/util"
)

func init() {
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <file-or-dir>",
	Short: "Parses tab files and reports diagnostics",
	Long:  `Parses tab files and reports diagnostics`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		runParse(args[0])
	},
}

func runParse(path string) {
	paths := []string{path}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		paths = util.GatherAllTabPaths(path, 0)
	}

	for _, p := range paths {
		score, err := parser.Parse(util.ReadFileOrPanic(p))
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", p, err)
			continue
		}

		systems, measures := 0, 0
		for _, section := range score.Sections {
			systems += len(section.Systems)
			for _, system := range section.Systems {
				measures += len(system.Measures)
			}
		}
		fmt.Printf("%v: %q by %q: %d sections, %d systems, %d measures\n",
			p, score.Title, score.Artist, len(score.Sections), systems, measures)
		for _, w := range score.Diagnostics() {
			fmt.Printf("  line %d: %s\n", w.LineNo, w.Message)
		}
	}
}

package main

import "github.com/asciitab/tabulator/cmd"

func main() {
	cmd.Execute()
}

package main

import (
	"github.com/spf13/cobra"
)

func main() {
	var root = &cobra.Command{Use: "linkbrief"}

	root.AddCommand(serveCMD(), migrateCMD(), keysCMD())
	_ = root.Execute()
}

// Package main is the operator CLI for generating and inspecting monthly
// schedules outside the HTTP API (SPEC_FULL.md §6.2).
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	successColor = color.New(color.FgGreen, color.Bold)
)

func main() {
	root := &cobra.Command{
		Use:   "schedulectl",
		Short: "Operate the shiftplan monthly schedule generator",
	}

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newPublishCmd())
	root.AddCommand(newSeedHolidaysCmd())

	if err := root.Execute(); err != nil {
		errorColor.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fatalf(format string, args ...any) {
	errorColor.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func printSuccess(format string, args ...any) {
	successColor.Printf(format+"\n", args...)
}

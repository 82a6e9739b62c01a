package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bookshelf",
	Short: "Personal book-tracking backend",
	Long:  `A personal book-tracking backend with account registration, email confirmation and ownership-scoped books and notes.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

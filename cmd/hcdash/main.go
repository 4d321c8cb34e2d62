package main

import (
	"context"
	"github.com/ougirez/hcdash/internal/exitcode"
	"os"
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(exitcode.UsageError)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/beingmomen/dictation-core/internal/logger"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initLogging(level string) {
	logger.InitLogger(level)
}

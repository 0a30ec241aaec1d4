package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "check-deps":
		runCheckDeps()
	case "check-db":
		err = (&CheckDBCommand{}).Run(os.Args[2:])
	case "check-coverage":
		err = (&CheckCoverageCommand{}).Run(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		PrintError("%v", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: devtool <command> [args...]")
	fmt.Println("Commands:")
	fmt.Println("  check-deps      Check for required dependencies")
	fmt.Println("  check-db        Check if database is running and ready")
	fmt.Println("  check-coverage  Check test coverage against a threshold")
}

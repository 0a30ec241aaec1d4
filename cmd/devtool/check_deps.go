package main

import (
	"fmt"
	"os"
	"strings"
)

// runCheckDeps verifies the host has everything a ClubWheelBot dev
// environment needs: the Go toolchain, Docker for the Postgres container,
// Make for the task targets, and goose for migrations.
func runCheckDeps() {
	fmt.Println("Checking ClubWheelBot dev dependencies...")

	hasError := false

	if version, err := getCommandOutput("go", "version"); err == nil {
		// Output: go version go1.24.0 linux/amd64
		parts := strings.Fields(version)
		if len(parts) >= 3 {
			fmt.Printf("✅ Go installed: %s\n", parts[2])
		} else {
			fmt.Printf("✅ Go installed: %s\n", version)
		}
	} else {
		fmt.Println("❌ Go not found!")
		fmt.Println("   Install from: https://go.dev/dl/")
		hasError = true
	}

	if version, err := getCommandOutput("docker", "--version"); err == nil {
		// Output: Docker version 24.0.5, build ced0996
		parts := strings.Fields(version)
		if len(parts) >= 3 {
			fmt.Printf("✅ Docker installed: %s\n", strings.TrimRight(parts[2], ","))
		} else {
			fmt.Printf("✅ Docker installed: %s\n", version)
		}
	} else {
		fmt.Println("❌ Docker not found! (needed for the Postgres container and staging tests)")
		fmt.Println("   Install from: https://docs.docker.com/get-docker/")
		hasError = true
	}

	if version, err := getCommandOutput("docker", "compose", "version"); err == nil {
		// Output: Docker Compose version v2.20.2
		parts := strings.Fields(version)
		if len(parts) >= 4 {
			fmt.Printf("✅ Docker Compose installed: %s\n", parts[3])
		} else {
			fmt.Printf("✅ Docker Compose installed: %s\n", version)
		}
	} else {
		fmt.Println("⚠️  Docker Compose not found (optional if using 'docker compose')")
	}

	if version, err := getCommandOutput("make", "--version"); err == nil {
		// Output: GNU Make 4.3 ...
		lines := strings.Split(version, "\n")
		if len(lines) > 0 {
			parts := strings.Fields(lines[0])
			if len(parts) >= 3 {
				fmt.Printf("✅ Make installed: %s\n", parts[2])
			} else {
				fmt.Printf("✅ Make installed: %s\n", lines[0])
			}
		}
	} else {
		fmt.Println("❌ Make not found!")
		fmt.Println("   Install via package manager (e.g., sudo apt install make)")
		hasError = true
	}

	checkGoose()

	if version, err := getCommandOutput("golangci-lint", "--version"); err == nil {
		parts := strings.Fields(version)
		if len(parts) >= 4 {
			fmt.Printf("✅ golangci-lint installed: %s\n", parts[3])
		} else {
			fmt.Printf("✅ golangci-lint installed: %s\n", version)
		}
	} else {
		fmt.Println("⚠️  golangci-lint not found (Recommended for dev)")
		fmt.Println("   Install from: https://golangci-lint.run/usage/install/")
	}

	if hasError {
		os.Exit(1)
	}

	fmt.Println("\n🎉 Environment check complete!")
}

func checkGoose() {
	if version, err := getCommandOutput("goose", "--version"); err == nil {
		// Format might be "goose version:v3.26.0" or "goose version v3.26.0"
		parts := strings.Fields(version)
		v := parts[len(parts)-1]
		fmt.Printf("✅ Goose installed: %s\n", strings.TrimPrefix(v, "version:"))
		return
	}

	// Not on PATH; check GOPATH/bin before giving up
	home, _ := os.UserHomeDir()
	goosePath := fmt.Sprintf("%s/go/bin/goose", home)
	if version, err := getCommandOutput(goosePath, "--version"); err == nil {
		parts := strings.Fields(version)
		v := parts[len(parts)-1]
		fmt.Printf("✅ Goose installed (in ~/go/bin): %s\n", strings.TrimPrefix(v, "version:"))
		return
	}

	fmt.Println("⚠️  Goose not found (Recommended for dev; the setup command can apply migrations without it)")
	fmt.Println("   Install: go install github.com/pressly/goose/v3/cmd/goose@v3.26.0")
}

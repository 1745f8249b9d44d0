package main

import (
    "fmt"
    "runtime"

    "github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
    Use:   "version",
    Short: "Print version information",
    Run: func(cmd *cobra.Command, args []string) {
        fmt.Printf("editorial-content %s\n", version)
        fmt.Printf("  Go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
    },
}

//go:build cli
// +build cli

package main

import (
	_ "stockledger.GO/custom"

	"stockledger.GO/cmd"
	"stockledger.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}

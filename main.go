// LearnTime - learning reminders for your terminal.
package main

import (
	"os"

	"github.com/learntime/learntime/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

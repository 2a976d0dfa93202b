package main

import (
	"os"

	"github.com/pluserman/pluserman/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}

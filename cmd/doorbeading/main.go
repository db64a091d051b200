package main

import (
	"os"

	"github.com/piwi3910/DoorBeading/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:], os.Stdout, os.Stderr))
}

package main

import (
	"github.com/portyard/yardboard/cmd/app"
)

func main() {
	app.Run()
}

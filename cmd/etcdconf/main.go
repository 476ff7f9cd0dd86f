// Package main is the entry point for the etcdconf CLI.
package main

import (
	"github.com/kart-io/etcdconf/cmd/etcdconf/app"
)

func main() {
	app.NewApp().Run()
}

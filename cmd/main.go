// cmd/main.go
package main

import (
	"go-atm-engine/app"
)

func main() {
	app.Run()
}

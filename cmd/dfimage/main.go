package main

import (
	"github.com/slimtoolkit/dfimage/pkg/app/master"
)

func main() {
	app.Run()
}

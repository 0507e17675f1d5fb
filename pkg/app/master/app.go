package app

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// Run starts the master app
func Run() {
	cli := newCLI()
	if err := cli.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

package errutil

import (
	log "github.com/sirupsen/logrus"

	"github.com/slimtoolkit/dfimage/pkg/consts"
	"github.com/slimtoolkit/dfimage/pkg/version"
)

// WarnOn logs the error information as a warning
func WarnOn(err error) {
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"version": version.Current(),
		}).Warnf("%s: warning", consts.AppName)
	}
}

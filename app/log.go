package app

import (
	"io"

	colorable "github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
)

//NewLogger builds a text logger on a colour-capable stdout
func NewLogger(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetOutput(colorable.NewColorableStdout())
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	log.SetLevel(lvl)
	return log, nil
}

//DiscardLogger drops everything
func DiscardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

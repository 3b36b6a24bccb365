package main

import (
	"os"

	"github.com/hamidzr/tmplstore/internal/cli"
	"github.com/hamidzr/tmplstore/model"
	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run())
}

func run() int {
	stopProfiling := startProfiling()
	defer stopProfiling()

	cmd := cli.InitCLI()
	if err := cmd.Execute(); err != nil {
		code, cause := model.ExitCodeFromError(err)
		if cause == nil {
			cause = err
		}
		logrus.Error(cause)
		return int(code)
	}
	return int(model.NoError)
}

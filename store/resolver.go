package store

import (
	"github.com/sirupsen/logrus"
)

// candidateRule derives one candidate data directory from the working
// directory and executable path. It reports false when the rule does not apply.
type candidateRule func(cwd, exePath string) (string, bool)

// candidateRules are tried in order; each covers one deployment layout.
var candidateRules = []candidateRule{
	// launched from the project root
	func(cwd, _ string) (string, bool) {
		return dataDirUnder(cwd), true
	},
	// launched from a build dir one level below the project root
	func(cwd, _ string) (string, bool) {
		parent, ok := parentDir(cwd)
		if !ok {
			return "", false
		}
		return dataDirUnder(parent), true
	},
	// installed layout: <root>/<bin>/<executable>
	func(_, exePath string) (string, bool) {
		exeDir, ok := parentDir(exePath)
		if !ok {
			return "", false
		}
		root, ok := parentDir(exeDir)
		if !ok {
			return "", false
		}
		return dataDirUnder(root), true
	},
}

// Candidates returns the ordered list of directories that may hold the
// templates file. Identical inputs always produce the same list, and
// duplicates are kept.
func Candidates(cwd, exePath string) []string {
	candidates := make([]string, 0, len(candidateRules))
	for _, rule := range candidateRules {
		if dir, ok := rule(cwd, exePath); ok {
			candidates = append(candidates, dir)
		}
	}
	return candidates
}

// ResolveCandidates reads the working directory and executable path from env
// and returns Candidates for them. Only a working directory failure is an
// error; without an executable path the executable-relative candidate is
// left out.
func ResolveCandidates(env Environment) ([]string, error) {
	cwd, err := env.Getwd()
	if err != nil {
		return nil, environmentError(err)
	}
	exePath, err := env.Executable()
	if err != nil {
		logrus.WithError(err).Debug("executable path unavailable, skipping executable-relative candidate")
		exePath = ""
	}
	logrus.WithFields(logrus.Fields{"cwd": cwd, "executable": exePath}).Trace("resolving candidates")
	return Candidates(cwd, exePath), nil
}

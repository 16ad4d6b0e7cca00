package main

import (
	"testing"

	"github.com/amonks/tasknest/internal/testsupport"
	"github.com/rogpeppe/go-internal/testscript"
)

func TestAnalyticsScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/analytics",
		Setup: func(env *testscript.Env) error {
			return testsupport.SetupScriptEnv(t, env)
		},
		Cmds: testsupport.Commands(),
	})
}

package main

import (
	"testing"

	"github.com/amonks/tasknest/internal/testsupport"
	"github.com/rogpeppe/go-internal/testscript"
)

func TestTransferScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/transfer",
		Setup: func(env *testscript.Env) error {
			return testsupport.SetupScriptEnv(t, env)
		},
		Cmds: testsupport.Commands(),
	})
}

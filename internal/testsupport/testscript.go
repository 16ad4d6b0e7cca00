// Package testsupport holds helpers shared by tasknest's tests.
package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var (
	buildOnce sync.Once
	tnPath    string
	buildErr  error
)

// BuildTn builds the tn binary once and returns its path.
func BuildTn(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "tn-bin-")
		if err != nil {
			buildErr = err
			return
		}

		tnPath = filepath.Join(binDir, "tn")
		cmd := exec.Command("go", "build", "-o", tnPath, "./cmd/tn")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build tn: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}
	return tnPath
}

// SetupScriptEnv gives each script its own HOME and a pinned clock, and
// clears storage overrides inherited from the developer's environment.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("TN", BuildTn(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("NO_COLOR", "1")
	env.Setenv("TASKNEST_NOW", "2024-03-15T14:30:00Z")
	for _, key := range []string{"TASKNEST_STORAGE", "TASKNEST_DATA_DIR", "TASKNEST_REDIS_ADDR", "TASKNEST_FIRESTORE_PROJECT"} {
		env.Setenv(key, "")
	}
	return nil
}

// Commands returns the custom testscript commands.
func Commands() map[string]func(ts *testscript.TestScript, neg bool, args []string) {
	return map[string]func(ts *testscript.TestScript, neg bool, args []string){
		"envset":    CmdEnvSet,
		"todoid":    CmdTodoID,
		"projectid": CmdProjectID,
	}
}

// CmdEnvSet stores the trimmed contents of a file in an env var.
func CmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("envset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}

	value := strings.TrimSpace(ts.ReadFile(args[1]))
	ts.Setenv(args[0], value)
}

type titled struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Name  string `json:"name"`
}

// CmdTodoID finds a todo by title in a JSON list and stores its ID in an env var.
func CmdTodoID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("todoid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: todoid FILE TITLE VAR")
	}
	setIDByLabel(ts, args, func(item titled) string { return item.Title })
}

// CmdProjectID finds a project by name in a JSON list and stores its ID in an env var.
func CmdProjectID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("projectid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: projectid FILE NAME VAR")
	}
	setIDByLabel(ts, args, func(item titled) string { return item.Name })
}

func setIDByLabel(ts *testscript.TestScript, args []string, label func(titled) string) {
	var items []titled
	if err := json.Unmarshal([]byte(ts.ReadFile(args[0])), &items); err != nil {
		ts.Fatalf("parse list: %v", err)
	}
	for _, item := range items {
		if label(item) == args[1] {
			ts.Setenv(args[2], item.ID)
			return
		}
	}
	ts.Fatalf("%q not found", args[1])
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}

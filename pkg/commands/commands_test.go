package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"mytodo": func() int {
			if err := New().Execute(); err != nil {
				return 1
			}
			return 0
		},
	}))
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			env.Setenv("HOME", env.WorkDir)
			env.Setenv("MYTODO_PATH", filepath.Join(env.WorkDir, "tasks"))
			env.Setenv("NO_COLOR", "1")
			return nil
		},
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"taskid": cmdTaskID,
		},
	})
}

// cmdTaskID finds a task by title in the output of `mytodo get --all --json`
// and stores its id in an env var.
func cmdTaskID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("taskid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: taskid FILE TITLE VAR")
	}

	lists := map[string][]struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}{}
	if err := json.Unmarshal([]byte(ts.ReadFile(args[0])), &lists); err != nil {
		ts.Fatalf("parse task list: %v", err)
	}
	for _, list := range []string{"active", "archive"} {
		for _, t := range lists[list] {
			if t.Title == args[1] {
				ts.Setenv(args[2], t.ID)
				return
			}
		}
	}
	ts.Fatalf("task with title %q not found", args[1])
}

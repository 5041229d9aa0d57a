package cli

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/xunit/internal/runner"
	"github.com/roach88/xunit/internal/store"
)

func TestRun_AllPass(t *testing.T) {
	env := newCLIEnv(t, passingRegistry())

	stdout, _, code := env.exec("run")
	assert.Equal(t, ExitSuccess, code)
	assert.True(t, strings.HasPrefix(stdout, "PASS    PassSuite  2/2 passed, 1 ignored\n"), stdout)
	assert.Contains(t, stdout, "  IGNORED TestSkipped\n")
	assert.True(t, strings.HasSuffix(stdout, "OK      2 run: 2 passed, 0 failed, 0 errored, 1 ignored\n"), stdout)
}

func TestRun_FailureExitCode(t *testing.T) {
	env := newCLIEnv(t, mixedRegistry())

	stdout, stderr, code := env.exec("run")
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stdout, "FAIL    FailSuite  1/2 passed")
	assert.Contains(t, stdout, "numbers: expected 1 to equal 2")
	assert.Contains(t, stdout, "FAILED  4 run: 3 passed, 1 failed, 0 errored, 1 ignored")

	assert.Contains(t, stderr, "test raised", "caught errors reach the diagnostic log")
	assert.NotContains(t, stderr, "Error [", "a failing run is not a command error")
}

func TestRun_ReportsSortedByClass(t *testing.T) {
	env := newCLIEnv(t, mixedRegistry())

	stdout, _, _ := env.exec("run")
	assert.Less(t, strings.Index(stdout, "FailSuite"), strings.Index(stdout, "PassSuite"))
}

func TestRun_JSON(t *testing.T) {
	env := newCLIEnv(t, mixedRegistry())

	stdout, _, code := env.exec("run", "--format", "json", "--no-history")
	assert.Equal(t, ExitFailure, code)

	var resp struct {
		Status string    `json:"status"`
		RunID  string    `json:"run_id"`
		Data   RunResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, StatusFail, resp.Status)
	assert.Empty(t, resp.RunID)
	assert.Len(t, resp.Data.Digest, 64)
	assert.Equal(t, 2, resp.Data.Totals.Classes)
	assert.Equal(t, 1, resp.Data.Totals.Fail)
	require.Len(t, resp.Data.Reports, 2)

	fail := resp.Data.Reports[0]
	assert.Equal(t, "FailSuite", fail.Class)
	assert.Equal(t, runner.OutcomeFail, fail.Results[0].Outcome)
	assert.Equal(t, "numbers: expected 1 to equal 2", fail.Results[0].Message)
	assert.True(t, strings.HasPrefix(fail.Results[0].StackTrace, "numbers: expected 1 to equal 2\n"))
}

func TestRun_RecordsHistory(t *testing.T) {
	env := newCLIEnv(t, mixedRegistry())

	stdout, _, code := env.exec("run", "--format", "json")
	require.Equal(t, ExitFailure, code)

	var resp struct {
		RunID string    `json:"run_id"`
		Data  RunResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "run-0001", resp.RunID)
	assert.Equal(t, int64(1), resp.Data.Seq)

	run, err := env.store().ReadRun(context.Background(), "run-0001")
	require.NoError(t, err)
	assert.Equal(t, store.KindAll, run.Kind)
	assert.Equal(t, resp.Data.Digest, run.Digest)
	assert.Equal(t, resp.Data.Reports, run.Reports)
}

func TestRun_NoHistoryLeavesNoDatabase(t *testing.T) {
	env := newCLIEnv(t, passingRegistry())

	_, _, code := env.exec("run", "--no-history")
	require.Equal(t, ExitSuccess, code)
	assert.NoFileExists(t, env.db)
}

func TestRun_CreatesDatabaseDirectory(t *testing.T) {
	env := newCLIEnv(t, passingRegistry())

	_, _, code := env.execRaw("run")
	require.Equal(t, ExitSuccess, code)
	assert.FileExists(t, ".xunit/history.db")
}

func TestRun_ClassFilter(t *testing.T) {
	env := newCLIEnv(t, mixedRegistry())

	stdout, _, code := env.exec("run", "--class", "Pass*")
	assert.Equal(t, ExitSuccess, code)
	assert.NotContains(t, stdout, "FailSuite")
}

func TestRun_EmptySelection(t *testing.T) {
	env := newCLIEnv(t, mixedRegistry())

	stdout, _, code := env.exec("run", "--class", "Nothing*")
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "no test classes registered\n", stdout)
}

func TestRun_Progress(t *testing.T) {
	env := newCLIEnv(t, passingRegistry())

	stdout, stderr, code := env.exec("run", "--progress", "--no-history")
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stderr, "running")
	assert.NotContains(t, stdout, "running", "the bar stays off stdout")
}

func TestRun_VerboseLogsRecording(t *testing.T) {
	env := newCLIEnv(t, passingRegistry())

	_, stderr, code := env.exec("run", "--verbose")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stderr, "run recorded")
	assert.Contains(t, stderr, "recorded run run-0001 (seq 1)")
}

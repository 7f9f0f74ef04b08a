package cli_test

import (
	"bytes"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deaffirst/deafcheck/internal/adapters/inbound/cli"
)

func fixturePage(t *testing.T, name string) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok)
	abs, err := filepath.Abs(filepath.Join(filepath.Dir(thisFile), "../../../../testdata/pages", name))
	require.NoError(t, err)
	return abs
}

func TestValidateCommand_JSON(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"validate", "--file", fixturePage(t, "accessible.html"), "--json"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), `"overall_score"`)
	assert.Contains(t, buf.String(), `"deaf_score_breakdown"`)
	assert.Contains(t, buf.String(), `"status": "completed"`)
}

func TestValidateCommand_CIFailsBelowMin(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"validate", "--file", fixturePage(t, "inaccessible.html"), "--ci", "--min", "95"})
	assert.Error(t, cmd.Execute())
}

func TestValidateCommand_CIPasses(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"validate", "--file", fixturePage(t, "accessible.html"), "--ci", "--min", "1"})
	assert.NoError(t, cmd.Execute())
}

func TestValidateCommand_DefaultTUI(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"validate", "--file", fixturePage(t, "accessible.html")})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "deafcheck")
	assert.Contains(t, buf.String(), "Visual Clarity")
}

func TestValidateCommand_BaselineSkipsDeafCategories(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"validate", "--file", fixturePage(t, "accessible.html"), "--baseline", "--json"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "visual_clarity")
	assert.NotContains(t, buf.String(), "audio_independence")
}

func TestValidateCommand_RequiresTarget(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetArgs([]string{"validate"})
	assert.Error(t, cmd.Execute())
}

func TestValidateCommand_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := cli.NewRootCmdForTest()
	cmd.SetArgs([]string{"validate", "--file", "does-not-exist.html"})
	assert.Error(t, cmd.Execute())
}

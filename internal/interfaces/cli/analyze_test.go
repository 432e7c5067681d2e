package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sow.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestAnalyzeCmd_JSONOutput(t *testing.T) {
	path := writeDoc(t, "Payment terms: net 30 from invoice. Liability cap. Termination.")

	out, _, err := runCLI(t, "analyze", "--file", path, "--type", "SOW", "--output", "json")
	require.NoError(t, err)

	var res map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "sow.txt", res["contract_name"])
	assert.Equal(t, "heuristic", res["analysis_method"])
	overall, ok := res["overall_risk"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, overall, "score")
	assert.Contains(t, overall, "band")
}

func TestAnalyzeCmd_SummaryOutput(t *testing.T) {
	path := writeDoc(t, "Payment terms: net 30 from invoice.")

	out, _, err := runCLI(t, "analyze", "--file", path, "--type", "PO")
	require.NoError(t, err)

	assert.Contains(t, out, "Overall risk:")
	assert.Contains(t, out, "Lens scores:")
	assert.Contains(t, out, "Legal")
	assert.Contains(t, out, "Compliance")
}

func TestAnalyzeCmd_InvalidType(t *testing.T) {
	path := writeDoc(t, "some text")

	_, _, err := runCLI(t, "analyze", "--file", path, "--type", "Invoice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid document type")
}

func TestAnalyzeCmd_MissingFile(t *testing.T) {
	_, _, err := runCLI(t, "analyze", "--file", "/nonexistent/sow.txt", "--type", "SOW")
	require.Error(t, err)
}

func TestAnalyzeCmd_EmptyDocumentRejected(t *testing.T) {
	path := writeDoc(t, "   \n\t  ")

	_, _, err := runCLI(t, "analyze", "--file", path, "--type", "SOW")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestAnalyzeCmd_RequiredFlags(t *testing.T) {
	_, _, err := runCLI(t, "analyze")
	require.Error(t, err)
}

func TestAnalyzeCmd_InvalidOutputFormat(t *testing.T) {
	path := writeDoc(t, "text")

	_, _, err := runCLI(t, "analyze", "--file", path, "--type", "SOW", "--output", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

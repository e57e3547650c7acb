package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finalwork/recipe-terminal/pkg/files"
	"github.com/finalwork/recipe-terminal/pkg/journal"
)

func executeHistory(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewHistoryCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestHistoryCommand_Empty(t *testing.T) {
	setupProject(t)
	require.NoError(t, files.InitProjectStructure())

	out, err := executeHistory(t)
	require.NoError(t, err)
	assert.Contains(t, out, "No submissions yet.")
}

func TestHistoryCommand_ListsSubmissions(t *testing.T) {
	setupProject(t)
	newRecipeServer(t, http.StatusCreated, `{}`)

	_, err := executeCreate(t, soupArgs...)
	require.NoError(t, err)

	// Validation failures never reach the journal
	_, err = executeCreate(t, "--title", "Nothing")
	require.Error(t, err)

	out, err := executeHistory(t, "--output", "json")
	require.NoError(t, err)

	var entries []journal.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Soup", entries[0].Title)
	assert.Equal(t, journal.StatusSucceeded, entries[0].Status)
	assert.Equal(t, 2, entries[0].IngredientCount)

	text, err := executeHistory(t)
	require.NoError(t, err)
	assert.Contains(t, text, "Soup")
	assert.Contains(t, text, "succeeded")
}

func TestHistoryCommand_NotInitialized(t *testing.T) {
	setupProject(t)

	_, err := executeHistory(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recipes init")
}

func TestHistoryCommand_Disabled(t *testing.T) {
	setupProject(t)
	require.NoError(t, files.InitProjectStructure())
	t.Setenv("RECIPES_JOURNAL_ENABLED", "false")
	_, stderr := captureCLI(t, "")

	out, err := executeHistory(t)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, stderr.String(), "submission history is disabled")
}

package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

func TestConfluenceSpaces(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.confluence.spaces = []domain.Space{{Key: "ENG", Name: "Engineering", Type: "global"}}

	out, err := runCommand(t, "", "wiki", "spaces")

	require.NoError(t, err)
	assert.Contains(t, out, "Engineering (global)")
}

func TestConfluenceSpaces_Empty(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := runCommand(t, "", "confluence", "spaces")
	require.NoError(t, err)
	assert.Contains(t, out, "No spaces found.")
}

func TestConfluencePages(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.confluence.pages = []domain.Page{{ID: "65537", Title: "Runbook"}, {ID: "65538", Title: "Onboarding"}}

	out, err := runCommand(t, "", "confluence", "pages", "ENG")

	require.NoError(t, err)
	assert.Equal(t, "ENG", ts.confluence.gotSpace)
	assert.Contains(t, out, "Runbook")
	assert.Contains(t, out, "Total: 2 pages")
}

func TestConfluencePage_RendersPlainText(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.confluence.page = &domain.Page{
		ID: "65537", Title: "Runbook", SpaceKey: "ENG", Version: 3,
		Body: "<h1>Restart</h1><p>Run <strong>make restart</strong></p>",
	}

	out, err := runCommand(t, "", "confluence", "page", "65537")

	require.NoError(t, err)
	assert.Contains(t, out, "ID: 65537  Space: ENG  Version: 3")
	assert.Contains(t, out, "Restart")
	assert.Contains(t, out, "Run make restart")
	assert.NotContains(t, out, "<strong>")
}

func TestConfluencePage_Markdown(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.confluence.page = &domain.Page{
		ID: "65537", Title: "Runbook",
		Body: "<h1>Restart</h1><p>Run <strong>make restart</strong></p>",
	}

	out, err := runCommand(t, "", "confluence", "page", "65537", "--markdown")

	require.NoError(t, err)
	assert.Contains(t, out, "# Restart")
	assert.Contains(t, out, "**make restart**")
}

func TestConfluencePage_JSONKeepsStorageBody(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.confluence.page = &domain.Page{ID: "1", Title: "T", Body: "<p>raw</p>"}

	out, err := runCommand(t, "", "--json", "confluence", "page", "1")

	require.NoError(t, err)
	var page domain.Page
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.Equal(t, "<p>raw</p>", page.Body)
}

func TestConfluence_NotConnected(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.confluence.err = domain.ErrNotInitialized

	_, err := runCommand(t, "", "confluence", "spaces")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "devsync credentials set confluence")
}

package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	setupTestServices(t)

	out, err := runCommand(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "scholia version")
}

func TestIngestCommand(t *testing.T) {
	setupTestServices(t)
	path := writeFixtureFile(t)

	out, err := runCommand(t, "ingest", path)

	require.NoError(t, err)
	assert.Contains(t, out, "heuristic")
	assert.Contains(t, out, "Ingested 1 document(s).")
}

func TestIngestCommand_MissingFile(t *testing.T) {
	setupTestServices(t)
	missing := filepath.Join(t.TempDir(), "absent.txt")

	out, err := runCommand(t, "ingest", missing)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 files failed")
	assert.Contains(t, out, missing)
}

func TestSearchCommand(t *testing.T) {
	ts := setupTestServices(t)
	ingestFixtureFile(t, ts)

	out, err := runCommand(t, "search", "radium")

	require.NoError(t, err)
	assert.Contains(t, out, "Results:")
	assert.Contains(t, out, "curie.txt")
	assert.Contains(t, out, "1.00")
}

func TestSearchCommand_NoResults(t *testing.T) {
	setupTestServices(t)

	out, err := runCommand(t, "search", "nonexistent")

	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestDocumentListCommand(t *testing.T) {
	ts := setupTestServices(t)
	doc := ingestFixtureFile(t, ts)

	out, err := runCommand(t, "document", "list")

	require.NoError(t, err)
	assert.Contains(t, out, doc.ID)
	assert.Contains(t, out, "curie.txt")
	assert.Contains(t, out, "Total: 1 documents")
}

func TestDocumentListCommand_Empty(t *testing.T) {
	setupTestServices(t)

	out, err := runCommand(t, "document", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No documents ingested yet.")
}

func TestDocumentShowCommand(t *testing.T) {
	ts := setupTestServices(t)
	doc := ingestFixtureFile(t, ts)

	out, err := runCommand(t, "document", "show", doc.ID)

	require.NoError(t, err)
	assert.Contains(t, out, doc.ID)
	assert.Contains(t, out, "curie.txt")
	assert.Contains(t, out, "heuristic")
}

func TestDocumentShowCommand_NotFound(t *testing.T) {
	setupTestServices(t)

	_, err := runCommand(t, "document", "show", "no-such-doc")

	assert.Error(t, err)
}

func TestDocumentContentCommand(t *testing.T) {
	ts := setupTestServices(t)
	doc := ingestFixtureFile(t, ts)

	out, err := runCommand(t, "document", "content", doc.ID)

	require.NoError(t, err)
	assert.Contains(t, out, "Marie Curie discovered radium")
}

func TestDocumentRemoveCommand(t *testing.T) {
	ts := setupTestServices(t)
	doc := ingestFixtureFile(t, ts)

	out, err := runCommand(t, "document", "remove", doc.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "removed")

	out, err = runCommand(t, "document", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No documents ingested yet.")
}

func TestAskCommand(t *testing.T) {
	ts := setupTestServices(t)
	doc := ingestFixtureFile(t, ts)

	out, err := runCommand(t, "ask", doc.ID, "What did Marie Curie discover?")

	require.NoError(t, err)
	assert.Contains(t, out, "From curie.txt:")
	assert.Contains(t, out, "radium")
}

func TestAskCommand_UnknownDocument(t *testing.T) {
	setupTestServices(t)

	_, err := runCommand(t, "ask", "no-such-doc", "anything?")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load document")
}

func TestTopicsCommand(t *testing.T) {
	ts := setupTestServices(t)
	ingestFixtureFile(t, ts)

	out, err := runCommand(t, "topics")

	require.NoError(t, err)
	assert.Contains(t, out, "Topics:")
	assert.Contains(t, out, "study of quantum")
}

func TestTopicsCommand_UnknownTopic(t *testing.T) {
	setupTestServices(t)

	out, err := runCommand(t, "topics", "astronomy")

	require.NoError(t, err)
	assert.Contains(t, out, `No documents tagged with topic "astronomy".`)
}

func TestEntityCommand(t *testing.T) {
	ts := setupTestServices(t)
	ingestFixtureFile(t, ts)

	out, err := runCommand(t, "entity", "marie curie")

	require.NoError(t, err)
	assert.Contains(t, out, "Marie Curie")
	assert.Contains(t, out, "Mentions:")
}

func TestEntityCommand_NotFound(t *testing.T) {
	setupTestServices(t)

	_, err := runCommand(t, "entity", "nobody")

	assert.Error(t, err)
}

func TestConfigCommand_ShowsDefaults(t *testing.T) {
	ts := setupTestServices(t)

	out, err := runCommand(t, "config")

	require.NoError(t, err)
	assert.Contains(t, out, ts.config.Path())
	assert.Contains(t, out, "completion.backend:  none")
	assert.Contains(t, out, "watch.extensions:    .txt, .md, .markdown")
}

func TestConfigCommand_Init(t *testing.T) {
	ts := setupTestServices(t)

	out, err := runCommand(t, "config", "init")

	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")
	assert.FileExists(t, ts.config.Path())
}

func TestClearCommand_Forced(t *testing.T) {
	ts := setupTestServices(t)
	ingestFixtureFile(t, ts)

	out, err := runCommand(t, "clear", "-f")
	require.NoError(t, err)
	assert.Contains(t, out, "Knowledge graph cleared.")

	out, err = runCommand(t, "document", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No documents ingested yet.")
}

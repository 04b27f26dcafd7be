package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scholia-labs/scholia-cli/internal/adapters/driven/config/file"
	"github.com/scholia-labs/scholia-cli/internal/adapters/driven/extract"
	"github.com/scholia-labs/scholia-cli/internal/adapters/driven/storage/memory"
	"github.com/scholia-labs/scholia-cli/internal/chat"
	"github.com/scholia-labs/scholia-cli/internal/core/domain"
	"github.com/scholia-labs/scholia-cli/internal/core/services"
	"github.com/scholia-labs/scholia-cli/internal/knowledge"
	"github.com/scholia-labs/scholia-cli/internal/understanding"
)

// curieText has paragraphs long enough to chunk and enough structure
// for the heuristic analysis to find entities and topics.
const curieText = `Marie Curie discovered radium and polonium in Paris. Her research into radioactivity transformed modern physics and chemistry.

The study of quantum mechanics grew from such discoveries. Radium became central to early research on radiation and medicine.`

// testServices bundles the wired services so tests can reach past the
// command layer when they need a document id.
type testServices struct {
	graph  *knowledge.Graph
	ingest *services.IngestService
	config *file.ConfigStore
}

// setupTestServices wires the commands to an in-memory stack with no
// completion model, so every command runs on heuristic analysis.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	graph := knowledge.NewGraph()
	store := memory.NewGraphStore()
	ingest := services.NewIngestService(graph, store, extract.Default(), understanding.New(nil))
	cfg, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	SetServices(Services{
		Ingest:    ingest,
		Knowledge: services.NewKnowledgeService(graph, store),
		Chat:      chat.New(graph, nil),
		Config:    cfg,
	})

	return &testServices{graph: graph, ingest: ingest, config: cfg}
}

// runCommand executes the root command with args and captures output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

// ingestFixtureFile ingests curieText directly and returns the document.
func ingestFixtureFile(t *testing.T, ts *testServices) *domain.Document {
	t.Helper()

	doc, err := ts.ingest.Ingest(context.Background(), "curie.txt", []byte(curieText), domain.UnderstandOptions{})
	require.NoError(t, err)
	return doc
}

// writeFixtureFile writes curieText to a temp file and returns its path.
func writeFixtureFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "curie.txt")
	require.NoError(t, os.WriteFile(path, []byte(curieText), 0600))
	return path
}

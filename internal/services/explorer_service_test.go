package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/alimgiray/ghdash/internal/apperror"
	"github.com/alimgiray/ghdash/internal/models"
	"github.com/alimgiray/ghdash/internal/repositories"
	"github.com/alimgiray/ghdash/internal/testkit"
	"github.com/alimgiray/ghdash/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const languagesPath = "/repos/octocat/hello/languages"

func newTestExplorerService(t *testing.T, fake *testkit.FakeGitHub) *ExplorerService {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := database.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewExplorerService(
		newTestGitHubService(t, fake),
		NewLanguageService(),
		repositories.NewFetchStateRepository(db),
	)
}

func TestRevealRepositoryFetchesOnce(t *testing.T) {
	fake := testkit.NewFakeGitHub(t)
	fake.SetLanguages("octocat", "hello", map[string]int{"Go": 600, "Shell": 300, "Makefile": 100})
	service := newTestExplorerService(t, fake)

	card, err := service.LanguageCard("s1", "octocat", "hello")
	require.NoError(t, err)
	assert.Equal(t, models.FetchStateUnfetched, card.State)
	assert.Equal(t, 0, fake.Hits(languagesPath), "reading a card never fetches")

	for i := 0; i < 3; i++ {
		card, err = service.RevealRepository(context.Background(), "s1", "octocat", "hello")
		require.NoError(t, err)
	}

	assert.Equal(t, 1, fake.Hits(languagesPath))
	assert.Equal(t, models.FetchStateDone, card.State)
	require.NotNil(t, card.Breakdown)
	require.Len(t, card.Breakdown.Top, 3)
	assert.Equal(t, "Go", card.Breakdown.Top[0].Language)
	assert.Equal(t, 60.0, card.Breakdown.Top[0].Percentage)

	_, err = service.RevealRepository(context.Background(), "s2", "octocat", "hello")
	require.NoError(t, err)
	assert.Equal(t, 2, fake.Hits(languagesPath), "each session fetches on its own")
}

func TestRevealRepositoryConcurrentTriggers(t *testing.T) {
	fake := testkit.NewFakeGitHub(t)
	fake.SetLanguages("octocat", "hello", map[string]int{"Go": 1})
	service := newTestExplorerService(t, fake)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.RevealRepository(context.Background(), "s1", "octocat", "hello")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, fake.Hits(languagesPath))
}

func TestRevealRepositoryFailureIsTerminal(t *testing.T) {
	fake := testkit.NewFakeGitHub(t)
	service := newTestExplorerService(t, fake)

	card, err := service.RevealRepository(context.Background(), "s1", "octocat", "hello")
	require.NoError(t, err, "a failed card is not a request error")
	assert.Equal(t, models.FetchStateFailed, card.State)
	assert.NotEmpty(t, card.Error)

	fake.SetLanguages("octocat", "hello", map[string]int{"Go": 1})
	card, err = service.RevealRepository(context.Background(), "s1", "octocat", "hello")
	require.NoError(t, err)
	assert.Equal(t, models.FetchStateFailed, card.State)
	assert.Equal(t, 1, fake.Hits(languagesPath))
}

func TestRevealRepositoryWithoutLanguages(t *testing.T) {
	fake := testkit.NewFakeGitHub(t)
	fake.SetLanguages("octocat", "hello", map[string]int{})
	service := newTestExplorerService(t, fake)

	card, err := service.RevealRepository(context.Background(), "s1", "octocat", "hello")
	require.NoError(t, err)
	assert.Equal(t, models.FetchStateDone, card.State)
	require.NotNil(t, card.Breakdown)
	assert.True(t, card.Breakdown.Empty)
}

func TestExpandAndCollapseDirectory(t *testing.T) {
	fake := testkit.NewFakeGitHub(t)
	fake.SetContents("octocat", "hello", "",
		testkit.Entry("main.go", models.EntryTypeFile),
		testkit.Entry("docs", models.EntryTypeDir),
		testkit.Entry("README.md", models.EntryTypeFile),
		testkit.Entry("cmd", models.EntryTypeDir),
	)
	service := newTestExplorerService(t, fake)
	rootPath := "/repos/octocat/hello/contents/"

	node, err := service.ExpandDirectory(context.Background(), "s1", "octocat", "hello", "")
	require.NoError(t, err)
	assert.Equal(t, models.NodeStateExpanded, node.State)
	assert.Equal(t, []string{"cmd", "docs", "README.md", "main.go"}, entryNames(node.Entries))

	node, err = service.CollapseDirectory("s1", "octocat", "hello", "/")
	require.NoError(t, err)
	assert.Equal(t, models.NodeStateCollapsed, node.State)
	assert.Len(t, node.Entries, 4, "collapsing keeps the cached listing")

	node, err = service.ExpandDirectory(context.Background(), "s1", "octocat", "hello", "")
	require.NoError(t, err)
	assert.Equal(t, models.NodeStateExpanded, node.State)
	assert.Equal(t, 1, fake.Hits(rootPath), "re-expanding uses the cached listing")
}

func TestExpandDirectoryRetriesAfterFailure(t *testing.T) {
	fake := testkit.NewFakeGitHub(t)
	service := newTestExplorerService(t, fake)
	srcPath := "/repos/octocat/hello/contents/src"

	node, err := service.ExpandDirectory(context.Background(), "s1", "octocat", "hello", "src")
	require.NoError(t, err)
	assert.Equal(t, models.NodeStateFailed, node.State)
	assert.Equal(t, "error loading files", node.Error)

	fake.SetContents("octocat", "hello", "src", testkit.Entry("src/app.go", models.EntryTypeFile))
	node, err = service.ExpandDirectory(context.Background(), "s1", "octocat", "hello", "src")
	require.NoError(t, err)
	assert.Equal(t, models.NodeStateExpanded, node.State)
	assert.Equal(t, []string{"app.go"}, entryNames(node.Entries))
	assert.Equal(t, 2, fake.Hits(srcPath))
}

func TestCollapseFailedDirectoryResetsIt(t *testing.T) {
	fake := testkit.NewFakeGitHub(t)
	service := newTestExplorerService(t, fake)

	_, err := service.ExpandDirectory(context.Background(), "s1", "octocat", "hello", "lib")
	require.NoError(t, err)

	node, err := service.CollapseDirectory("s1", "octocat", "hello", "lib")
	require.NoError(t, err)
	assert.Equal(t, models.NodeStateCollapsed, node.State)
	assert.Empty(t, node.Error)
}

func TestExpandDirectoryRejectsRelativePaths(t *testing.T) {
	service := newTestExplorerService(t, testkit.NewFakeGitHub(t))

	for _, path := range []string{"..", "src/../../etc", "./src"} {
		_, err := service.ExpandDirectory(context.Background(), "s1", "octocat", "hello", path)
		assert.True(t, errors.Is(err, apperror.ErrValidation), path)
	}
}

func TestSortEntries(t *testing.T) {
	entries := []models.DirectoryEntry{
		{Name: "b.txt", Type: models.EntryTypeFile},
		{Name: "z", Type: models.EntryTypeDir},
		{Name: "a.txt", Type: models.EntryTypeFile},
		{Name: "a", Type: models.EntryTypeDir},
	}

	SortEntries(entries)

	assert.Equal(t, []string{"a", "z", "a.txt", "b.txt"}, entryNames(entries))
}

func entryNames(entries []models.DirectoryEntry) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name)
	}
	return names
}

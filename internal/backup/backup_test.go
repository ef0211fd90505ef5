// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeEntry writes a metadata sidecar (and, for documents, a content
// sidecar plus page stroke files) into the backup fixture.
func writeEntry(t *testing.T, root, uuid, name, typ, parent string, deleted bool, pages []string) {
	t.Helper()
	meta := fmt.Sprintf(`{"visibleName":%q,"type":%q,"parent":%q,"deleted":%v,"lastModified":"1700000000000","version":1}`,
		name, typ, parent, deleted)
	require.NoError(t, os.WriteFile(filepath.Join(root, uuid+".metadata"), []byte(meta), 0o644))

	if typ != TypeDocument {
		return
	}
	content := `{"fileType":"notebook","pages":[`
	for i, p := range pages {
		if i > 0 {
			content += ","
		}
		content += fmt.Sprintf("%q", p)
	}
	content += fmt.Sprintf(`],"pageCount":%d}`, len(pages))
	require.NoError(t, os.WriteFile(filepath.Join(root, uuid+".content"), []byte(content), 0o644))

	require.NoError(t, os.MkdirAll(filepath.Join(root, uuid), 0o755))
	for _, p := range pages {
		require.NoError(t, os.WriteFile(filepath.Join(root, uuid, p+pageExt), []byte("stub"), 0o644))
	}
}

func TestScanDir(t *testing.T) {
	root := t.TempDir()
	writeEntry(t, root, "folder-1", "Work", TypeCollection, "", false, nil)
	writeEntry(t, root, "doc-1", "Meeting notes", TypeDocument, "folder-1", false, []string{"p1", "p2"})
	writeEntry(t, root, "doc-2", "Scratch", TypeDocument, "", false, []string{"p1"})
	writeEntry(t, root, "doc-3", "Gone", TypeDocument, "", true, []string{"p1"})
	writeEntry(t, root, "doc-4", "Binned", TypeDocument, "trash", false, []string{"p1"})

	docs, err := ScanDir(root)
	require.NoError(t, err)
	require.Len(t, docs, 2, "deleted and trashed documents are skipped")

	// Sorted by display path.
	assert.Equal(t, "Scratch", docs[0].Path)
	assert.Equal(t, "Work/Meeting notes", docs[1].Path)
	assert.Len(t, docs[1].Pages, 2)
	assert.Equal(t, filepath.Join(root, "doc-1", "p1.rm"), docs[1].Pages[0])
	assert.Equal(t, int64(1700000000), docs[1].LastModified.Unix())
}

func TestScanDirNestedTrash(t *testing.T) {
	root := t.TempDir()
	writeEntry(t, root, "folder-1", "Old", TypeCollection, "trash", false, nil)
	writeEntry(t, root, "doc-1", "Inside", TypeDocument, "folder-1", false, []string{"p1"})

	docs, err := ScanDir(root)
	require.NoError(t, err)
	assert.Empty(t, docs, "documents under a trashed folder are skipped")
}

func TestScanDirLegacyNumberedPages(t *testing.T) {
	root := t.TempDir()
	meta := `{"visibleName":"Legacy","type":"DocumentType","parent":"","deleted":false,"lastModified":"0"}`
	require.NoError(t, os.WriteFile(filepath.Join(root, "doc-1.metadata"), []byte(meta), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "doc-1"), 0o755))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, "doc-1", fmt.Sprintf("%d.rm", i)), []byte("stub"), 0o644))
	}

	docs, err := ScanDir(root)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Len(t, docs[0].Pages, 3)
	assert.Equal(t, filepath.Join(root, "doc-1", "0.rm"), docs[0].Pages[0])
}

func TestScanDirMissingPageFile(t *testing.T) {
	root := t.TempDir()
	writeEntry(t, root, "doc-1", "Partial", TypeDocument, "", false, []string{"p1"})
	// A listed page without a stroke file on disk (e.g. a text-only page).
	content := `{"fileType":"notebook","pages":["p1","p2"],"pageCount":2}`
	require.NoError(t, os.WriteFile(filepath.Join(root, "doc-1.content"), []byte(content), 0o644))

	docs, err := ScanDir(root)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Len(t, docs[0].Pages, 1, "pages without stroke files are omitted")
}

func TestStoreRebuildAndList(t *testing.T) {
	root := t.TempDir()
	writeEntry(t, root, "doc-1", "Notes", TypeDocument, "", false, []string{"p1", "p2"})
	docs, err := ScanDir(root)
	require.NoError(t, err)

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Rebuild(ctx, docs))
	// Rebuilding from the same scan is idempotent.
	require.NoError(t, store.Rebuild(ctx, docs))

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "doc-1", entries[0].UUID)
	assert.Equal(t, "Notes", entries[0].Path)
	assert.Equal(t, 2, entries[0].PageCount)
}

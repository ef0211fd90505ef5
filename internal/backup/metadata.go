// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package backup reads a local copy of the tablet's data directory: the
// per-document metadata/content sidecar files and the page stroke files
// they point at. It also maintains a small SQLite catalog of the backup
// so other tooling can query the document tree without rescanning.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	// TypeDocument and TypeCollection are the two entry types the
	// tablet records in its metadata files.
	TypeDocument   = "DocumentType"
	TypeCollection = "CollectionType"

	// trashParent marks entries moved to the tablet's trash.
	trashParent = "trash"

	pageExt = ".rm"
)

// Metadata mirrors a <uuid>.metadata sidecar file.
type Metadata struct {
	VisibleName  string `json:"visibleName"`
	Type         string `json:"type"`
	Parent       string `json:"parent"`
	Deleted      bool   `json:"deleted"`
	Pinned       bool   `json:"pinned"`
	LastModified string `json:"lastModified"` // epoch milliseconds, as a string
	Version      int    `json:"version"`
}

// Content mirrors a <uuid>.content sidecar file. Older firmware wrote
// no page list; pages are then numbered files under the document dir.
type Content struct {
	FileType        string   `json:"fileType"`
	Pages           []string `json:"pages"`
	PageCount       int      `json:"pageCount"`
	CoverPageNumber int      `json:"coverPageNumber"`
}

// Document is one notebook in the backup, with its display path resolved
// through the folder hierarchy and its page files located on disk.
type Document struct {
	UUID         string    `json:"uuid" yaml:"uuid"`
	Name         string    `json:"name" yaml:"name"`
	Path         string    `json:"path" yaml:"path"`
	Parent       string    `json:"parent,omitempty" yaml:"parent,omitempty"`
	LastModified time.Time `json:"last_modified" yaml:"last_modified"`

	// Pages holds the page stroke files that exist on disk, in page
	// order. Pages whose stroke file is missing (text-only pages, or an
	// incomplete backup) are omitted.
	Pages []string `json:"pages" yaml:"pages"`
}

// ReadMetadata decodes one metadata sidecar file.
func ReadMetadata(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("reading metadata: %w", err)
	}
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return Metadata{}, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return m, nil
}

// ReadContent decodes one content sidecar file.
func ReadContent(path string) (Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Content{}, fmt.Errorf("reading content: %w", err)
	}
	var c Content
	if err := json.Unmarshal(data, &c); err != nil {
		return Content{}, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return c, nil
}

// ScanDir enumerates the documents in a backup directory, skipping
// deleted and trashed entries and resolving folder paths. Results are
// sorted by display path.
func ScanDir(root string) ([]Document, error) {
	matches, err := filepath.Glob(filepath.Join(root, "*.metadata"))
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	all := make(map[string]Metadata, len(matches))
	for _, path := range matches {
		uuid := strings.TrimSuffix(filepath.Base(path), ".metadata")
		m, err := ReadMetadata(path)
		if err != nil {
			return nil, err
		}
		all[uuid] = m
	}

	var docs []Document
	for uuid, m := range all {
		if m.Type != TypeDocument || m.Deleted {
			continue
		}
		path, trashed := resolvePath(uuid, all)
		if trashed {
			continue
		}
		doc := Document{
			UUID:         uuid,
			Name:         m.VisibleName,
			Path:         path,
			Parent:       m.Parent,
			LastModified: parseModified(m.LastModified),
			Pages:        pageFiles(root, uuid),
		}
		docs = append(docs, doc)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

// resolvePath walks the parent chain to build "folder/sub/name". An
// entry anywhere under the trash, or under a missing parent, is skipped.
func resolvePath(uuid string, all map[string]Metadata) (string, bool) {
	parts := []string{all[uuid].VisibleName}
	seen := map[string]bool{uuid: true}

	parent := all[uuid].Parent
	for parent != "" {
		if parent == trashParent {
			return "", true
		}
		p, ok := all[parent]
		if !ok || seen[parent] {
			break
		}
		seen[parent] = true
		parts = append([]string{p.VisibleName}, parts...)
		parent = p.Parent
	}
	return strings.Join(parts, "/"), false
}

// pageFiles locates the document's page stroke files. Firmware with a
// page list in the content file names pages by UUID; older backups
// number them 0.rm, 1.rm, and so on.
func pageFiles(root, uuid string) []string {
	var pages []string

	content, err := ReadContent(filepath.Join(root, uuid+".content"))
	if err == nil && len(content.Pages) > 0 {
		for _, pageID := range content.Pages {
			p := filepath.Join(root, uuid, pageID+pageExt)
			if _, err := os.Stat(p); err == nil {
				pages = append(pages, p)
			}
		}
		return pages
	}

	for i := 0; ; i++ {
		p := filepath.Join(root, uuid, strconv.Itoa(i)+pageExt)
		if _, err := os.Stat(p); err != nil {
			break
		}
		pages = append(pages, p)
	}
	return pages
}

// parseModified converts the tablet's epoch-milliseconds string. A
// missing or malformed value yields the zero time rather than an error.
func parseModified(s string) time.Time {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

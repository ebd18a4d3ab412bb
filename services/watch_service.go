package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// IngestWatcher watches a local directory and submits new or changed files
// to the ingestion gateway. Files whose content hash is unchanged since the
// last submission are skipped, so a rewrite of identical bytes is not
// re-ingested.
type IngestWatcher struct {
	ingest IngestService
	dir    string

	mu   sync.Mutex
	seen map[string]string // path -> content hash of last submission
}

// NewIngestWatcher creates a watcher over the given directory.
func NewIngestWatcher(ingest IngestService, dir string) *IngestWatcher {
	return &IngestWatcher{
		ingest: ingest,
		dir:    dir,
		seen:   make(map[string]string),
	}
}

// Watch scans the directory once, then blocks handling file events until the
// context is cancelled.
func (w *IngestWatcher) Watch(ctx context.Context) {
	w.scanDirectory(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("WATCHER ERROR: Failed to create file watcher: %v", err)
		return
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		log.Printf("WATCHER ERROR: Failed to watch %s: %v", w.dir, err)
		return
	}
	log.Printf("WATCHER: Watching %s for new documents", w.dir)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !isSupportedFile(event.Name) {
				continue
			}
			log.Printf("WATCHER EVENT: %s", event)
			w.submit(ctx, event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("WATCHER ERROR: %v", err)
		}
	}
}

// scanDirectory submits every supported file already present in the directory.
func (w *IngestWatcher) scanDirectory(ctx context.Context) {
	err := filepath.Walk(w.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && isSupportedFile(path) {
			w.submit(ctx, path)
		}
		return nil
	})
	if err != nil {
		log.Printf("WATCHER ERROR: Error walking the path %s: %v", w.dir, err)
	}
}

func (w *IngestWatcher) submit(ctx context.Context, path string) {
	hash, err := calculateFileHash(path)
	if err != nil {
		log.Printf("WATCHER WARN: Could not hash file %s: %v", path, err)
		return
	}

	w.mu.Lock()
	unchanged := w.seen[path] == hash
	w.mu.Unlock()
	if unchanged {
		return
	}

	fileType := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	result := w.ingest.IngestDocument(ctx, path, fileType)
	log.Printf("WATCHER: %s", result)
	if strings.HasPrefix(result, "Error") {
		return
	}

	w.mu.Lock()
	w.seen[path] = hash
	w.mu.Unlock()
}

func isSupportedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".txt", ".md", ".docx":
		return true
	default:
		return false
	}
}

func calculateFileHash(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}

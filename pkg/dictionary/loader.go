package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// ChunkLoader lazily loads chunked word-list files into a presence trie.
// Unlike a ranked completion dictionary, every entry carries no payload
// beyond membership: a loaded word is either suppressed/filtered or it
// is not.
type ChunkLoader struct {
	dirPath      string
	loadedChunks map[int]bool
	chunkWords   map[int][]string // words contributed by each chunk, for unload
	trie         *patricia.Trie
	totalWords   int
	mu           sync.RWMutex
	loadingCh    chan int
	done         chan struct{}
	errorCount   map[int]int
	maxRetries   int
}

// ChunkInfo describes a single chunk file on disk.
type ChunkInfo struct {
	ChunkID   int
	Filename  string
	WordCount int
	Exists    bool
}

// LoaderStats reports the loader's current progress.
type LoaderStats struct {
	TotalWords      int
	LoadedChunks    int
	AvailableChunks int
	IsLoading       bool
}

// NewChunkLoader creates a loader over dirPath, where chunk files are
// named dict_NNNN.bin.
func NewChunkLoader(dirPath string) *ChunkLoader {
	return &ChunkLoader{
		dirPath:      dirPath,
		loadedChunks: make(map[int]bool),
		chunkWords:   make(map[int][]string),
		trie:         patricia.NewTrie(),
		loadingCh:    make(chan int, 10),
		done:         make(chan struct{}),
		errorCount:   make(map[int]int),
		maxRetries:   3,
	}
}

// GetAvailableChunks scans dirPath for chunk files.
func (cl *ChunkLoader) GetAvailableChunks() ([]ChunkInfo, error) {
	pattern := filepath.Join(cl.dirPath, "dict_*.bin")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		basename := filepath.Base(file)
		if strings.HasPrefix(basename, "dict_") && strings.HasSuffix(basename, ".bin") {
			idStr := strings.TrimSuffix(strings.TrimPrefix(basename, "dict_"), ".bin")
			if chunkID, err := strconv.Atoi(idStr); err == nil {
				wordCount, err := cl.getChunkWordCount(file)
				if err != nil {
					log.Warnf("Failed to get word count for chunk %s: %v", file, err)
					wordCount = 0
				}
				chunks = append(chunks, ChunkInfo{
					ChunkID:   chunkID,
					Filename:  file,
					WordCount: wordCount,
					Exists:    true,
				})
			}
		}
	}

	sort.Slice(chunks, func(i, j int) bool { return chunks[i].ChunkID < chunks[j].ChunkID })
	return chunks, nil
}

func (cl *ChunkLoader) getChunkWordCount(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return 0, err
	}
	return int(wordCount), nil
}

// StartLazyLoading scans dirPath and queues every chunk for background
// loading.
func (cl *ChunkLoader) StartLazyLoading() error {
	chunks, err := cl.GetAvailableChunks()
	if err != nil {
		return fmt.Errorf("failed to get available chunks: %w", err)
	}
	if len(chunks) == 0 {
		return fmt.Errorf("no chunk files found in %s", cl.dirPath)
	}

	log.Debugf("Found %d chunk files", len(chunks))
	go cl.backgroundLoader()

	for _, chunk := range chunks {
		select {
		case cl.loadingCh <- chunk.ChunkID:
			log.Debugf("Queued chunk %d for loading", chunk.ChunkID)
		case <-time.After(100 * time.Millisecond):
			log.Warnf("Loading queue full, chunk %d will be loaded later", chunk.ChunkID)
		}
	}
	return nil
}

func (cl *ChunkLoader) backgroundLoader() {
	for {
		select {
		case chunkID := <-cl.loadingCh:
			if err := cl.loadChunk(chunkID); err != nil {
				log.Errorf("Failed to load chunk %d: %v", chunkID, err)

				cl.mu.Lock()
				cl.errorCount[chunkID]++
				errCount := cl.errorCount[chunkID]
				cl.mu.Unlock()

				if errCount < cl.maxRetries {
					log.Debugf("Retrying chunk %d (attempt %d/%d)", chunkID, errCount+1, cl.maxRetries)
					go func(id int) {
						time.Sleep(time.Duration(errCount) * time.Second)
						select {
						case cl.loadingCh <- id:
						case <-cl.done:
						}
					}(chunkID)
				} else {
					log.Errorf("Chunk %d failed %d times, giving up", chunkID, cl.maxRetries)
				}
			} else {
				log.Debugf("Successfully loaded chunk %d", chunkID)
			}
		case <-cl.done:
			return
		}
	}
}

// chunk on-disk layout: int32 LE entry count, then per entry a uint16 LE
// key length, the key bytes, a uint16 LE value length, the value bytes.
func (cl *ChunkLoader) loadChunk(chunkID int) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if cl.loadedChunks[chunkID] {
		return nil
	}

	filename := filepath.Join(cl.dirPath, fmt.Sprintf("dict_%04d.bin", chunkID))
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open chunk file %s: %w", filename, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	var entryCount int32
	if err := binary.Read(reader, binary.LittleEndian, &entryCount); err != nil {
		return fmt.Errorf("failed to read chunk header: %w", err)
	}

	log.Debugf("Loading chunk %d with %d entries", chunkID, entryCount)

	words := make([]string, 0, entryCount)
	count := 0
	for count < int(entryCount) {
		key, err := readLengthPrefixed(reader)
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("failed to read key: %w", err)
		}
		value, err := readLengthPrefixed(reader)
		if err != nil {
			return fmt.Errorf("failed to read value: %w", err)
		}

		cl.trie.Set(pairKey(key, value), present)
		words = append(words, key+keySep+value)
		cl.totalWords++
		count++
	}

	cl.chunkWords[chunkID] = words
	cl.loadedChunks[chunkID] = true
	log.Debugf("Chunk %d loaded: %d entries", chunkID, count)
	return nil
}

func readLengthPrefixed(r io.Reader) (string, error) {
	var n uint16
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// UnloadChunk removes a loaded chunk's words and rebuilds the trie.
func (cl *ChunkLoader) UnloadChunk(chunkID int) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if !cl.loadedChunks[chunkID] {
		return fmt.Errorf("chunk %d is not loaded", chunkID)
	}

	log.Debugf("Unloading chunk %d", chunkID)
	delete(cl.loadedChunks, chunkID)

	removed, exists := cl.chunkWords[chunkID]
	if !exists {
		return fmt.Errorf("chunk %d word data not found", chunkID)
	}
	cl.totalWords -= len(removed)
	delete(cl.chunkWords, chunkID)

	cl.rebuildTrie()
	log.Debugf("Successfully unloaded chunk %d", chunkID)
	return nil
}

func (cl *ChunkLoader) rebuildTrie() {
	cl.trie = patricia.NewTrie()
	for chunkID, loaded := range cl.loadedChunks {
		if !loaded {
			continue
		}
		for _, w := range cl.chunkWords[chunkID] {
			cl.trie.Set(patricia.Prefix(w), present)
		}
	}
	log.Debugf("Trie rebuilt with %d loaded chunks", len(cl.loadedChunks))
}

// Trie returns the loaded presence trie, keyed key+"\x00"+value.
func (cl *ChunkLoader) Trie() *patricia.Trie {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return cl.trie
}

// Contains reports whether (key, value) has been loaded.
func (cl *ChunkLoader) Contains(key, value string) bool {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return cl.trie.Get(pairKey(key, value)) != nil
}

// Stats reports the loader's current progress.
func (cl *ChunkLoader) Stats() LoaderStats {
	cl.mu.RLock()
	defer cl.mu.RUnlock()

	chunks, _ := cl.GetAvailableChunks()
	return LoaderStats{
		TotalWords:      cl.totalWords,
		LoadedChunks:    len(cl.loadedChunks),
		AvailableChunks: len(chunks),
		IsLoading:       len(cl.loadingCh) > 0,
	}
}

// Stop stops the background loading goroutine.
func (cl *ChunkLoader) Stop() {
	close(cl.done)
}

// LoadSpecificChunk loads chunkID synchronously if not already loaded.
func (cl *ChunkLoader) LoadSpecificChunk(chunkID int) error {
	cl.mu.RLock()
	alreadyLoaded := cl.loadedChunks[chunkID]
	cl.mu.RUnlock()

	if alreadyLoaded {
		return nil
	}
	return cl.loadChunk(chunkID)
}

// GetLoadedChunkIDs returns the currently loaded chunk IDs, sorted.
func (cl *ChunkLoader) GetLoadedChunkIDs() []int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()

	ids := make([]int, 0, len(cl.loadedChunks))
	for chunkID, loaded := range cl.loadedChunks {
		if loaded {
			ids = append(ids, chunkID)
		}
	}
	sort.Ints(ids)
	return ids
}

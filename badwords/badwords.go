package badwords

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/transport-senegal/api/logger"
	"github.com/transport-senegal/api/models/route_models"
)

//go:embed words.txt
var defaultList string

// badWordsMap holds normalized entries; multi-word entries are matched as
// whole phrases.
var (
	badWordsMap map[string]struct{}
	mu          sync.RWMutex
)

func init() {
	if err := Load(strings.NewReader(defaultList)); err != nil {
		logger.ErrorLogger.Errorf("failed to load embedded bad words list: %v", err)
	}
}

// Load replaces the current list with one word or phrase per line. Blank
// lines and lines starting with # are ignored.
func Load(r io.Reader) error {
	next := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if word := route_models.Normalize(line); word != "" {
			next[word] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read bad words: %w", err)
	}

	mu.Lock()
	badWordsMap = next
	mu.Unlock()
	return nil
}

// LoadBadWords loads the list from a file, replacing the embedded one.
func LoadBadWords(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to read bad words file: %w", err)
	}
	defer f.Close()

	if err := Load(f); err != nil {
		return err
	}
	logger.InfoLogger.Infof("Loaded %d bad words from %s", Count(), filename)
	return nil
}

// ContainsBadWords reports whether text contains a listed word or phrase.
// Matching ignores case and accents and only considers whole words.
func ContainsBadWords(text string) bool {
	normalized := route_models.Normalize(text)
	if normalized == "" {
		return false
	}
	padded := " " + normalized + " "
	words := strings.Fields(normalized)

	mu.RLock()
	defer mu.RUnlock()

	for _, word := range words {
		if _, found := badWordsMap[word]; found {
			logger.WarnLogger.Debugf("Bad word detected: %s", word)
			return true
		}
	}
	for entry := range badWordsMap {
		if strings.Contains(entry, " ") && strings.Contains(padded, " "+entry+" ") {
			logger.WarnLogger.Debugf("Bad phrase detected: %s", entry)
			return true
		}
	}
	return false
}

// AddBadWord adds a word or phrase to the list.
func AddBadWord(badWord string) error {
	word := route_models.Normalize(badWord)
	if word == "" {
		return errors.New("bad word must not be empty")
	}

	mu.Lock()
	defer mu.Unlock()
	if badWordsMap == nil {
		badWordsMap = make(map[string]struct{})
	}
	badWordsMap[word] = struct{}{}
	return nil
}

// RemoveBadWord removes a word and reports whether it was listed.
func RemoveBadWord(badWord string) bool {
	word := route_models.Normalize(badWord)

	mu.Lock()
	defer mu.Unlock()
	if _, found := badWordsMap[word]; found {
		delete(badWordsMap, word)
		return true
	}
	return false
}

// ListBadWords returns the current list, sorted.
func ListBadWords() []string {
	mu.RLock()
	defer mu.RUnlock()

	words := make([]string, 0, len(badWordsMap))
	for word := range badWordsMap {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}

func Count() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(badWordsMap)
}

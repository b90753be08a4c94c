// Package tagdata loads and indexes the codeblock reference table that maps
// block categories and action names to the fixed tag items appended to a
// block's chest. The table is optional: when it is missing or malformed,
// every lookup degrades to "no tags" and action name checking is disabled.
package tagdata

import (
	"context"
	"encoding/json"
	"os"

	"github.com/agext/levenshtein"

	"github.com/Ampersand-S/dfpy/internal/ctxlog"
	"github.com/Ampersand-S/dfpy/pyre/item"
)

// DefaultPath is where the shipped tag table lives relative to the working
// directory.
const DefaultPath = "data/data.json"

// Store is the indexed tag table. The zero value is a valid empty store
// whose lookups always report no tags. Read-only after Load.
type Store struct {
	table  map[string]map[string][]item.WireEntry
	extras map[string][]item.WireEntry
}

// Load reads and indexes the tag table at path. A missing or malformed file
// is a warned, recoverable condition: the returned store is empty, never nil.
func Load(ctx context.Context, path string) *Store {
	logger := ctxlog.FromContext(ctx)

	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("codeblock tag table not found; item tags and action checking are disabled",
			"path", path, "error", err)
		return &Store{}
	}
	if err := validate(raw); err != nil {
		logger.Warn("codeblock tag table is malformed; item tags and action checking are disabled",
			"path", path, "error", err)
		return &Store{}
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal(raw, &root); err != nil {
		logger.Warn("codeblock tag table is not valid JSON; item tags and action checking are disabled",
			"path", path, "error", err)
		return &Store{}
	}

	store := &Store{
		table:  make(map[string]map[string][]item.WireEntry),
		extras: make(map[string][]item.WireEntry),
	}
	for category, payload := range root {
		if category == "extras" {
			if err := json.Unmarshal(payload, &store.extras); err != nil {
				logger.Warn("skipping unreadable extras section of tag table", "error", err)
			}
			continue
		}
		var actions map[string][]item.WireEntry
		if err := json.Unmarshal(payload, &actions); err != nil {
			logger.Warn("skipping unreadable tag table category", "category", category, "error", err)
			continue
		}
		store.table[category] = actions
	}
	logger.Debug("codeblock tag table loaded", "path", path, "categories", len(store.table))
	return store
}

// Lookup returns the tag entries for a block. Categories listed in the
// table's extras section take their tags from there regardless of action;
// otherwise the category's action map is consulted. An unknown action in a
// known category produces a warning with a closest-match hint when one is
// close enough. A nil store behaves like an empty one.
func (s *Store) Lookup(ctx context.Context, category, action string) ([]item.WireEntry, bool) {
	if s == nil {
		return nil, false
	}
	if tags, ok := s.extras[category]; ok {
		return tags, true
	}
	actions, ok := s.table[category]
	if !ok {
		return nil, false
	}
	if tags, ok := actions[action]; ok {
		return tags, true
	}

	logger := ctxlog.FromContext(ctx)
	if hint, ok := closestMatch(action, actions); ok {
		logger.Warn("codeblock action not recognized",
			"category", category, "action", action, "didYouMean", hint)
	} else {
		logger.Warn("codeblock action not recognized; check spelling and spacing",
			"category", category, "action", action)
	}
	return nil, false
}

// matchCutoff mirrors difflib's default: suggestions below this similarity
// are noise.
const matchCutoff = 0.6

func closestMatch(name string, candidates map[string][]item.WireEntry) (string, bool) {
	best, bestScore := "", 0.0
	for candidate := range candidates {
		if score := levenshtein.Similarity(name, candidate, nil); score > bestScore {
			best, bestScore = candidate, score
		}
	}
	return best, bestScore >= matchCutoff
}

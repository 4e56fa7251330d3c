package vocab

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// Reserved indices baked into the trained model's embedding. Changing any
// of these breaks compatibility with the artifact.
const (
	IndexPad    = 0
	IndexStart  = 1
	IndexUnk    = 2
	IndexUnused = 3
)

// Vocabulary is the fixed word -> index map the model was trained against,
// loaded once at startup and read-only afterwards.
type Vocabulary struct {
	index map[string]int32
	size  int32
}

// Load reads a JSON object of word -> index from path. size caps usable
// indices: any index >= size resolves to the UNK token at lookup time, the
// same filtering the model saw during training.
func Load(path string, size int) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("[Vocabulary] failed to read %s: %w", path, err)
	}

	var index map[string]int32
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("[Vocabulary] failed to parse %s: %w", path, err)
	}
	if len(index) == 0 {
		return nil, fmt.Errorf("[Vocabulary] %s contains no entries", path)
	}

	slog.Info("[Vocabulary] Loaded word index",
		slog.String("path", path),
		slog.Int("entries", len(index)),
		slog.Int("usable_size", size))

	return &Vocabulary{index: index, size: int32(size)}, nil
}

// Lookup maps a word to its model index. Unknown words and words whose
// index falls outside the usable vocabulary both resolve to UNK.
func (v *Vocabulary) Lookup(word string) int32 {
	idx, ok := v.index[word]
	if !ok || idx >= v.size {
		return IndexUnk
	}
	return idx
}

// Len reports the number of loaded entries.
func (v *Vocabulary) Len() int {
	return len(v.index)
}

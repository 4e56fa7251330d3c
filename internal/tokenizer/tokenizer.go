package tokenizer

import (
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"

	"github.com/Hanzlah10/IMDB-Review-RNN/internal/vocab"
)

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]+>`)
)

// Tokenizer turns raw review text into the fixed-length integer sequence
// the model expects. The encoding convention (lowercase + whitespace split,
// OOV -> UNK, PRE-padding and PRE-truncation with pad value 0) is the one
// the vocabulary and model were paired with; none of it is adjustable.
type Tokenizer struct {
	vocab     *vocab.Vocabulary
	seqLength int
}

func New(v *vocab.Vocabulary, seqLength int) *Tokenizer {
	return &Tokenizer{vocab: v, seqLength: seqLength}
}

// RemoveLinks strips markdown links (keeping the anchor text) and bare URLs.
func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1")
	input = urlPattern.ReplaceAllString(input, "")

	return input
}

// Normalize renders any markdown to plain text, drops links and HTML tags,
// lowercases, and collapses whitespace. Reviews pasted from the web often
// carry markup the vocabulary has no entries for.
func Normalize(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := tagPattern.ReplaceAllString(string(output), " ")
	plain = RemoveLinks(plain)
	plain = strings.ToLower(plain)

	return strings.Join(strings.Fields(plain), " ")
}

// Encode maps normalized text to vocabulary indices, one per whitespace
// token. The second return value counts tokens that resolved to UNK.
func (t *Tokenizer) Encode(text string) ([]int32, int) {
	words := strings.Fields(text)
	encoded := make([]int32, 0, len(words))
	unknown := 0

	for _, word := range words {
		idx := t.vocab.Lookup(word)
		if idx == vocab.IndexUnk {
			unknown++
		}
		encoded = append(encoded, idx)
	}

	return encoded, unknown
}

// Pad fits a sequence to the model's fixed input length: sequences longer
// than the limit keep their tail, shorter ones are left-padded with zeros.
// Matches the keras pad_sequences defaults the model was trained with.
func (t *Tokenizer) Pad(seq []int32) []int32 {
	padded := make([]int32, t.seqLength)

	if len(seq) >= t.seqLength {
		copy(padded, seq[len(seq)-t.seqLength:])
		return padded
	}

	copy(padded[t.seqLength-len(seq):], seq)
	return padded
}

// Sequence runs Normalize, Encode and Pad in one pass and reports the
// pre-padding token count and how many tokens were out of vocabulary.
func (t *Tokenizer) Sequence(text string) (padded []int32, tokens int, unknown int) {
	encoded, unknown := t.Encode(Normalize(text))
	return t.Pad(encoded), len(encoded), unknown
}

// SequenceLength reports the fixed model input length.
func (t *Tokenizer) SequenceLength() int {
	return t.seqLength
}

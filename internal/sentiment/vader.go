package sentiment

import (
	"github.com/jonreiter/govader"

	"github.com/Hanzlah10/IMDB-Review-RNN/internal/tokenizer"
)

var analyzer = govader.NewSentimentIntensityAnalyzer()

// LexiconScore returns the VADER compound score for the review, shown next
// to the model prediction in the metrics panel. Advisory only; the label
// always comes from the model.
func LexiconScore(text string) float64 {
	plainText := tokenizer.Normalize(text)

	sentiment := analyzer.PolarityScores(plainText)
	return sentiment.Compound
}

package sentiment

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/Hanzlah10/IMDB-Review-RNN/internal/models"
	"github.com/Hanzlah10/IMDB-Review-RNN/internal/tokenizer"
)

// ErrEmptyReview is returned when the submitted text is empty or whitespace
// only; such input never reaches the model.
var ErrEmptyReview = errors.New("review text is empty")

// Predictor is the slice of the model runtime the pipeline needs.
type Predictor interface {
	Predict(seq []int32) (float64, error)
}

// Analyzer is the full text-to-prediction pipeline: normalize, encode
// against the fixed vocabulary, pad, run the model, threshold at 0.5.
// Constructed once at startup around the loaded artifacts and immutable
// afterwards.
type Analyzer struct {
	tokenizer *tokenizer.Tokenizer
	predictor Predictor
}

func NewAnalyzer(t *tokenizer.Tokenizer, p Predictor) *Analyzer {
	return &Analyzer{tokenizer: t, predictor: p}
}

// Analyze classifies one review. Deterministic: the same text always yields
// the same label and confidence.
func (a *Analyzer) Analyze(text string) (models.Prediction, error) {
	if strings.TrimSpace(text) == "" {
		return models.Prediction{}, ErrEmptyReview
	}

	seq, tokens, unknown := a.tokenizer.Sequence(text)

	probability, err := a.predictor.Predict(seq)
	if err != nil {
		slog.Error("[Analyzer] Inference failed",
			slog.String("error", err.Error()))
		return models.Prediction{}, err
	}

	label, confidence := LabelFromProbability(probability)

	return models.Prediction{
		Label:       label,
		Probability: probability,
		Confidence:  confidence,
		VaderScore:  LexiconScore(text),
		Stats: models.ReviewStats{
			WordCount:    len(strings.Fields(text)),
			TokenCount:   tokens,
			UnknownCount: unknown,
		},
	}, nil
}

// LabelFromProbability thresholds the model output at 0.5 and scales the
// distance from the threshold to a percentage in [50,100].
func LabelFromProbability(p float64) (string, float64) {
	if p >= 0.5 {
		return models.LabelPositive, p * 100
	}
	return models.LabelNegative, (1 - p) * 100
}

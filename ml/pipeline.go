package ml

import (
	"context"
	"disaster-response/errors"
	"fmt"
)

// Pipeline chains count vectorization, tf-idf and a multi-output forest.
// It works on already tokenized documents.
type Pipeline struct {
	Vectorizer *CountVectorizer
	Tfidf      *TfidfTransformer
	Classifier *MultiOutputClassifier
}

func NewPipeline(params ForestParams, maxVocabulary, jobs int) *Pipeline {
	return &Pipeline{
		Vectorizer: NewCountVectorizer(maxVocabulary),
		Tfidf:      NewTfidfTransformer(),
		Classifier: NewMultiOutputClassifier(params, jobs),
	}
}

func (p *Pipeline) Fit(ctx context.Context, docs [][]string, Y [][]int) error {
	if len(docs) != len(Y) {
		return fmt.Errorf("pipeline fit: %d documents but %d label rows", len(docs), len(Y))
	}
	counts := p.Vectorizer.FitTransform(docs)
	nFeatures := p.Vectorizer.Features()
	X := p.Tfidf.FitTransform(counts, nFeatures)
	return p.Classifier.Fit(ctx, X, Y, nFeatures)
}

func (p *Pipeline) Predict(docs [][]string) ([][]int, error) {
	if !p.Vectorizer.Fitted() || !p.Classifier.Fitted() {
		return nil, errors.ErrNotFitted
	}
	X := p.Tfidf.Transform(p.Vectorizer.Transform(docs))
	return p.Classifier.Predict(X), nil
}

// Score is the subset accuracy: a row counts only when every label is right.
func (p *Pipeline) Score(docs [][]string, Y [][]int) (float64, error) {
	predicted, err := p.Predict(docs)
	if err != nil {
		return 0, err
	}
	return SubsetAccuracy(Y, predicted), nil
}

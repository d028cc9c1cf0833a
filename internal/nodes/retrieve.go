package nodes

import (
	"context"
	"log"
	"regexp"
	"sort"
	"strings"

	"hyperassist/internal/core"
	"hyperassist/internal/storage"
	"hyperassist/pkg"
)

// MaxRetrievedDocs caps the retrieval result.
const MaxRetrievedDocs = 3

var wordPattern = regexp.MustCompile(`\w+`)

// RetrieveNode ranks the knowledge corpus against the redacted message by
// token overlap plus a location bonus. It only runs for store/order/policy
// intents; the flow skips it otherwise and the composer treats an empty
// result as "no relevant internal documents".
type RetrieveNode struct {
	corpus *storage.Corpus
}

// NewRetrieveNode creates a new knowledge retrieval node
func NewRetrieveNode(corpus *storage.Corpus) *RetrieveNode {
	return &RetrieveNode{corpus: corpus}
}

// Execute scores and ranks the corpus for this request
func (r *RetrieveNode) Execute(ctx context.Context, input core.NodeInput) (core.NodeOutput, error) {
	docs := r.Retrieve(input.RedactedMessage, input.RawLocation)

	log.Printf("📚 Retrieved %d docs for intent=%s", len(docs), input.Intent)

	return core.NodeOutput{
		Data: map[string]any{
			"documents": docs,
		},
		NextNode: "compose",
		Complete: false,
	}, nil
}

// Retrieve returns the top documents for the message and raw location.
// Score = size of the token-set intersection, plus 1 when the document
// location is the wildcard or exactly equals the raw request location.
// The sort is stable so tied scores keep corpus order; documents scoring
// zero are dropped.
func (r *RetrieveNode) Retrieve(message, rawLocation string) []pkg.Document {
	msgTokens := tokenSet(message)

	type scoredDoc struct {
		score int
		doc   pkg.Document
	}

	scored := make([]scoredDoc, 0, r.corpus.Len())
	for _, doc := range r.corpus.Documents() {
		overlap := 0
		for token := range tokenSet(doc.Text) {
			if msgTokens[token] {
				overlap++
			}
		}
		locScore := 0
		if doc.Location == pkg.DocumentWildcard || doc.Location == rawLocation {
			locScore = 1
		}
		scored = append(scored, scoredDoc{score: overlap + locScore, doc: doc})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	top := make([]pkg.Document, 0, MaxRetrievedDocs)
	for _, s := range scored {
		if s.score <= 0 || len(top) == MaxRetrievedDocs {
			break
		}
		top = append(top, s.doc)
	}
	return top
}

// GetName returns the node name
func (r *RetrieveNode) GetName() string {
	return "retrieve"
}

// GetType returns the node type
func (r *RetrieveNode) GetType() core.NodeType {
	return core.NodeTypeRetrieve
}

func tokenSet(text string) map[string]bool {
	tokens := wordPattern.FindAllString(strings.ToLower(text), -1)
	set := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		set[token] = true
	}
	return set
}

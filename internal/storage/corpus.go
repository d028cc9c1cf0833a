package storage

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hyperassist/pkg"
)

// Corpus is the static set of internal knowledge documents. It is loaded
// once at startup and read-only afterwards, so it needs no locking. Corpus
// order is insertion order and acts as the tie-break for retrieval scoring.
type Corpus struct {
	docs []pkg.Document
}

// NewCorpus returns the built-in generic retail corpus.
func NewCorpus() *Corpus {
	return &Corpus{docs: defaultDocuments()}
}

// LoadCorpus reads documents from a YAML file. An empty path falls back to
// the built-in corpus.
func LoadCorpus(path string) (*Corpus, error) {
	if path == "" {
		return NewCorpus(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading corpus file: %v", err)
	}

	var file struct {
		Documents []pkg.Document `yaml:"documents"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing corpus YAML: %v", err)
	}
	if len(file.Documents) == 0 {
		return nil, fmt.Errorf("corpus file %s contains no documents", path)
	}

	return &Corpus{docs: file.Documents}, nil
}

// Documents returns the corpus in insertion order. Callers must not mutate
// the returned slice.
func (c *Corpus) Documents() []pkg.Document {
	return c.docs
}

// Len returns the number of documents.
func (c *Corpus) Len() int {
	return len(c.docs)
}

func defaultDocuments() []pkg.Document {
	return []pkg.Document{
		{
			ID:       1,
			Title:    "Store Timings",
			Location: pkg.DocumentWildcard,
			Text:     "Most of our partner stores are open from 9 AM to 9 PM, but timings may vary by location. Ask with a specific city or mall name for more accurate timings.",
		},
		{
			ID:       2,
			Title:    "Order Tracking",
			Location: pkg.DocumentWildcard,
			Text:     "Orders can be tracked from the 'My Orders' section in the app or website using the order ID. Standard delivery takes 3-5 business days unless express shipping is selected.",
		},
		{
			ID:       3,
			Title:    "Refund & Returns Policy",
			Location: pkg.DocumentWildcard,
			Text:     "Most items can be returned within 7-10 days of delivery if unused and with the original bill. Refunds are processed back to the original payment method after quality check.",
		},
		{
			ID:       4,
			Title:    "Membership & Loyalty",
			Location: pkg.DocumentWildcard,
			Text:     "Loyal customers may receive personalized coupons, birthday offers, and early access to sales based on their shopping history and favorite categories.",
		},
		{
			ID:       5,
			Title:    "In-store Help",
			Location: pkg.DocumentWildcard,
			Text:     "If you are standing outside a store and feel cold, tired, or confused, you can walk in and ask any staff member at the help desk for assistance or a place to sit.",
		},
	}
}

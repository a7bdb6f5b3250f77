package fusion

// Rank is the statement rank carried over from Wikidata.
type Rank string

const (
	RankPreferred  Rank = "preferred"
	RankNormal     Rank = "normal"
	RankDeprecated Rank = "deprecated"
)

// Confidence is a coarse grounding indicator derived from the number of sources.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Meta holds the optional graph metadata attached to a relation.
// Empty fields mean the store did not provide them.
type Meta struct {
	// Rank is the statement rank ("preferred", "normal", "deprecated").
	Rank Rank `json:"rank,omitempty"`
	// PredCode is the short predicate tag (e.g. "P31").
	PredCode string `json:"pred_code,omitempty"`
	// ObjectLabel is the human-readable label of the object.
	ObjectLabel string `json:"object_label,omitempty"`
	// PredicateLabel is the human-readable label of the predicate.
	PredicateLabel string `json:"predicate_label,omitempty"`
}

// Triple is a single outgoing relation as returned by a graph store.
type Triple struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
	Meta      Meta   `json:"meta"`
}

// CitationScore is one ranked document match for a fact.
type CitationScore struct {
	// N is the 1-based source index.
	N int `json:"n"`
	// Score is the cosine similarity between the claim and the document.
	Score float64 `json:"score"`
}

// Fact is a scored and optionally cited graph relation.
type Fact struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
	Meta      Meta   `json:"meta"`
	// Score is the fusion score (normalized vector score plus bonuses). Never negative.
	Score float64 `json:"score"`
	// Citations holds at most one 1-based index into the sources.
	Citations []int `json:"citations"`
	// TopScore is the similarity of the cited document (0 on fallback).
	TopScore float64 `json:"top_score"`
	// CitationsAll lists the best matching documents in descending score order.
	CitationsAll []CitationScore `json:"citations_all"`

	candidate string
}

// Candidate returns the entity id whose neighborhood produced this fact.
func (f Fact) Candidate() string {
	return f.candidate
}

// VectorHit is a raw vector search hit resolved to a graph entity.
type VectorHit struct {
	ID      string         `json:"id"`
	Score   float32        `json:"score"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Document is an externally fetched web page used for citation matching.
type Document struct {
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Summary string `json:"summary,omitempty"`
	Text    string `json:"text,omitempty"`
	Engine  string `json:"engine,omitempty"`
}

// Source is the public projection of a Document. Its position is its footnote number.
type Source struct {
	URL    string `json:"url"`
	Title  string `json:"title,omitempty"`
	Engine string `json:"engine,omitempty"`
}

// Style controls how the answer is phrased.
type Style struct {
	Tone      string `json:"tone"`
	Length    int    `json:"length"`
	Audience  string `json:"audience"`
	Timeframe int    `json:"timeframe"`
}

// DefaultStyle returns the neutral style used when a caller has no preference.
func DefaultStyle() Style {
	return Style{
		Tone:      "neutral",
		Length:    300,
		Audience:  "general",
		Timeframe: 90,
	}
}

// Request is a single hybrid question.
type Request struct {
	Question string
	// TopK is the number of vector hits to request. Zero uses the policy default.
	TopK int
	// WebDocs are the supporting documents; their order defines footnote numbering.
	WebDocs []Document
	Style   Style
}

// NewRequest returns a request with default top_k and style.
func NewRequest(question string) Request {
	return Request{
		Question: question,
		Style:    DefaultStyle(),
	}
}

// Degradation records a collaborator call that failed and was treated as empty.
type Degradation struct {
	Store string `json:"store"`
	Op    string `json:"op"`
	Key   string `json:"key,omitempty"`
	Error string `json:"error"`
}

// HybridResult is the answer payload for a single question.
type HybridResult struct {
	Answer           string        `json:"answer"`
	Facts            []Fact        `json:"facts"`
	VectorHits       []VectorHit   `json:"vector_hits"`
	SelectedEntities []string      `json:"selected_entities"`
	Sources          []Source      `json:"sources"`
	Confidence       Confidence    `json:"confidence"`
	Degraded         []Degradation `json:"degraded,omitempty"`
}

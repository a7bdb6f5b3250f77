package ingest

import (
	"context"
	"fmt"
	"strings"

	"wildmenipedia/internal/storage"
)

// Label is an entity found by a label search.
type Label struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Connector reads entities and their relations from one knowledge base.
type Connector interface {
	// Name identifies the knowledge base ("wikidata", "dbpedia").
	Name() string
	// Search returns entities whose English label contains term.
	Search(ctx context.Context, term string, limit int) ([]Label, error)
	// Triples returns up to limit outgoing relations of the entity.
	Triples(ctx context.Context, entityID string, limit int) ([]storage.Triple, error)
}

// Wikidata reads from the Wikidata query service.
type Wikidata struct {
	client *SPARQLClient
}

// NewWikidata creates a Wikidata connector.
func NewWikidata(client *SPARQLClient) *Wikidata {
	return &Wikidata{client: client}
}

func (w *Wikidata) Name() string { return "wikidata" }

func (w *Wikidata) Search(ctx context.Context, term string, limit int) ([]Label, error) {
	return searchLabels(ctx, w.client, term, limit)
}

func (w *Wikidata) Triples(ctx context.Context, entityID string, limit int) ([]storage.Triple, error) {
	if !validIRI(entityID) {
		return nil, fmt.Errorf("invalid entity IRI %q", entityID)
	}
	res, err := w.client.Query(ctx, wikidataTriplesQuery(entityID, limit))
	if err != nil {
		return nil, fmt.Errorf("wikidata triples: %w", err)
	}

	triples := make([]storage.Triple, 0, len(res.Results.Bindings))
	for _, row := range res.Results.Bindings {
		t := storage.Triple{
			Subject:        entityID,
			Predicate:      row["prop"].Value,
			Object:         row["o"].Value,
			Rank:           rankFromIRI(row["rank"].Value),
			PredCode:       localName(row["prop"].Value),
			PredicateLabel: row["propLabel"].Value,
			ObjectLabel:    objectLabel(row),
		}
		triples = append(triples, t)
	}
	return triples, nil
}

// DBpedia reads from the DBpedia SPARQL endpoint.
type DBpedia struct {
	client *SPARQLClient
}

// NewDBpedia creates a DBpedia connector.
func NewDBpedia(client *SPARQLClient) *DBpedia {
	return &DBpedia{client: client}
}

func (d *DBpedia) Name() string { return "dbpedia" }

func (d *DBpedia) Search(ctx context.Context, term string, limit int) ([]Label, error) {
	return searchLabels(ctx, d.client, term, limit)
}

func (d *DBpedia) Triples(ctx context.Context, entityID string, limit int) ([]storage.Triple, error) {
	if !validIRI(entityID) {
		return nil, fmt.Errorf("invalid entity IRI %q", entityID)
	}
	res, err := d.client.Query(ctx, dbpediaTriplesQuery(entityID, limit))
	if err != nil {
		return nil, fmt.Errorf("dbpedia triples: %w", err)
	}

	triples := make([]storage.Triple, 0, len(res.Results.Bindings))
	for _, row := range res.Results.Bindings {
		triples = append(triples, storage.Triple{
			Subject:        entityID,
			Predicate:      row["prop"].Value,
			Object:         row["o"].Value,
			PredCode:       localName(row["prop"].Value),
			PredicateLabel: row["propLabel"].Value,
			ObjectLabel:    objectLabel(row),
		})
	}
	return triples, nil
}

func searchLabels(ctx context.Context, client *SPARQLClient, term string, limit int) ([]Label, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("search term is required")
	}
	if limit <= 0 {
		limit = 5
	}

	res, err := client.Query(ctx, labelSearchQuery(term, limit))
	if err != nil {
		return nil, fmt.Errorf("label search: %w", err)
	}

	labels := make([]Label, 0, len(res.Results.Bindings))
	for _, row := range res.Results.Bindings {
		id := strings.TrimSpace(row["item"].Value)
		label := strings.TrimSpace(row["label"].Value)
		if id == "" || label == "" {
			continue
		}
		labels = append(labels, Label{ID: id, Label: label})
	}
	return labels, nil
}

// objectLabel prefers the English label and falls back to the literal value.
func objectLabel(row map[string]Binding) string {
	if l := row["oLabel"].Value; l != "" {
		return l
	}
	if o := row["o"]; o.Type == "literal" || o.Type == "typed-literal" {
		return o.Value
	}
	return ""
}

// localName returns the last path or fragment segment of an IRI.
func localName(iri string) string {
	if i := strings.LastIndexAny(iri, "/#"); i >= 0 {
		return iri[i+1:]
	}
	return iri
}

// rankFromIRI maps wikibase:PreferredRank and friends to "preferred", "normal", "deprecated".
func rankFromIRI(iri string) string {
	name := localName(iri)
	if name == "" {
		return ""
	}
	return strings.ToLower(strings.TrimSuffix(name, "Rank"))
}

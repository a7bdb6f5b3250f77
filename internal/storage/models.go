package storage

import "time"

// Entity is a knowledge-graph node such as "E:Q42".
type Entity struct {
	ID        string
	Label     string
	Source    string // "wikidata" or "dbpedia"
	UpdatedAt time.Time
}

// Triple is a directed relation between two nodes with optional statement metadata.
type Triple struct {
	Subject        string
	Predicate      string
	Object         string
	Rank           string // "preferred", "normal", "deprecated" or empty
	PredCode       string // short predicate tag, e.g. "P31"
	ObjectLabel    string
	PredicateLabel string
}

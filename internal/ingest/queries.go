package ingest

import (
	"fmt"
	"strings"
)

// escapeLiteral escapes a value for use inside a double-quoted SPARQL literal.
func escapeLiteral(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", " ", "\r", " ").Replace(s)
}

// validIRI reports whether s can be placed between angle brackets.
func validIRI(s string) bool {
	if s == "" || !strings.Contains(s, "://") {
		return false
	}
	return !strings.ContainsAny(s, "<>\"{}|^`\\ \t\n")
}

// labelSearchQuery finds English labels containing term, case-insensitively.
func labelSearchQuery(term string, limit int) string {
	return fmt.Sprintf(`SELECT ?item ?label WHERE {
  ?item rdfs:label ?label .
  FILTER(LANG(?label) = "en")
  FILTER(CONTAINS(LCASE(?label), LCASE("%s")))
} LIMIT %d`, escapeLiteral(term), limit)
}

// wikidataTriplesQuery lists the statements of an item with their rank and English labels.
func wikidataTriplesQuery(itemIRI string, limit int) string {
	return fmt.Sprintf(`SELECT ?prop ?propLabel ?o ?oLabel ?rank WHERE {
  <%s> ?claim ?statement .
  ?prop wikibase:claim ?claim ;
        wikibase:statementProperty ?ps .
  ?statement ?ps ?o ;
             wikibase:rank ?rank .
  SERVICE wikibase:label { bd:serviceParam wikibase:language "en". }
} LIMIT %d`, itemIRI, limit)
}

// dbpediaTriplesQuery lists the outgoing relations of a resource with English labels.
func dbpediaTriplesQuery(resourceIRI string, limit int) string {
	return fmt.Sprintf(`SELECT ?prop ?propLabel ?o ?oLabel WHERE {
  <%s> ?prop ?o .
  OPTIONAL { ?prop rdfs:label ?propLabel . FILTER(LANG(?propLabel) = "en") }
  OPTIONAL { ?o rdfs:label ?oLabel . FILTER(LANG(?oLabel) = "en") }
  FILTER(!isLiteral(?o) || LANG(?o) = "" || LANG(?o) = "en")
} LIMIT %d`, resourceIRI, limit)
}

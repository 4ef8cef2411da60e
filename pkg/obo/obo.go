// Package obo parses controlled vocabularies in the OBO 1.2 flat file format
// and provides hierarchy lookups on the parsed terms.
//
// The package is used with the PSI-MS controlled vocabulary to decide if a
// cvParam element of an mzML document belongs to a wanted category, e.g. if
// an accession describes an instrument model or an ionization type.
package obo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mzml2isa/mzml2isa/internal/set"
)

// Term is a single [Term] stanza of an OBO file.
type Term struct {
	ID         string
	Name       string
	Definition string
	// ParentIDs contains the targets of the is_a tags of the term.
	ParentIDs []string
}

// Ontology is a parsed OBO controlled vocabulary.
type Ontology struct {
	terms    map[string]*Term
	children map[string][]string
}

// FromFile reads and parses an OBO file.
func FromFile(path string) (*Ontology, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	o, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %q failed: %w", path, err)
	}

	return o, nil
}

// Parse parses an OBO document.
// Obsolete terms and stanzas other than [Term] are skipped.
func Parse(r io.Reader) (*Ontology, error) {
	o := Ontology{
		terms:    map[string]*Term{},
		children: map[string][]string{},
	}

	var cur *Term
	var obsolete bool
	inTerm := false

	endStanza := func() {
		if cur != nil && cur.ID != "" && !obsolete {
			o.terms[cur.ID] = cur
		}
		cur = nil
		obsolete = false
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "[") {
			endStanza()
			inTerm = line == "[Term]"
			if inTerm {
				cur = &Term{}
			}

			continue
		}

		if !inTerm || cur == nil {
			continue
		}

		key, val, found := strings.Cut(line, ":")
		if !found {
			continue
		}

		val = strings.TrimSpace(val)

		switch key {
		case "id":
			cur.ID = val
		case "name":
			cur.Name = val
		case "def":
			cur.Definition = unquoteDef(val)
		case "is_a":
			cur.ParentIDs = append(cur.ParentIDs, stripComment(val))
		case "is_obsolete":
			if strings.HasPrefix(val, "true") {
				obsolete = true
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	endStanza()

	for id, term := range o.terms {
		for _, parent := range term.ParentIDs {
			o.children[parent] = append(o.children[parent], id)
		}
	}

	return &o, nil
}

// stripComment removes an OBO trailing comment ("MS:1000031 ! instrument
// model" -> "MS:1000031").
func stripComment(val string) string {
	if id, _, found := strings.Cut(val, "!"); found {
		return strings.TrimSpace(id)
	}

	return val
}

// unquoteDef extracts the quoted text of a def tag.
func unquoteDef(val string) string {
	start := strings.IndexByte(val, '"')
	if start == -1 {
		return val
	}

	end := strings.IndexByte(val[start+1:], '"')
	if end == -1 {
		return val[start+1:]
	}

	return val[start+1 : start+1+end]
}

// Term returns the term with the given accession.
func (o *Ontology) Term(id string) (*Term, bool) {
	t, exist := o.terms[id]
	return t, exist
}

// Name returns the name of the term with the given accession or an empty
// string if the term does not exist.
func (o *Ontology) Name(id string) string {
	t, exist := o.terms[id]
	if !exist {
		return ""
	}

	return t.Name
}

// Len returns the number of terms in the ontology.
func (o *Ontology) Len() int {
	return len(o.terms)
}

// Parents returns the accessions of the direct parents of the term.
func (o *Ontology) Parents(id string) []string {
	t, exist := o.terms[id]
	if !exist {
		return nil
	}

	return t.ParentIDs
}

// Children returns the accessions of the direct children of the term.
func (o *Ontology) Children(id string) []string {
	return o.children[id]
}

// Descendants returns the accessions of all transitive children of the term,
// including the term itself.
func (o *Ontology) Descendants(id string) set.Set[string] {
	result := set.Set[string]{}

	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if result.Contains(cur) {
			continue
		}
		result.Add(cur)

		queue = append(queue, o.children[cur]...)
	}

	return result
}

// IsDescendant returns true if id is ancestor itself or one of its
// transitive children.
func (o *Ontology) IsDescendant(id, ancestor string) bool {
	return o.Descendants(ancestor).Contains(id)
}

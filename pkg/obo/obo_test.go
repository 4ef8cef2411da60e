package obo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVocab = `format-version: 1.2
ontology: ms

[Term]
id: MS:0000001
name: root
def: "The root term." [PSI:MS]

[Term]
id: MS:0000002
name: child
is_a: MS:0000001 ! root

[Term]
id: MS:0000003
name: grandchild
is_a: MS:0000002 ! child

[Term]
id: MS:0000004
name: old term
is_a: MS:0000001 ! root
is_obsolete: true

[Typedef]
id: part_of
name: part of
`

func parseTestVocab(t *testing.T) *Ontology {
	t.Helper()

	o, err := Parse(strings.NewReader(testVocab))
	require.NoError(t, err)

	return o
}

func TestParse(t *testing.T) {
	o := parseTestVocab(t)

	assert.Equal(t, 3, o.Len())

	root, exist := o.Term("MS:0000001")
	require.True(t, exist)
	assert.Equal(t, "root", root.Name)
	assert.Equal(t, "The root term.", root.Definition)
	assert.Empty(t, root.ParentIDs)

	child, exist := o.Term("MS:0000002")
	require.True(t, exist)
	assert.Equal(t, []string{"MS:0000001"}, child.ParentIDs)
}

func TestParseSkipsObsoleteTerms(t *testing.T) {
	o := parseTestVocab(t)

	_, exist := o.Term("MS:0000004")
	assert.False(t, exist)
}

func TestHierarchyLookups(t *testing.T) {
	o := parseTestVocab(t)

	assert.Equal(t, []string{"MS:0000002"}, o.Parents("MS:0000003"))
	assert.Equal(t, []string{"MS:0000002"}, o.Children("MS:0000001"))

	descendants := o.Descendants("MS:0000001")
	assert.Equal(t, 3, len(descendants))
	assert.True(t, descendants.Contains("MS:0000001"))
	assert.True(t, descendants.Contains("MS:0000003"))

	assert.True(t, o.IsDescendant("MS:0000003", "MS:0000001"))
	assert.False(t, o.IsDescendant("MS:0000001", "MS:0000003"))
}

func TestNameOfUnknownTermIsEmpty(t *testing.T) {
	o := parseTestVocab(t)

	assert.Equal(t, "", o.Name("MS:9999999"))
}

func TestBuiltin(t *testing.T) {
	o := Builtin()

	require.NotZero(t, o.Len())

	assert.Equal(t, "instrument model", o.Name("MS:1000031"))

	instruments := o.Descendants("MS:1000031")
	assert.True(t, instruments.Contains("MS:1001911"),
		"Q Exactive is not a descendant of instrument model")

	vendors := o.Children("MS:1000031")
	assert.Contains(t, vendors, "MS:1000483")
}

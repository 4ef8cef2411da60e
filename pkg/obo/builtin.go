package obo

import (
	_ "embed"
	"strings"
	"sync"
)

// psiMS is a trimmed copy of the PSI-MS controlled vocabulary
// (https://github.com/HUPO-PSI/psi-ms-CV). It contains the branches the
// metadata extraction needs: instrument models, ionization, analyzer and
// detector types, file formats, data transformations and scan terms.
//
//go:embed psi-ms.obo
var psiMS string

var builtin = sync.OnceValue(func() *Ontology {
	o, err := Parse(strings.NewReader(psiMS))
	if err != nil {
		// the embedded vocabulary is validated by the package tests
		panic("parsing embedded psi-ms vocabulary failed: " + err.Error())
	}

	return o
})

// Builtin returns the embedded trimmed PSI-MS controlled vocabulary.
func Builtin() *Ontology {
	return builtin()
}

package digest

import (
	"testing"
)

func TestFromString(t *testing.T) {
	const shash = "sha256:b5bb9d8014a0f9b1d61e21e796d78dccdf1352f23cd32812f4850b878ae4944c"

	d, err := FromString(shash)
	if err != nil {
		t.Fatalf("parsing %q failed: %s", shash, err)
	}

	if d.Algorithm != SHA256 {
		t.Errorf("wrong algorithm %q parsed, expected SHA256", d.Algorithm)
	}

	if d.String() != shash {
		t.Errorf("String() returned %q expected %q", d.String(), shash)
	}
}

func TestFromStringFailsOnUnsupportedAlgorithm(t *testing.T) {
	_, err := FromString("md5:00000000000000000000000000000000")
	if err == nil {
		t.Error("parsing an md5 digest did not fail")
	}
}

func TestFromStringFailsOnWrongHashLength(t *testing.T) {
	_, err := FromString("sha256:abcd")
	if err == nil {
		t.Error("parsing a truncated digest did not fail")
	}
}

package primitives

import (
	"strings"
	"testing"
)

func TestComputeVersion(t *testing.T) {
	p := incrementProgram()
	v := ComputeVersion(p)
	if !strings.HasPrefix(v, Fingerprint(p)+"-") {
		t.Errorf("version %q should start with fingerprint %q", v, Fingerprint(p))
	}

	p.Version = "1.2.0"
	if got := ComputeVersion(p); got != "1.2.0" {
		t.Errorf("ComputeVersion = %q, want user version", got)
	}
}

func TestFingerprintStable(t *testing.T) {
	a, b := incrementProgram(), incrementProgram()
	if Fingerprint(a) != Fingerprint(b) {
		t.Error("equal programs should share a fingerprint")
	}
	b.Blank = "#"
	if Fingerprint(a) == Fingerprint(b) {
		t.Error("different programs should not share a fingerprint")
	}
}

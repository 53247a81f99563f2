package prompt

import (
	"strings"
	"testing"
)

func TestBuild(t *testing.T) {
	corpus := "--- daily_status_2024.txt ---\nwrote code all day"

	p := Build(corpus)

	if !strings.HasPrefix(p, Preamble) {
		t.Error("prompt should start with the preamble")
	}
	if !strings.Contains(p, "\n\nLOGS:\n") {
		t.Error("prompt should contain the LOGS separator")
	}
	if !strings.HasSuffix(p, corpus) {
		t.Error("prompt should end with the corpus")
	}
}

func TestBuild_EmptyCorpus(t *testing.T) {
	p := Build("")
	if p != Preamble+"\n\nLOGS:\n" {
		t.Errorf("Build(\"\") = %q", p)
	}
}

func TestBuild_NoEscaping(t *testing.T) {
	// The corpus is opaque text; markers and special characters pass
	// through untouched.
	corpus := "--- tasks ---\n<script> & \"quotes\" ${VAR}"
	if !strings.HasSuffix(Build(corpus), corpus) {
		t.Error("corpus must pass through unmodified")
	}
}

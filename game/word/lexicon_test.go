package word

import (
	"context"
	"strings"
	"testing"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func upperEnglish(word string) string {
	return cases.Upper(language.English).String(word)
}

func TestConfigNewSet(t *testing.T) {
	newSetTests := []struct {
		Config
		words     string
		wantOk    bool
		wantWords int
	}{
		{ // no normalize func
			words: "cat",
		},
		{
			Config:    Config{Normalize: upperEnglish},
			wantOk:    true,
			wantWords: 0,
		},
		{
			Config:    Config{Normalize: upperEnglish},
			words:     "   ",
			wantOk:    true,
			wantWords: 0,
		},
		{
			Config:    Config{Normalize: upperEnglish},
			words:     "a bad cat",
			wantOk:    true,
			wantWords: 3,
		},
		{ // capitalized words and punctuation are skipped
			Config:    Config{Normalize: upperEnglish},
			words:     "A man, a plan, a canal, panama!",
			wantOk:    true,
			wantWords: 1,
		},
		{ // contractions are skipped
			Config:    Config{Normalize: upperEnglish},
			words:     "Abc 'words' they're top-secret not.",
			wantOk:    true,
			wantWords: 0,
		},
	}
	for i, test := range newSetTests {
		s, err := test.Config.NewSet(strings.NewReader(test.words))
		switch {
		case !test.wantOk:
			if err == nil {
				t.Errorf("Test %v: wanted error", i)
			}
		case err != nil:
			t.Errorf("Test %v: unwanted error: %v", i, err)
		case s.Size() != test.wantWords:
			t.Errorf("Test %v: wanted %v words, got %v", i, test.wantWords, s.Size())
		}
	}
}

func TestNewSetNilReader(t *testing.T) {
	cfg := Config{Normalize: upperEnglish}
	if _, err := cfg.NewSet(nil); err == nil {
		t.Error("wanted error creating set without reader")
	}
}

func TestSetContains(t *testing.T) {
	cfg := Config{Normalize: upperEnglish}
	s, err := cfg.NewSet(strings.NewReader("apple bat car"))
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	containsTests := []struct {
		word string
		want bool
	}{
		{},
		{
			word: "bat",
			want: true,
		},
		{
			word: "BAT",
			want: true,
		},
		{
			word: "BAT ",
		},
		{
			word: "care",
		},
	}
	ctx := context.Background()
	for i, test := range containsTests {
		got, err := s.Contains(ctx, test.word)
		switch {
		case err != nil:
			t.Errorf("Test %v: unwanted error: %v", i, err)
		case test.want != got:
			t.Errorf("Test %v: wanted %v for %q", i, test.want, test.word)
		}
	}
}

func TestSetContainsPolish(t *testing.T) {
	upperPolish := cases.Upper(language.Polish).String
	cfg := Config{Normalize: upperPolish}
	s, err := cfg.NewSet(strings.NewReader("żółw łoś kot"))
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	ctx := context.Background()
	for i, word := range []string{"żółw", "ŻÓŁW", "ŁOŚ", "KOT"} {
		got, err := s.Contains(ctx, word)
		switch {
		case err != nil:
			t.Errorf("Test %v: unwanted error: %v", i, err)
		case !got:
			t.Errorf("Test %v: wanted set to contain %q", i, word)
		}
	}
}

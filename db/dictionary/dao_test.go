package dictionary

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/zlitery/wordgrid/db"
	"github.com/zlitery/wordgrid/db/dbtest"
)

func TestNewLexicon(t *testing.T) {
	newLexiconTests := []struct {
		cfg    Config
		wantOk bool
	}{
		{},
		{
			cfg: Config{DB: dbtest.MockDatabase{}},
		},
		{
			cfg: Config{Language: "en"},
		},
		{
			cfg: Config{
				DB:       dbtest.MockDatabase{},
				Language: "en",
			},
			wantOk: true,
		},
	}
	for i, test := range newLexiconTests {
		l, err := test.cfg.NewLexicon()
		switch {
		case err != nil:
			if test.wantOk {
				t.Errorf("Test %v: unwanted error: %v", i, err)
			}
		case !test.wantOk:
			t.Errorf("Test %v: wanted error", i)
		case l.DB == nil:
			t.Errorf("Test %v: database not set", i)
		}
	}
}

func TestContains(t *testing.T) {
	containsTests := []struct {
		word    string
		exists  bool
		scanErr error
		want    bool
		wantOk  bool
	}{
		{
			word:    "APPLE",
			scanErr: fmt.Errorf("connection lost"),
		},
		{
			word:   "ZYZZYVA",
			wantOk: true,
		},
		{
			word:   "APPLE",
			exists: true,
			want:   true,
			wantOk: true,
		},
	}
	for i, test := range containsTests {
		cfg := Config{
			DB: dbtest.MockDatabase{
				QueryFunc: func(ctx context.Context, q db.Query) db.Scanner {
					wantArgs := []interface{}{test.word, "en"}
					if !reflect.DeepEqual(wantArgs, q.Args()) {
						t.Errorf("Test %v: query args not equal: \n wanted: %v \n got:    %v", i, wantArgs, q.Args())
					}
					return dbtest.MockScanner{
						ScanFunc: func(dest ...interface{}) error {
							if test.scanErr != nil {
								return test.scanErr
							}
							*dest[0].(*bool) = test.exists
							return nil
						},
					}
				},
			},
			Language: "en",
		}
		l, err := cfg.NewLexicon()
		if err != nil {
			t.Fatalf("Test %v: unwanted error: %v", i, err)
		}
		ctx := context.Background()
		got, err := l.Contains(ctx, test.word)
		switch {
		case err != nil:
			if test.wantOk {
				t.Errorf("Test %v: unwanted error: %v", i, err)
			}
		case !test.wantOk:
			t.Errorf("Test %v: wanted error", i)
		case test.want != got:
			t.Errorf("Test %v: wanted Contains(%q)=%v, got %v", i, test.word, test.want, got)
		}
	}
}

func TestSeed(t *testing.T) {
	seedTests := []struct {
		words       string
		normalize   func(word string) string
		execErr     error
		wantCount   int
		wantQueries int
		wantOk      bool
	}{
		{
			words: "apple",
		},
		{
			words:     "apple",
			normalize: strings.ToUpper,
			execErr:   fmt.Errorf("connection lost"),
		},
		{
			normalize: strings.ToUpper,
			wantOk:    true,
		},
		{ // empty normalized words are skipped
			words: "apple -- banana",
			normalize: func(word string) string {
				if !strings.ContainsAny(word, "abcdefghijklmnopqrstuvwxyz") {
					return ""
				}
				return strings.ToUpper(word)
			},
			wantCount:   2,
			wantQueries: 2,
			wantOk:      true,
		},
		{
			words:       "apple banana cherry",
			normalize:   strings.ToUpper,
			wantCount:   3,
			wantQueries: 3,
			wantOk:      true,
		},
	}
	for i, test := range seedTests {
		gotQueries := 0
		var firstArgs []interface{}
		cfg := Config{
			DB: dbtest.MockDatabase{
				ExecFunc: func(ctx context.Context, queries ...db.Query) error {
					if test.execErr != nil {
						return test.execErr
					}
					if gotQueries == 0 && len(queries) > 0 {
						firstArgs = queries[0].Args()
					}
					gotQueries += len(queries)
					return nil
				},
			},
			Language: "en",
		}
		l, err := cfg.NewLexicon()
		if err != nil {
			t.Fatalf("Test %v: unwanted error: %v", i, err)
		}
		ctx := context.Background()
		n, err := l.Seed(ctx, strings.NewReader(test.words), test.normalize)
		switch {
		case err != nil:
			if test.wantOk {
				t.Errorf("Test %v: unwanted error: %v", i, err)
			}
		case !test.wantOk:
			t.Errorf("Test %v: wanted error", i)
		case n != test.wantCount:
			t.Errorf("Test %v: wanted %v words seeded, got %v", i, test.wantCount, n)
		case gotQueries != test.wantQueries:
			t.Errorf("Test %v: wanted %v insert queries, got %v", i, test.wantQueries, gotQueries)
		case test.wantQueries > 0 && !reflect.DeepEqual(firstArgs, []interface{}{"APPLE", "en"}):
			t.Errorf("Test %v: wanted first insert args [APPLE en], got %v", i, firstArgs)
		}
	}
}

func TestSeedBatches(t *testing.T) {
	var words strings.Builder
	for j := 0; j < seedBatchSize+1; j++ {
		fmt.Fprintf(&words, "word%v ", j)
	}
	execs := 0
	cfg := Config{
		DB: dbtest.MockDatabase{
			ExecFunc: func(ctx context.Context, queries ...db.Query) error {
				execs++
				if len(queries) > seedBatchSize {
					t.Errorf("wanted at most %v queries per transaction, got %v", seedBatchSize, len(queries))
				}
				return nil
			},
		},
		Language: "en",
	}
	l, err := cfg.NewLexicon()
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	n, err := l.Seed(context.Background(), strings.NewReader(words.String()), strings.ToUpper)
	switch {
	case err != nil:
		t.Fatalf("unwanted error: %v", err)
	case n != seedBatchSize+1:
		t.Errorf("wanted %v words seeded, got %v", seedBatchSize+1, n)
	case execs != 2:
		t.Errorf("wanted 2 transactions, got %v", execs)
	}
}

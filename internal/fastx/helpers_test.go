package fastx

import (
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"fastsplit/internal/split"
	"fastsplit/internal/splitio"
)

// rec is a detached record used for comparisons.
type rec struct {
	Key, Value, Key2, Quality string
}

func toRec(r *Record) rec {
	return rec{Key: r.Key(), Value: r.Value(), Key2: r.Key2(), Quality: r.Quality()}
}

func memProvider(name, data string, quirk bool) *splitio.MemProvider {
	p := splitio.NewMemProvider()
	p.EOFOnSeekToEnd = quirk
	p.Put(name, []byte(data))
	return p
}

// scanSplits runs one ShortScanner per split and concatenates the records.
func scanSplits(t *testing.T, p *splitio.MemProvider, splits []split.Split, opts Options) []rec {
	t.Helper()
	var out []rec
	for _, sp := range splits {
		sc, err := NewShortScanner(p, sp, opts)
		require.NoError(t, err, "split %v", sp)
		for sc.Next() {
			require.True(t, sc.Record().validSpans(), "split %v: spans out of buffer", sp)
			out = append(out, toRec(sc.Record()))
		}
		require.NoError(t, sc.Err(), "split %v", sp)
		require.Equal(t, 1.0, sc.Progress())
		require.NoError(t, sc.Close())
	}
	require.Zero(t, p.OpenStreams(), "streams left open")
	return out
}

// genFASTA builds a random multi-record FASTA file. Payload lines are joined
// by newlines; payloads may be empty.
func genFASTA(rng *rand.Rand, n, trailing int) (string, []rec) {
	var b strings.Builder
	var want []rec
	for i := 0; i < n; i++ {
		key := fmt.Sprintf("seq%d len=%d", i, rng.Intn(1000))
		var lines []string
		for l := rng.Intn(4); l > 0; l-- {
			lines = append(lines, randBases(rng, 1+rng.Intn(12)))
		}
		value := strings.Join(lines, "\n")
		b.WriteString(">" + key + "\n")
		if value != "" {
			b.WriteString(value)
			if i < n-1 {
				b.WriteString("\n")
			}
		}
		want = append(want, rec{Key: key, Value: value})
	}
	s := b.String()
	if strings.HasSuffix(s, "\n") {
		s = strings.TrimSuffix(s, "\n")
	}
	return s + strings.Repeat("\n", trailing), want
}

// genFASTQ builds a random FASTQ file whose quality lines often start with
// '@' and '+'.
func genFASTQ(rng *rand.Rand, n, trailing int) (string, []rec) {
	var b strings.Builder
	var want []rec
	const qual = "@+!#ABCDEFGHIJ"
	for i := 0; i < n; i++ {
		seq := randBases(rng, 1+rng.Intn(15))
		q := make([]byte, len(seq))
		for j := range q {
			q[j] = qual[rng.Intn(len(qual))]
		}
		if rng.Intn(2) == 0 {
			q[0] = '@'
		}
		r := rec{Key: fmt.Sprintf("read%d/1", i), Value: seq, Quality: string(q)}
		if rng.Intn(2) == 0 {
			r.Key2 = r.Key
		}
		fmt.Fprintf(&b, "@%s\n%s\n+%s\n%s", r.Key, r.Value, r.Key2, r.Quality)
		if i < n-1 {
			b.WriteString("\n")
		}
		want = append(want, r)
	}
	return b.String() + strings.Repeat("\n", trailing), want
}

func randBases(rng *rand.Rand, n int) string {
	const acgt = "ACGTN"
	b := make([]byte, n)
	for i := range b {
		b[i] = acgt[rng.Intn(len(acgt))]
	}
	return string(b)
}

func randCuts(rng *rand.Rand, size int64, n int) []int64 {
	cuts := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		cuts = append(cuts, 1+rng.Int63n(size))
	}
	// split.At skips cuts that do not advance.
	slices.Sort(cuts)
	return cuts
}

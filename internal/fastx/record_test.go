package fastx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"fasta": FASTA, "FA": FASTA, "fna": FASTA, "fastq": FASTQ, "fq": FASTQ}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseFormat(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseFormat("sam"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if FASTA.Marker() != '>' || FASTQ.Marker() != '@' {
		t.Fatalf("bad markers")
	}
}

func TestSpan(t *testing.T) {
	if Unset.IsSet() || Unset.Len() != 0 {
		t.Fatalf("Unset should be unset with zero length")
	}
	e := emptyAt(4)
	if !e.IsSet() || e.Len() != 0 {
		t.Fatalf("emptyAt(4) = %+v", e)
	}
	if (Span{2, 5}).Len() != 4 {
		t.Fatalf("inclusive length")
	}
}

func TestRecordBytesAreZeroCopy(t *testing.T) {
	buf := []byte(">k\nACGT")
	var r Record
	r.retarget(primaryBuffer, buf, spans{key: Span{1, 1}, value: Span{3, 6}, key2: Unset, quality: Unset})
	v := r.ValueBytes()
	require.Equal(t, "ACGT", string(v))
	buf[3] = 'T'
	require.Equal(t, "TCGT", string(v))
	// The three-index slice keeps appends from clobbering the buffer.
	_ = append(r.KeyBytes(), 'X')
	require.Equal(t, byte('\n'), buf[2])
	require.Nil(t, r.Bytes(Unset))
	require.Empty(t, r.Key2())
}

func TestBorderGrowRebindsOwner(t *testing.T) {
	var r Record
	b := newBorder(1, &r)
	b.write([]byte(">"))
	r.retarget(borderBuffer, b.data, spans{key: Span{0, 0}, value: Unset, key2: Unset, quality: Unset})
	for i := 0; i < 100; i++ {
		b.writeByte('A')
	}
	// r was rebound to every new allocation.
	require.Equal(t, 101, len(b.data))
	require.Same(t, &b.data[0], &r.buf[0])
	require.Equal(t, ">", r.Key())

	// Primary records ignore border growth.
	var p Record
	primary := []byte("xyz")
	p.retarget(primaryBuffer, primary, unsetSpans())
	p.rebind(b.data)
	require.Same(t, &primary[0], &p.buf[0])
}

func TestBorderReadUntil(t *testing.T) {
	b := newBorder(2, nil)
	found, err := b.readUntil(strings.NewReader("abc\ndef"), '\n')
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "abc", string(b.data))

	b.reset()
	found, err = b.readUntil(strings.NewReader("xyz"), '>')
	require.NoError(t, err)
	require.False(t, found)
	require.Equal(t, "xyz", string(b.data))
}

func TestTrimNewlines(t *testing.T) {
	buf := []byte("AC\n\n\n")
	require.Equal(t, 1, trimNewlines(buf, 0, 4))
	require.Equal(t, 3, dropNewline(buf, 0, 4))
	// Never below start-1.
	require.Equal(t, 1, trimNewlines(buf, 2, 4))
}

func TestParseFASTQ(t *testing.T) {
	buf := []byte("@r\nAC\n+r\nII\n@s")
	sp, next, st := parseFASTQ(buf, 0, false)
	require.Equal(t, fqComplete, st)
	require.Equal(t, 12, next)
	require.Equal(t, spans{key: Span{1, 1}, value: Span{3, 4}, key2: Span{7, 7}, quality: Span{9, 10}}, sp)

	_, _, st = parseFASTQ(buf, 12, false)
	require.Equal(t, fqPartial, st)
	_, _, st = parseFASTQ(buf, 12, true)
	require.Equal(t, fqTruncated, st)

	_, _, st = parseFASTQ([]byte("@r\nAC\nxx\nII\n"), 0, true)
	require.Equal(t, fqMalformed, st)
	require.ErrorIs(t, st.err(), ErrMalformedRecord)

	sp, next, st = parseFASTQ([]byte("@r\nAC\n+\nII"), 0, true)
	require.Equal(t, fqComplete, st)
	require.Equal(t, 10, next)
	require.Equal(t, Span{8, 9}, sp.quality)
	require.Equal(t, emptyAt(7), sp.key2)
}

func TestOptionsDefaults(t *testing.T) {
	o, err := Options{}.withDefaults()
	require.NoError(t, err)
	require.Equal(t, Options{Format: FASTA, K: DefaultK, LookAheadBufferSize: DefaultLookAheadBufferSize}, o)

	_, err = Options{Format: Format(9)}.withDefaults()
	require.ErrorIs(t, err, ErrInvalidOptions)
}

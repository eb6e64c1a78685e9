package appcore

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"fastsplit/internal/cmdutil"
	"fastsplit/internal/fastx"
	"fastsplit/internal/splitio"
	"fastsplit/pkg/api"
)

func provider(files map[string]string) *splitio.MemProvider {
	p := splitio.NewMemProvider()
	for n, d := range files {
		p.Put(n, []byte(d))
	}
	return p
}

func fasta(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, ">s%d\n%s\n", i, strings.Repeat("GATTACA", 1+i%5))
	}
	return b.String()
}

func TestRun_RecordsSplitSizeDoesNotChangeOutput(t *testing.T) {
	p := provider(map[string]string{"a.fa": fasta(60)})
	run := func(size int64, threads int) string {
		var out, errB bytes.Buffer
		o := Options{Files: []string{"a.fa"}, SplitSize: size, Threads: threads}
		n, err := Run[api.RecordV1](context.Background(), &out, &errB, o, p, Records, NewRecordWriterFactory("fasta", false))
		require.NoError(t, err)
		require.Equal(t, 60, n)
		require.Empty(t, errB.String())
		return out.String()
	}
	want := run(1<<20, 1)
	require.Equal(t, fasta(60), want)
	for _, size := range []int64{5, 33, 200} {
		require.Equal(t, want, run(size, 4), "size=%d", size)
	}
}

func TestRun_FragmentsKmers(t *testing.T) {
	p := provider(map[string]string{"g.fa": ">g\nACGTAC\n"})
	var out bytes.Buffer
	o := Options{Files: []string{"g.fa"}, SplitSize: 4, Threads: 2, Scan: fastx.Options{K: 3}}
	_, err := Run[api.FragmentV1](context.Background(), &out, &bytes.Buffer{}, o, p, Fragments, NewFragmentWriterFactory("kmers", false))
	require.NoError(t, err)
	require.Equal(t, "g.fa\t3\tACG\ng.fa\t4\tCGT\ng.fa\t5\tGTA\ng.fa\t6\tTAC\n", out.String())
}

func TestRun_OutPathAtomic(t *testing.T) {
	p := provider(map[string]string{"a.fa": fasta(3)})
	path := filepath.Join(t.TempDir(), "out.fa")
	var stdout bytes.Buffer
	o := Options{Files: []string{"a.fa"}, SplitSize: 7, OutPath: path}
	_, err := Run[api.RecordV1](context.Background(), &stdout, &bytes.Buffer{}, o, p, Records, NewRecordWriterFactory("fasta", false))
	require.NoError(t, err)
	require.Empty(t, stdout.String())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, fasta(3), string(data))

	// A failing run leaves no file behind.
	bad := filepath.Join(t.TempDir(), "bad.fa")
	o = Options{Files: []string{"missing.fa"}, SplitSize: 7, OutPath: bad}
	_, err = Run[api.RecordV1](context.Background(), &stdout, &bytes.Buffer{}, o, p, Records, NewRecordWriterFactory("fasta", false))
	require.ErrorIs(t, err, splitio.ErrNotFound)
	_, statErr := os.Stat(bad)
	require.True(t, os.IsNotExist(statErr))
}

func TestRun_WarnsOnNonFASTA(t *testing.T) {
	p := provider(map[string]string{"x.txt": "hello\nworld\n"})
	var errB bytes.Buffer
	o := Options{Files: []string{"x.txt"}, SplitSize: 100}
	n, err := Run[api.RecordV1](context.Background(), &bytes.Buffer{}, &errB, o, p, Records, NewRecordWriterFactory("fasta", false))
	require.NoError(t, err)
	require.Zero(t, n)
	require.Contains(t, errB.String(), "WARN: x.txt")

	errB.Reset()
	o.Quiet = true
	_, err = Run[api.RecordV1](context.Background(), &bytes.Buffer{}, &errB, o, p, Records, NewRecordWriterFactory("fasta", false))
	require.NoError(t, err)
	require.Empty(t, errB.String())
}

func TestRun_BadSplitSizeIsUsageError(t *testing.T) {
	p := provider(map[string]string{"a.fa": ">a\nA\n"})
	o := Options{Files: []string{"a.fa"}, SplitSize: 0}
	_, err := Run[api.RecordV1](context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, o, p, Records, NewRecordWriterFactory("fasta", false))
	require.Equal(t, cmdutil.ExitUsage, cmdutil.ExitCode(err))
}

func TestRun_Canceled(t *testing.T) {
	p := provider(map[string]string{"a.fa": fasta(500)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	o := Options{Files: []string{"a.fa"}, SplitSize: 64, Threads: 2}
	_, err := Run[api.RecordV1](ctx, &bytes.Buffer{}, &bytes.Buffer{}, o, p, Records, NewRecordWriterFactory("tsv", true))
	require.Equal(t, cmdutil.ExitCanceled, cmdutil.ExitCode(err))
}

func TestVerify(t *testing.T) {
	p := provider(map[string]string{"a.fa": fasta(40), "b.fa": fasta(7)})
	o := Options{Files: []string{"a.fa", "b.fa"}, SplitSize: 9, Threads: 3}
	rep, err := Verify(context.Background(), &bytes.Buffer{}, o, p, false)
	require.NoError(t, err)
	require.True(t, rep.OK(), rep.String())
	require.Equal(t, 47, rep.SplitCount)
	require.Equal(t, 47, rep.WholeCount)
	require.Equal(t, 2, rep.WholeSplits)
	require.Greater(t, rep.Splits, 2)

	g := provider(map[string]string{"g.fa": ">chr\n" + strings.Repeat("ACGGT", 50) + "\n"})
	o = Options{Files: []string{"g.fa"}, SplitSize: 17, Scan: fastx.Options{K: 7}}
	rep, err = Verify(context.Background(), &bytes.Buffer{}, o, g, true)
	require.NoError(t, err)
	require.True(t, rep.OK(), rep.String())
	require.Equal(t, "sequence", rep.Kind)
	require.Equal(t, 1, rep.WholeCount)
}

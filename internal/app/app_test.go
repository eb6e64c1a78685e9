package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"fastsplit/internal/splitio"
	"fastsplit/pkg/api"
)

const fasta = ">a desc\nACGT\nAC\n>b\nGG\n>c\n\n>d\nTTTT\n"

func mem(files map[string]string) *splitio.MemProvider {
	p := splitio.NewMemProvider()
	for n, d := range files {
		p.Put(n, []byte(d))
	}
	return p
}

func run(t *testing.T, p splitio.Provider, args ...string) (int, string, string) {
	t.Helper()
	var out, errB bytes.Buffer
	code := RunWith(context.Background(), args, &out, &errB, p)
	return code, out.String(), errB.String()
}

func TestScan_SameOutputForEverySplitSize(t *testing.T) {
	p := mem(map[string]string{"a.fa": fasta})
	code, whole, stderr := run(t, p, "scan", "--split-size", "1000", "a.fa")
	require.Equal(t, 0, code, stderr)
	require.Contains(t, whole, ">b\nGG\n")
	require.Contains(t, whole, ">d\nTTTT\n")
	require.Equal(t, 4, strings.Count(whole, ">"))

	for size := 1; size <= len(fasta); size++ {
		code, got, stderr := run(t, p, "scan", "-q", "-t", "3", "--split-size", fmt.Sprint(size), "a.fa")
		require.Equal(t, 0, code, stderr)
		if diff := cmp.Diff(whole, got); diff != "" {
			t.Fatalf("split size %d (-whole +split):\n%s", size, diff)
		}
	}
}

func TestScan_TSVAndFASTQ(t *testing.T) {
	fq := "@r1\nACGT\n+\nIIII\n@r2\nGG\n+r2\n##\n"
	p := mem(map[string]string{"r.fq": fq})

	code, out, stderr := run(t, p, "scan", "-i", "fastq", "--split-size", "7", "r.fq")
	require.Equal(t, 0, code, stderr)
	require.Equal(t, fq, out)

	code, out, stderr = run(t, p, "scan", "-i", "fastq", "-f", "tsv", "--split-size", "7", "r.fq")
	require.Equal(t, 0, code, stderr)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "file\tsplit_start\toffset\tkey\tvalue\tkey2\tquality", lines[0])
	require.Equal(t, "r.fq\t14\t16\tr2\tGG\tr2\t##", lines[2])
}

func TestLong_KmersMatchWholeScan(t *testing.T) {
	seq := ">chr1\nACGTACGTTAGCAT\n"
	p := mem(map[string]string{"g.fa": seq})
	code, whole, stderr := run(t, p, "long", "--k", "3", "-f", "kmers", "--no-header", "--split-size", "1000", "g.fa")
	require.Equal(t, 0, code, stderr)
	require.Equal(t, 12, strings.Count(whole, "\n"))

	for size := 1; size <= len(seq); size++ {
		code, got, stderr := run(t, p, "long", "-q", "--k", "3", "-f", "kmers", "--no-header", "--split-size", fmt.Sprint(size), "g.fa")
		require.Equal(t, 0, code, stderr)
		require.Equal(t, whole, got, "split size %d", size)
	}
}

func TestVerify(t *testing.T) {
	p := mem(map[string]string{"a.fa": fasta, "g.fa": ">g\nACGTACGTACGTAC\n"})

	code, out, stderr := run(t, p, "verify", "--split-size", "3", "a.fa")
	require.Equal(t, 0, code, stderr)
	require.True(t, strings.HasPrefix(out, "OK\trecords"), out)

	code, out, stderr = run(t, p, "verify", "--long", "--k", "4", "--split-size", "5", "g.fa")
	require.Equal(t, 0, code, stderr)
	require.True(t, strings.HasPrefix(out, "OK\tsequence"), out)
}

func TestPlan(t *testing.T) {
	p := mem(map[string]string{"x.fa": "0123456789"})
	code, out, stderr := run(t, p, "plan", "--split-size", "4", "x.fa")
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "file\tindex\tstart\tlength\nx.fa\t0\t0\t4\nx.fa\t1\t4\t4\nx.fa\t2\t8\t2\n", out)

	code, out, stderr = run(t, p, "plan", "--json", "--split-size", "4", "x.fa")
	require.Equal(t, 0, code, stderr)
	var m api.ManifestV1
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	require.Equal(t, []api.FileV1{{Name: "x.fa", Size: 10, Splits: 3}}, m.Files)
	require.Len(t, m.Splits, 3)

	path := filepath.Join(t.TempDir(), "plan.json")
	code, _, stderr = run(t, p, "plan", "--no-header", "--manifest", path, "--split-size", "4", "x.fa")
	require.Equal(t, 0, code, stderr)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var saved api.ManifestV1
	require.NoError(t, json.Unmarshal(data, &saved))
	require.Equal(t, m, saved)
}

func TestDispatch(t *testing.T) {
	p := mem(nil)

	code, out, _ := run(t, p)
	require.Equal(t, 0, code)
	require.Contains(t, out, "Commands:")

	code, out, _ = run(t, p, "--version")
	require.Equal(t, 0, code)
	require.Equal(t, "fastsplit version dev\n", out)

	code, out, _ = run(t, p, "help", "scan")
	require.Equal(t, 0, code)
	require.Contains(t, out, "Usage: fastsplit scan")

	code, out, _ = run(t, p, "scan", "--help")
	require.Equal(t, 0, code)
	require.Contains(t, out, "--split-size")

	code, out, _ = run(t, p, "examples")
	require.Equal(t, 0, code)
	require.Contains(t, out, "quickstart")

	code, _, stderr := run(t, p, "frobnicate")
	require.Equal(t, 2, code)
	require.Contains(t, stderr, `unknown command "frobnicate"`)
}

func TestUsageAndRuntimeErrors(t *testing.T) {
	p := mem(map[string]string{"a.fa": fasta, "r.fq": "@r\nAC\n+\nI\n"})
	cases := []struct {
		args []string
		code int
		msg  string
	}{
		{[]string{"scan"}, 2, "at least one input file"},
		{[]string{"scan", "--bogus", "a.fa"}, 2, "unknown flag"},
		{[]string{"scan", "missing.fa"}, 2, "not found"},
		{[]string{"scan", "-f", "kmers", "a.fa"}, 2, "invalid --format"},
		{[]string{"long", "-f", "fastq", "a.fa"}, 2, "invalid --format"},
		{[]string{"scan", "--split-size", "-1", "a.fa"}, 2, "--split-size"},
		{[]string{"scan", "-i", "fastq", "r.fq"}, 3, "quality"},
	}
	for _, tc := range cases {
		code, _, stderr := run(t, p, tc.args...)
		require.Equal(t, tc.code, code, "args %v: %s", tc.args, stderr)
		require.Contains(t, stderr, tc.msg, "args %v", tc.args)
	}
}

func TestCanceledContext(t *testing.T) {
	p := mem(map[string]string{"a.fa": fasta})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errB bytes.Buffer
	code := RunWith(ctx, []string{"scan", "a.fa"}, &out, &errB, p)
	require.Equal(t, 130, code)
}

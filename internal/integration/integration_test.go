package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fastsplit/internal/app"
	"fastsplit/pkg/api"
)

func write(t *testing.T, fn, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), fn)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return path
}

func reads(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "@read%d/1\n%s\n+\n%s\n", i, strings.Repeat("ACGT"[i%4:i%4+1], 20+i%7), strings.Repeat("I", 20+i%7))
	}
	return sb.String()
}

func TestEndToEnd_ScanLocalFiles(t *testing.T) {
	fq := write(t, "reads.fq", reads(200))

	run := func(args ...string) string {
		var out, errB bytes.Buffer
		code := app.Run(args, &out, &errB)
		if code != 0 {
			t.Fatalf("args %v: exit %d err %s", args, code, errB.String())
		}
		return out.String()
	}

	whole := run("scan", "-i", "fastq", fq)
	if n := strings.Count(whole, "\n"); n != 4*200 {
		t.Fatalf("want 200 records, got %d", n)
	}
	for _, size := range []string{"1", "37", "512", "4096"} {
		for _, threads := range []string{"1", "4"} {
			got := run("scan", "-q", "-i", "fastq", "--split-size", size, "-t", threads, fq)
			if got != whole {
				t.Fatalf("split size %s threads %s: output differs from whole-file scan", size, threads)
			}
		}
	}

	js := run("scan", "-i", "fastq", "-f", "jsonl", "--split-size", "100", fq)
	var first api.RecordV1
	if err := json.Unmarshal([]byte(js[:strings.IndexByte(js, '\n')]), &first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if first.Key != "read0/1" || first.Offset != 0 || first.File != fq {
		t.Fatalf("unexpected first record %+v", first)
	}
}

func TestVerify_ExitCodes(t *testing.T) {
	fa := write(t, "genome.fa", ">chr1\n"+strings.Repeat("ACGTTGCA", 500)+"\n")
	var out, errB bytes.Buffer
	code := app.Run([]string{"verify", "--long", "--k", "21", "--split-size", "333", fa}, &out, &errB)
	if code != 0 {
		t.Fatalf("verify exit %d: %s%s", code, out.String(), errB.String())
	}
	if !strings.HasPrefix(out.String(), "OK") {
		t.Fatalf("unexpected report %q", out.String())
	}
}

func TestOutFileAndConfig(t *testing.T) {
	dir := t.TempDir()
	fa := filepath.Join(dir, "a.fa")
	if err := os.WriteFile(fa, []byte(">x\nAC\n>y\nGT\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := filepath.Join(dir, "conf.json")
	if err := os.WriteFile(cfg, []byte(`{"split_size": 3, /* tiny */ "format": "tsv"}`), 0644); err != nil {
		t.Fatal(err)
	}
	dst := filepath.Join(dir, "out.tsv")

	var out, errB bytes.Buffer
	code := app.Run([]string{"scan", "--config", cfg, "--no-header", "-o", dst, fa}, &out, &errB)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errB.String())
	}
	if out.Len() != 0 {
		t.Fatalf("stdout should be empty with --out, got %q", out.String())
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	want := fa + "\t0\t0\tx\tAC\t\t\n" + fa + "\t6\t6\ty\tGT\t\t\n"
	if string(data) != want {
		t.Fatalf("got %q want %q", data, want)
	}
}

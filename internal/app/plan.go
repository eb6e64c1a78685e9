package app

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"fastsplit/internal/appcore"
	"fastsplit/internal/cli"
	"fastsplit/internal/clibase"
	"fastsplit/internal/split"
	"fastsplit/internal/splitio"
	"fastsplit/internal/writers"
	"fastsplit/pkg/api"
)

// PlanCmd prints the splits scan would use, without reading the files.
func PlanCmd(p splitio.Provider) *cli.Command {
	var c clibase.Common
	var asJSON bool
	var manifest string
	fs := cli.NewFlagSet("plan")
	clibase.Register(fs, &c)
	fs.BoolVar(&asJSON, "json", false, "print the plan as a JSON manifest")
	fs.StringVar(&manifest, "manifest", "", "also write the JSON manifest to this file")
	fs.BoolVar(&c.NoHeader, "no-header", false, "suppress the header line")

	return &cli.Command{
		Flags: fs,
		Usage: "plan [flags] FILE...",
		Short: "Print the split plan for the given files",
		Exec: func(_ context.Context, o *cli.IO, args []string) error {
			if err := clibase.Resolve(fs, &c, "", args); err != nil {
				return err
			}
			m, err := buildManifest(p, c.Files, c.SplitSize)
			if err != nil {
				return err
			}
			if manifest != "" {
				if err := writers.WriteManifestFile(manifest, m); err != nil {
					return err
				}
			}

			bw := bufio.NewWriter(o.Out)
			if asJSON {
				err = writers.WriteManifest(bw, m)
			} else {
				err = writePlanTSV(bw, m.Splits, !c.NoHeader)
			}
			if err != nil {
				return err
			}
			return bw.Flush()
		},
	}
}

func buildManifest(p splitio.Provider, files []string, size int64) (api.ManifestV1, error) {
	splits, err := appcore.Plan(p, files, size)
	if err != nil {
		return api.ManifestV1{}, err
	}
	m := api.ManifestV1{SplitSize: size, Splits: make([]api.SplitV1, 0, len(splits))}
	perFile := map[string]int{}
	for _, s := range splits {
		m.Splits = append(m.Splits, toAPISplit(s))
		perFile[s.File]++
	}
	for _, f := range files {
		n, err := p.Size(f)
		if err != nil {
			return api.ManifestV1{}, err
		}
		m.Files = append(m.Files, api.FileV1{Name: f, Size: n, Splits: perFile[f]})
	}
	return m, nil
}

func toAPISplit(s split.Split) api.SplitV1 {
	return api.SplitV1{File: s.File, Index: s.Index, Start: s.Start, Length: s.Length}
}

func writePlanTSV(w io.Writer, splits []api.SplitV1, header bool) error {
	if header {
		if _, err := io.WriteString(w, "file\tindex\tstart\tlength\n"); err != nil {
			return err
		}
	}
	for _, s := range splits {
		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", s.File, s.Index, s.Start, s.Length); err != nil {
			return err
		}
	}
	return nil
}

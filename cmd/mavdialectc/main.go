// Command mavdialectc compiles a set of MAVLink dialect XML files, named by
// a YAML build manifest, into one merged codec table and logs a summary. The
// logger is a no-op unless -v is given, so without -v the summary and any
// error are not printed; a failure still exits with status 1.
// It is the CLI boundary around the dialect package — every concern here
// (flag parsing, file I/O, manifest format) sits outside the spec's core
// compiler.
package main

import (
	"flag"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/avlink/mavdialect/dialect"
	"github.com/avlink/mavdialect/internal/util"
	"github.com/avlink/mavdialect/log"
	"github.com/avlink/mavdialect/xmlsource"
)

var (
	manifestPath = flag.String("f", "", "build manifest YAML path")
	verbose      = flag.Bool("v", false, "enable development logging")
)

func main() {
	flag.Parse()
	if *manifestPath == "" {
		usage()
		os.Exit(2)
	}
	if *verbose {
		log.Setup()
	}

	defer util.Catch(func(reason any) {
		os.Exit(1)
	})

	m, err := loadManifest(*manifestPath)
	util.PanicIf(err)

	baseDir := filepath.Dir(*manifestPath)
	sources, err := readSources(baseDir, m.Dialects)
	util.PanicIf(err)

	var opts []dialect.Option
	if m.LegacyEnumCounter {
		opts = append(opts, dialect.WithLegacyGlobalCounter())
	}
	if m.Descriptions {
		opts = append(opts, dialect.WithDescriptions())
	}

	merged, err := dialect.Compile(sources, opts...)
	util.PanicIf(err)

	log.Info("compile complete",
		zap.Int("messages", len(merged.Messages)),
		zap.Int("enum_groups", len(merged.Enums.Groups)),
	)
}

func readSources(baseDir string, files []string) ([]*xmlsource.Source, error) {
	sources := make([]*xmlsource.Source, 0, len(files))
	for _, f := range files {
		path := f
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, f)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		tree, err := xmlsource.ParseXML(data)
		if err != nil {
			return nil, err
		}
		src, err := xmlsource.NewSource(filepath.Base(f), tree)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

func usage() {
	os.Stderr.WriteString("mavdialectc - compile MAVLink dialect XML into a codec table\n")
	os.Stderr.WriteString("\t-f\tbuild manifest YAML path\n")
	os.Stderr.WriteString("\t-v\tenable development logging\n")
}

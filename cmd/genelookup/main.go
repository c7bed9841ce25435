// genelookup translates one or more gene identifiers between namespaces
// using the lookup table embedded in the binary, printing a two-column TSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/carbocation/regulonmap/genedb"
)

func main() {
	var (
		ids  string
		from string
		to   string
	)

	flag.StringVar(&ids, "ids", "", "Comma-separated identifiers to translate, e.g. 7157,673.")
	flag.StringVar(&from, "from", genedb.NamespaceEntrez, "Source identifier namespace.")
	flag.StringVar(&to, "to", genedb.NamespaceSymbol, "Target identifier namespace.")
	flag.Parse()

	if ids == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	split := strings.Split(ids, ",")
	for i := range split {
		split[i] = strings.TrimSpace(split[i])
	}

	if err := lookup(split, from, to); err != nil {
		log.Fatalln(err)
	}
}

func lookup(ids []string, from, to string) error {
	ff, err := genedb.EmbeddedFlatFile()
	if err != nil {
		return err
	}

	mapped, err := ff.MapIDs(context.Background(), ids, from, to)
	if err != nil {
		return err
	}

	fmt.Printf("%s\t%s\n", from, to)
	for i, id := range ids {
		fmt.Printf("%s\t%s\n", id, mapped[i])
	}

	return nil
}

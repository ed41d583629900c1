// +build debug

package ttf

import (
	"fmt"
	"os"
	"sort"
)

const debug = true

// dumpTables prints the table directory and the fields of every table this
// package parsed, sorted by tag.
func (f *Font) dumpTables() {
	var output = os.Stderr

	tags := make([]string, 0, len(f.tables))
	for tag := range f.tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	fmt.Fprintf(output, "scalerType=%#x numTables=%d\n", scalerTypeTrueType, len(tags))
	for _, tag := range tags {
		fmt.Fprintf(output, "%s\t%d bytes\n", tag, len(f.tables[tag]))
	}
	fmt.Fprintf(output, "head: %+v\n", *f.Head)
	fmt.Fprintf(output, "maxp: %+v\n", *f.Maxp)
	fmt.Fprintf(output, "hhea: %+v\n", *f.Hhea)
	if f.Name != nil {
		fmt.Fprintf(output, "name: %+v\n", *f.Name)
	}
}

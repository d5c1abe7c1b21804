package main

import (
	"errors"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cimpress-mcp/woff2font"
	"github.com/tdewolff/argp"
)

func main() {
	// os.Exit doesn't execute pending defer calls, this is fixed by encapsulating run()
	os.Exit(run())
}

func run() int {
	var quiet bool
	var collectionIndex int
	var runeList string
	var input, output string

	cmd := argp.New("Decode a WOFF2 font file to SFNT (TTF/OTF/TTC) - Cimpress")
	cmd.AddOpt(&quiet, "q", "quiet", "Suppress output except for errors.")
	cmd.AddOpt(&collectionIndex, "i", "collection-index", "For a WOFF2 collection (TTC), the font index whose name/cmap summary to print.")
	cmd.AddOpt(&runeList, "r", "rune", "Comma-separated list of runes (eg. 'A,f,€') to resolve to glyph IDs via cmap and print.")
	cmd.AddOpt(&output, "o", "output", "Output SFNT file (default: input with its extension replaced by .ttf).")
	cmd.AddArg(&input, "input", "Input WOFF2 file.")
	cmd.Parse()

	Error := log.New(os.Stderr, "ERROR: ", 0)

	b, err := ioutil.ReadFile(input)
	if err != nil {
		Error.Println(err)
		return 1
	}

	if !font.IsWOFF2(b) {
		Error.Println("input is not a WOFF2 file")
		return 1
	}

	sfntBytes, err := font.ConvertWOFF2ToTTF(b)
	if err != nil {
		Error.Println(err)
		return 1
	}

	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".ttf"
	}
	if err := ioutil.WriteFile(output, sfntBytes, 0644); err != nil {
		Error.Println(err)
		return 1
	}
	if !quiet {
		fmt.Printf("%s: %d bytes => %s: %d bytes\n", input, len(b), output, len(sfntBytes))
	}

	tables, flavorStr, err := font.ExtractTables(sfntBytes, collectionIndex)
	if err != nil {
		Error.Println(err)
		return 1
	}

	info, err := font.ParseInfo(flavorStr, tables)
	if err != nil {
		Error.Println(err)
		return 1
	}

	if !quiet {
		if info.Name != nil {
			if family, ok := info.Name.PreferredString(font.NameFamily); ok {
				fmt.Println("family:", family)
			}
			if full, ok := info.Name.PreferredString(font.NameFull); ok {
				fmt.Println("full name:", full)
			}
		}
		fmt.Println("glyphs:", info.Maxp.NumGlyphs, " units per em:", info.Head.UnitsPerEm)
	}

	if runeList != "" && info.Cmap != nil {
		for _, field := range strings.Split(runeList, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			r, err := parseRune(field)
			if err != nil {
				Error.Println(err)
				return 1
			}
			if glyphID, ok := info.Cmap.Lookup(r); ok {
				fmt.Printf("%q -> glyph %d\n", r, glyphID)
			} else {
				fmt.Printf("%q -> not mapped\n", r)
			}
		}
	}

	return 0
}

// parseRune accepts either a single literal rune (eg. "A") or a "U+XXXX"/
// "0xXXXX" hex codepoint.
func parseRune(field string) (rune, error) {
	upper := strings.ToUpper(field)
	switch {
	case strings.HasPrefix(upper, "U+"):
		v, err := strconv.ParseInt(field[2:], 16, 32)
		return rune(v), err
	case strings.HasPrefix(upper, "0X"):
		v, err := strconv.ParseInt(field[2:], 16, 32)
		return rune(v), err
	}
	runes := []rune(field)
	if len(runes) != 1 {
		return 0, errors.New("expected a single character or a U+XXXX codepoint: " + field)
	}
	return runes[0], nil
}

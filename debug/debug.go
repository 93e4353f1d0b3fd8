package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Tokens  bool
	Extract bool
	Dates   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Tokens = boolEnv("OZTREE_DEBUG_TOKENS")
	d.Extract = boolEnv("OZTREE_DEBUG_EXTRACT")
	d.Dates = boolEnv("OZTREE_DEBUG_DATES")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Tokens traces every inclusion token the assembler resolves.
func Tokens() bool {
	return d.Tokens
}

// Extract traces every node the extractor keeps or excludes.
func Extract() bool {
	return d.Extract
}

// Dates dumps the path labels computed during date imputation.
func Dates() bool {
	return d.Dates
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
	os.Stderr.Write([]byte{'\n'})
}

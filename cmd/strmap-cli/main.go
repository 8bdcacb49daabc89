package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/netip"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/UTD-JLA/strmap/pkg/strmap"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

var (
	configFlag  = flag.String("config", "", "path to a TOML config file with default tokens")
	joinerFlag  = flag.String("joiner", "", "token separating a key from its value")
	joinerShort = flag.String("j", "", "token separating a key from its value (shorthand)")
	delimFlag   = flag.String("delimiter", "", "token separating pairs")
	delimShort  = flag.String("d", "", "token separating pairs (shorthand)")
	getFlag     = flag.String("get", "", "print the value of a single key")
	typeFlag    = flag.String("type", "string", "type to convert the value of -get to")
	setFlag     = flag.String("set", "", "blob of pairs to add to the map before output")
	removeFlag  = flag.String("remove", "", "comma-separated keys to remove before output")
	listFlag    = flag.Bool("list", false, "print one key and value per line instead of a blob")
	verboseFlag = flag.Bool("verbose", false, "log diagnostics to stderr")
)

func getOneOfStringFlags(flags ...*string) string {
	for _, flag := range flags {
		if *flag != "" {
			return *flag
		}
	}

	return ""
}

func readBlob() (string, error) {
	if flag.NArg() > 0 {
		return flag.Arg(0), nil
	}

	data, err := io.ReadAll(os.Stdin)

	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}

	return string(data), nil
}

// printTyped converts the stored value of key to the named type before
// printing, exercising the same conversion catalog library consumers use.
func printTyped(m *strmap.Map, key, typeName string) (err error) {
	var value any

	switch typeName {
	case "string":
		value, err = strmap.Get[string](m, key)
	case "bool":
		value, err = strmap.Get[bool](m, key)
	case "int":
		value, err = strmap.Get[int64](m, key)
	case "uint":
		value, err = strmap.Get[uint64](m, key)
	case "float":
		value, err = strmap.Get[float64](m, key)
	case "bigint":
		value, err = strmap.Get[*big.Int](m, key)
	case "decimal":
		value, err = strmap.Get[decimal.Decimal](m, key)
	case "uuid":
		value, err = strmap.Get[uuid.UUID](m, key)
	case "time":
		value, err = strmap.Get[time.Time](m, key)
	case "duration":
		value, err = strmap.Get[time.Duration](m, key)
	case "version":
		value, err = strmap.Get[*semver.Version](m, key)
	case "url":
		value, err = strmap.Get[*url.URL](m, key)
	case "ip":
		value, err = strmap.Get[netip.Addr](m, key)
	case "lang":
		value, err = strmap.Get[language.Tag](m, key)
	default:
		return fmt.Errorf("unknown type %q", typeName)
	}

	if err != nil {
		return err
	}

	fmt.Println(value)

	return nil
}

func run(logger *slog.Logger) error {
	config := NewConfig()

	if *configFlag != "" {
		if err := config.Load(*configFlag); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger.Info("Loaded config", slog.String("path", *configFlag))
	}

	joiner := getOneOfStringFlags(joinerFlag, joinerShort)
	delimiter := getOneOfStringFlags(delimFlag, delimShort)

	if joiner == "" {
		joiner = config.Joiner
	}

	if delimiter == "" {
		delimiter = config.Delimiter
	}

	blob, err := readBlob()

	if err != nil {
		return err
	}

	m, err := strmap.Parse(blob, joiner, delimiter)

	if err != nil {
		return fmt.Errorf("failed to parse blob: %w", err)
	}

	logger.Info("Parsed blob",
		slog.Int("entries", m.Len()),
		slog.String("joiner", joiner),
		slog.String("delimiter", delimiter),
	)

	if *setFlag != "" {
		added, err := strmap.Parse(*setFlag, joiner, delimiter)

		if err != nil {
			return fmt.Errorf("failed to parse -set blob: %w", err)
		}

		for _, key := range added.Keys() {
			value, _ := added.GetRaw(key)

			if err = strmap.Add(m, key, value); err != nil {
				return err
			}
		}
	}

	if *removeFlag != "" {
		removed := m.RemoveRange(strings.Split(*removeFlag, ","))
		logger.Info("Removed entries", slog.Int("count", removed))
	}

	if *getFlag != "" {
		return printTyped(m, *getFlag, *typeFlag)
	}

	if *listFlag {
		for _, key := range m.Keys() {
			value, _ := m.GetRaw(key)
			fmt.Printf("%s%s%s\n", key, joiner, value)
		}

		return nil
	}

	fmt.Println(m.String())

	return nil
}

func Usage() {
	out := flag.CommandLine.Output()

	fmt.Fprintf(out, "Usage: %s [flags] [blob]\n", os.Args[0])
	fmt.Fprintln(out, "Parses a delimited key-value blob and prints, queries, or edits it.")
	fmt.Fprintln(out, "The blob is read from the first argument, or from stdin when absent.")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Examples:")
	fmt.Fprintf(out, "  %s 'a=1;b=2'\n", os.Args[0])
	fmt.Fprintf(out, "  %s -get port -type int 'host=db;port=5432'\n", os.Args[0])
	fmt.Fprintf(out, "  %s -set 'c=3' -remove a 'a=1;b=2'\n", os.Args[0])
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Flags:")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = Usage
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if *verboseFlag {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	if err := run(logger); err != nil {
		fmt.Fprintf(os.Stderr, "\u001b[31mError: %s\u001b[0m\n", err)
		os.Exit(1)
	}
}

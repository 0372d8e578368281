package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"

	"forme.dev/groups/model"
	"forme.dev/groups/registry"
	"forme.dev/groups/schema"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "hash":
		return cmdHash(args[1:], out, errOut)
	case "member":
		return cmdMember(args[1:], out, errOut)
	case "verify-schema":
		return cmdVerifySchema(args[1:], out, errOut)
	case "kinds":
		return cmdKinds(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "groups: typed values, flat containers and their content hashes")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  groups hash [--alg <alg>] [--kind <alias>] [--cid] [--json] <doc>")
	fmt.Fprintln(w, "  groups member --hash <hex> [--alg <alg>] [--kind <alias>] [--json] <doc>")
	fmt.Fprintln(w, "  groups verify-schema [--json] <schema>")
	fmt.Fprintln(w, "  groups kinds")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Every command accepts --registry <file> and --verbose.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - <doc> is YAML or JSON; a scalar is hashed as a value, a sequence or mapping as a container")
	fmt.Fprintln(w, "  - --alg is one of: sha256 (default), sha3-256, blake2b-256, shake256")
	fmt.Fprintln(w, "  - --registry extends the built-in aliases, e.g. 'aliases: {integer: [long]}'")
	fmt.Fprintln(w, "  - member exits 0 when the hash is a leaf of the container, 1 otherwise")
}

type common struct {
	registryPath string
	verbose      bool
	log          *logrus.Logger
}

func (c *common) bind(fs *flag.FlagSet) {
	fs.StringVar(&c.registryPath, "registry", "", "Registry config file (YAML/JSON)")
	fs.BoolVar(&c.verbose, "verbose", false, "Log debug output to stderr")
}

func (c *common) init(errOut io.Writer) {
	c.log = logrus.New()
	c.log.SetOutput(errOut)
	c.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if c.verbose {
		c.log.SetLevel(logrus.DebugLevel)
	} else {
		c.log.SetLevel(logrus.WarnLevel)
	}
}

func (c *common) loadRegistry() (*registry.Registry, error) {
	if c.registryPath == "" {
		c.log.Debug("using built-in registry")
		return registry.Default(), nil
	}
	cfg, err := registry.LoadConfig(c.registryPath)
	if err != nil {
		return nil, err
	}
	reg, err := registry.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	c.log.WithFields(logrus.Fields{"path": c.registryPath, "aliases": len(reg.Aliases())}).Debug("loaded registry")
	return reg, nil
}

func readDoc(path string, log *logrus.Logger) (any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := model.DecodeDocument(b)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"path": path, "shape": fmt.Sprintf("%T", doc)}).Debug("decoded document")
	return doc, nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func cmdHash(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("hash", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var c common
	c.bind(fs)
	var alg, kind string
	var asCID, asJSON bool
	fs.StringVar(&alg, "alg", "", "Hash algorithm")
	fs.StringVar(&kind, "kind", "", "Container kind alias (overrides the document shape)")
	fs.BoolVar(&asCID, "cid", false, "Print the CID instead of the hex digest")
	fs.BoolVar(&asJSON, "json", false, "Print the full JSON view")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: groups hash [--alg <alg>] [--kind <alias>] [--cid] [--json] <doc>")
		return 2
	}
	c.init(errOut)

	reg, err := c.loadRegistry()
	if err != nil {
		fmt.Fprintf(errOut, "registry: %v\n", err)
		return 1
	}
	doc, err := readDoc(fs.Arg(0), c.log)
	if err != nil {
		fmt.Fprintf(errOut, "read document: %v\n", err)
		return 1
	}
	resp, err := model.Hash(reg, model.HashRequest{Data: doc, Kind: kind, Algorithm: alg})
	if err != nil {
		fmt.Fprintf(errOut, "hash: %v\n", err)
		return 1
	}

	if asJSON {
		if err := writeJSON(out, resp); err != nil {
			fmt.Fprintf(errOut, "write: %v\n", err)
			return 1
		}
		return 0
	}
	var hexDigest, cidStr string
	if resp.Container != nil {
		hexDigest, cidStr = resp.Container.Root, resp.Container.CID
		c.log.WithFields(logrus.Fields{"kind": resp.Container.Kind, "items": len(resp.Container.Items)}).Debug("built container")
	} else {
		hexDigest, cidStr = resp.Value.Hash, resp.Value.CID
		c.log.WithField("kind", resp.Value.Kind).Debug("built value")
	}
	if asCID {
		_, _ = fmt.Fprintln(out, cidStr)
	} else {
		_, _ = fmt.Fprintln(out, hexDigest)
	}
	return 0
}

func cmdMember(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("member", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var c common
	c.bind(fs)
	var candidate, alg, kind string
	var asJSON bool
	fs.StringVar(&candidate, "hash", "", "Candidate leaf hash (hex)")
	fs.StringVar(&alg, "alg", "", "Hash algorithm")
	fs.StringVar(&kind, "kind", "", "Container kind alias (overrides the document shape)")
	fs.BoolVar(&asJSON, "json", false, "Print the full JSON result")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if candidate == "" || fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: groups member --hash <hex> [--alg <alg>] [--kind <alias>] [--json] <doc>")
		return 2
	}
	c.init(errOut)

	reg, err := c.loadRegistry()
	if err != nil {
		fmt.Fprintf(errOut, "registry: %v\n", err)
		return 1
	}
	doc, err := readDoc(fs.Arg(0), c.log)
	if err != nil {
		fmt.Fprintf(errOut, "read document: %v\n", err)
		return 1
	}
	res, err := model.Membership(reg, model.MembershipRequest{
		HashRequest: model.HashRequest{Data: doc, Kind: kind, Algorithm: alg},
		Candidate:   strings.ToLower(strings.TrimSpace(candidate)),
	})
	if err != nil {
		fmt.Fprintf(errOut, "member: %v\n", err)
		return 1
	}

	if asJSON {
		if err := writeJSON(out, res); err != nil {
			fmt.Fprintf(errOut, "write: %v\n", err)
			return 1
		}
	} else {
		_, _ = fmt.Fprintln(out, res.Member)
	}
	if !res.Member {
		return 1
	}
	return 0
}

func cmdVerifySchema(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("verify-schema", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var c common
	c.bind(fs)
	var asJSON bool
	fs.BoolVar(&asJSON, "json", false, "Print the full JSON result")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: groups verify-schema [--json] <schema>")
		return 2
	}
	c.init(errOut)

	reg, err := c.loadRegistry()
	if err != nil {
		fmt.Fprintf(errOut, "registry: %v\n", err)
		return 1
	}
	b, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "read schema: %v\n", err)
		return 1
	}
	s, err := schema.Decode(b)
	if err != nil {
		fmt.Fprintf(errOut, "invalid schema document: %v\n", err)
		return 1
	}
	v := model.VerifySchema(reg, s)
	c.log.WithFields(logrus.Fields{"fields": s.Len(), "leaves": len(v.Leaves)}).Debug("verified schema")

	if asJSON {
		if err := writeJSON(out, v); err != nil {
			fmt.Fprintf(errOut, "write: %v\n", err)
			return 1
		}
	} else if v.Valid {
		_, _ = fmt.Fprintln(out, "OK")
	} else {
		fmt.Fprintf(errOut, "invalid: %s\n", v.Message)
	}
	if !v.Valid {
		return 1
	}
	return 0
}

func cmdKinds(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("kinds", flag.ContinueOnError)
	fs.SetOutput(errOut)

	var c common
	c.bind(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	c.init(errOut)

	reg, err := c.loadRegistry()
	if err != nil {
		fmt.Fprintf(errOut, "registry: %v\n", err)
		return 1
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"kind", "brackets", "reserved", "aliases"})
	table.SetAutoWrapText(false)
	for _, k := range model.Kinds(reg) {
		table.Append([]string{k.Name, k.Brackets, k.Reserved, strings.Join(k.Aliases, " ")})
	}
	table.Render()
	return 0
}

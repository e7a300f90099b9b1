package manifest

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/gxhash/hashlib"
)

const headerPrefix = "# gxhash "

var nameEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`)

// WriteText writes m in the sha256sum-compatible text format.
func WriteText(w io.Writer, m *Manifest) error {
	bw := bufio.NewWriter(w)

	var (
		alg   string
		seed  int64
		first = true
	)
	for _, e := range m.Entries {
		if first || e.Algorithm != alg || e.Seed != seed {
			alg, seed, first = e.Algorithm, e.Seed, false
			if _, err := fmt.Fprintf(bw, "%s%s seed=%d\n", headerPrefix, alg, seed); err != nil {
				return err
			}
		}
		name := e.Name
		if strings.ContainsAny(name, "\\\n") {
			name = nameEscaper.Replace(name)
			if err := bw.WriteByte('\\'); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(bw, "%s  %s\n", e.Digest, name); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ParseText reads a text manifest.
func ParseText(r io.Reader) (*Manifest, error) {
	m := New()

	var (
		alg     hashlib.Algorithm
		seed    int64
		lineNo  int
		scanner = bufio.NewScanner(r)
	)
	scanner.Buffer(make([]byte, 0, 64<<10), 1<<20)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if !strings.HasPrefix(line, headerPrefix) {
				continue
			}
			a, s, err := parseHeader(line[len(headerPrefix):])
			if err != nil {
				return nil, &ParseError{Line: lineNo, Msg: err.Error()}
			}
			alg, seed = a, s
			continue
		}

		e, err := parseEntry(line, alg, seed)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Msg: err.Error()}
		}
		m.Add(e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func parseHeader(s string) (hashlib.Algorithm, int64, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 || !strings.HasPrefix(fields[1], "seed=") {
		return 0, 0, fmt.Errorf("invalid header %q", s)
	}
	a, err := hashlib.ParseAlgorithm(fields[0])
	if err != nil {
		return 0, 0, err
	}
	seed, err := strconv.ParseInt(strings.TrimPrefix(fields[1], "seed="), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid seed: %w", err)
	}
	return a, seed, nil
}

func parseEntry(line string, alg hashlib.Algorithm, seed int64) (Entry, error) {
	escaped := strings.HasPrefix(line, `\`)
	if escaped {
		line = line[1:]
	}

	sp := strings.IndexByte(line, ' ')
	if sp <= 0 || sp+2 > len(line) || (line[sp+1] != ' ' && line[sp+1] != '*') {
		return Entry{}, fmt.Errorf("expected \"<digest>  <name>\"")
	}
	digest := strings.ToLower(line[:sp])
	name := line[sp+2:]
	if name == "" {
		return Entry{}, fmt.Errorf("empty name")
	}
	if escaped {
		var err error
		if name, err = unescapeName(name); err != nil {
			return Entry{}, err
		}
	}
	if _, err := hex.DecodeString(digest); err != nil {
		return Entry{}, fmt.Errorf("invalid digest %q", digest)
	}

	if alg == 0 {
		alg = algorithmForSize(len(digest) / 2)
		if alg == 0 {
			return Entry{}, fmt.Errorf("cannot infer algorithm from %d-byte digest", len(digest)/2)
		}
	} else if len(digest) != 2*alg.Size() {
		return Entry{}, fmt.Errorf("digest length %d does not match %s", len(digest)/2, alg)
	}

	return Entry{Name: name, Algorithm: alg.String(), Seed: seed, Digest: digest}, nil
}

func algorithmForSize(n int) hashlib.Algorithm {
	for _, a := range []hashlib.Algorithm{hashlib.GxHash32, hashlib.GxHash64, hashlib.GxHash128} {
		if a.Size() == n {
			return a
		}
	}
	return 0
}

func unescapeName(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i == len(s) {
			return "", fmt.Errorf("dangling escape")
		}
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		default:
			return "", fmt.Errorf("invalid escape \\%c", s[i])
		}
	}
	return b.String(), nil
}

// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-jwtkit.
//
// go-jwtkit is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jeremyhahn/go-jwtkit/pkg/encoding/jwt"
)

// OutputFormat defines the output format type
type OutputFormat string

const (
	OutputFormatText  OutputFormat = "text"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatTable OutputFormat = "table"
)

// Printer handles formatted output
type Printer struct {
	format OutputFormat
	writer io.Writer
}

// NewPrinter creates a new Printer
func NewPrinter(format string, writer io.Writer) *Printer {
	return &Printer{
		format: OutputFormat(format),
		writer: writer,
	}
}

// KeyInfo describes a loaded key without its material
type KeyInfo struct {
	KeyID      string `json:"kid"`
	KeyType    string `json:"kty"`
	Use        string `json:"use,omitempty"`
	Algorithm  string `json:"alg,omitempty"`
	Private    bool   `json:"private"`
	Thumbprint string `json:"thumbprint"`
}

// PrintToken prints an encoded token
func (p *Printer) PrintToken(token string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"token": token,
		})
	case OutputFormatTable, OutputFormatText:
		fmt.Fprintln(p.writer, token)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintDecoded prints the header and claims of a token. verified reports
// whether the signature was checked.
func (p *Printer) PrintDecoded(token *jwt.Token, verified bool) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"verified": verified,
			"header":   token.Headers(),
			"claims":   token.Payload(),
		})
	case OutputFormatTable, OutputFormatText:
		if !verified {
			fmt.Fprintln(p.writer, "WARNING: signature NOT verified")
		}
		fmt.Fprintln(p.writer, "Header:")
		if err := p.printIndented(token.Headers()); err != nil {
			return err
		}
		fmt.Fprintln(p.writer, "Claims:")
		return p.printIndented(token.Payload())
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintKeyList prints a list of keys
func (p *Printer) PrintKeyList(keys []KeyInfo) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"keys": keys,
		})
	case OutputFormatTable:
		if len(keys) == 0 {
			fmt.Fprintln(p.writer, "No keys found")
			return nil
		}
		fmt.Fprintf(p.writer, "%-24s %-5s %-4s %-6s %-8s %s\n", "KID", "KTY", "USE", "ALG", "PRIVATE", "THUMBPRINT")
		fmt.Fprintln(p.writer, strings.Repeat("-", 96))
		for _, key := range keys {
			fmt.Fprintf(p.writer, "%-24s %-5s %-4s %-6s %-8t %s\n",
				key.KeyID, key.KeyType, key.Use, key.Algorithm, key.Private, key.Thumbprint)
		}
		return nil
	case OutputFormatText:
		if len(keys) == 0 {
			fmt.Fprintln(p.writer, "No keys found")
			return nil
		}
		fmt.Fprintln(p.writer, "Keys:")
		for _, key := range keys {
			kid := key.KeyID
			if kid == "" {
				kid = "(no kid)"
			}
			fmt.Fprintf(p.writer, "  - %s (%s, thumbprint %s)\n", kid, key.KeyType, key.Thumbprint)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintAlgorithms prints algorithm identifiers
func (p *Printer) PrintAlgorithms(algorithms []string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"algorithms": algorithms,
		})
	case OutputFormatTable, OutputFormatText:
		fmt.Fprintln(p.writer, "Supported Algorithms:")
		for _, alg := range algorithms {
			fmt.Fprintf(p.writer, "  - %s\n", alg)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintRaw writes pre-encoded JSON, indented
func (p *Printer) PrintRaw(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return p.printJSON(v)
}

// PrintError prints an error message
func (p *Printer) PrintError(err error) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		})
	default:
		fmt.Fprintf(p.writer, "Error: %v\n", err)
		return nil
	}
}

func (p *Printer) printIndented(v interface{}) error {
	data, err := json.MarshalIndent(v, "  ", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(p.writer, "  %s\n", data)
	return nil
}

func (p *Printer) printJSON(data interface{}) error {
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

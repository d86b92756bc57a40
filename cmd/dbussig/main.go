// Command dbussig inspects DBus type signatures: it validates a
// signature, prints the ArgumentNode tree it parses to, and decodes a
// hex-encoded wire value of a given signature.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"github.com/havelange/dbusarg"
	"github.com/havelange/dbusarg/wire"
	"github.com/havelange/dbusarg/wiretest"
	"github.com/kr/pretty"
)

var globalArgs struct {
	ByteOrderFlag string `flag:"byte-order,default=l,DBus byte-order flag to decode with ('l' little-endian, 'B' big-endian)"`
}

func main() {
	root := &command.C{
		Name:     "dbussig",
		Usage:    "command args...",
		SetFlags: command.Flags(flax.MustBind, &globalArgs),
		Commands: []*command.C{
			{
				Name:  "validate",
				Usage: "validate signature",
				Help:  "Report whether a signature string describes exactly one complete DBus type.",
				Run:   command.Adapt(runValidate),
			},
			{
				Name:  "tree",
				Usage: "tree signature",
				Help:  "Print the ArgumentNode tree a signature parses to.",
				Run:   command.Adapt(runTree),
			},
			{
				Name:  "decode",
				Usage: "decode signature hex-bytes",
				Help:  "Decode a hex-encoded wire value of the given signature and pretty-print it.",
				Run:   command.Adapt(runDecode),
			},
			command.HelpCommand(nil),
			command.VersionCommand(),
		},
	}

	env := root.NewEnv(nil)
	command.RunOrFail(env, os.Args[1:])
}

func runValidate(env *command.Env, sig string) error {
	if !dbus.ValidateSingle(sig) {
		return fmt.Errorf("%q is not a valid single DBus type signature", sig)
	}
	fmt.Printf("%q is a valid signature\n", sig)
	return nil
}

func runTree(env *command.Env, sig string) error {
	node, err := dbus.FromSignature(sig, "", nil)
	if err != nil {
		return err
	}
	printNode(node, 0)
	return nil
}

func printNode(n *dbus.ArgumentNode, depth int) {
	indent := strings.Repeat("  ", depth)
	label := n.Name()
	if label == "" {
		label = "-"
	}
	fmt.Printf("%s%s: %c (%s) host=%s\n", indent, label, n.DBusType(), n.Kind(), n.HostClassOf())
	for _, c := range n.Children() {
		printNode(c, depth+1)
	}
}

func runDecode(env *command.Env, sig, hexBytes string) error {
	node, err := dbus.FromSignature(sig, "", nil)
	if err != nil {
		return err
	}
	data, err := hex.DecodeString(hexBytes)
	if err != nil {
		return fmt.Errorf("decoding hex bytes: %w", err)
	}
	if len(globalArgs.ByteOrderFlag) != 1 {
		return fmt.Errorf("--byte-order must be a single flag byte ('l' or 'B'), got %q", globalArgs.ByteOrderFlag)
	}
	order, err := wire.OrderForFlag(globalArgs.ByteOrderFlag[0])
	if err != nil {
		return err
	}
	v, err := wiretest.Decode(env.Context(), order, node, data)
	if err != nil {
		return err
	}
	fmt.Printf("%# v\n", pretty.Formatter(v))
	return nil
}

package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/opd-ai/go-argon2"
)

func main() {
	var (
		helpFlag    bool
		saltHex     string
		timeCost    uint32
		memoryKiB   uint32
		lanes       uint32
		threads     uint32
		length      uint32
		mode        string
		encodedFlag bool
		versionTen  bool
	)
	flags := flag.NewFlagSet("argon2key", flag.ContinueOnError)
	flags.BoolVarP(&helpFlag, "help", "h", false, "Prints this usage information.")
	flags.StringVarP(&saltHex, "salt", "s", "", "Salt as a hex string, at least 8 bytes once decoded.")
	flags.Uint32VarP(&timeCost, "time", "t", 3, "Number of passes over memory.")
	flags.Uint32VarP(&memoryKiB, "memory", "m", 64*1024, "Memory cost in KiB.")
	flags.Uint32VarP(&lanes, "lanes", "p", 4, "Degree of parallelism (lanes). Changes the output.")
	flags.Uint32Var(&threads, "threads", 0, "Worker threads, defaults to the lane count. Never changes the output.")
	flags.Uint32VarP(&length, "length", "n", 32, "Derived key length in bytes.")
	flags.StringVar(&mode, "mode", "i", "Variant: \"d\" (data-dependent) or \"i\" (data-independent).")
	flags.BoolVarP(&encodedFlag, "encoded", "e", false, "Print a PHC encoded string instead of raw hex.")
	flags.BoolVar(&versionTen, "v10", false, "Use the legacy 1.0 algorithm version instead of 1.3.")
	flags.Usage = func() {
		fmt.Printf(`
argon2key derives a key from a password read on stdin using the Argon2 memory-hard function.

USAGE:  argon2key -s SALTHEX [FLAGS]

The password is read from the first line of stdin, without the trailing newline.

FLAGS:
%s`, flags.FlagUsages())
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		flags.Usage()
		fatal("Error parsing flags: %v", err)
	}
	if helpFlag {
		flags.Usage()
		return
	}
	if saltHex == "" {
		flags.Usage()
		fatal("Missing required --salt flag")
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		fatal("Failed to decode salt, must be a hex string: %v", err)
	}

	var m argon2.Mode
	switch mode {
	case "d":
		m = argon2.ModeArgon2d
	case "i":
		m = argon2.ModeArgon2i
	default:
		fatal("Unknown mode %q, must be \"d\" or \"i\"", mode)
	}
	version := uint32(argon2.Version13)
	if versionTen {
		version = argon2.Version10
	}

	password, err := readPassword()
	if err != nil {
		fatal("Failed to read password: %v", err)
	}

	ctx := &argon2.Context{
		Password:      password,
		Salt:          salt,
		TagLength:     length,
		TimeCost:      timeCost,
		MemoryKiB:     memoryKiB,
		Lanes:         lanes,
		Threads:       threads,
		Version:       version,
		Mode:          m,
		WipeMemory:    true,
		ClearPassword: true,
	}
	if encodedFlag {
		out, err := argon2.HashEncoded(ctx)
		if err != nil {
			fatal("Derivation failed: %v", err)
		}
		fmt.Println(out)
		return
	}
	tag, err := argon2.Hash(ctx)
	if err != nil {
		fatal("Derivation failed: %v", err)
	}
	fmt.Println(hex.EncodeToString(tag))
}

func readPassword() ([]byte, error) {
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

func fatal(msg string, args ...any) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprintf(os.Stderr, msg, args...)
	os.Exit(1)
}

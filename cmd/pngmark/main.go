package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/systemshift/pngmark/internal/pngmark"
	"github.com/systemshift/pngmark/internal/pngmark/logger"
	pngpkg "github.com/systemshift/pngmark/pkg/pngmark"
)

var applog *logrus.Logger

func main() {
	// Parse command line arguments
	compress := flag.Bool("z", false, "Compress messages with LZMA")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()
	args := flag.Args()

	if *showVersion {
		fmt.Println(pngmark.BuildInfo())
		os.Exit(0)
	}

	applog = logger.Quiet()
	if *verbose {
		applog = logger.New("debug")
	}

	if len(args) < 1 {
		fmt.Println("Usage: pngmark [flags] <command> [args...]")
		fmt.Println("\nCommands:")
		fmt.Println("  print <file>                        List chunks")
		fmt.Println("  encode <file> <type> <msg> [out]    Embed a message")
		fmt.Println("  decode <file> <type>                Extract a message")
		fmt.Println("  remove <file> <type>                Remove a chunk")
		fmt.Println("  scan <dir>                          Find PNGs with non-standard chunks")
		fmt.Println("\nFlags:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Handle commands
	cmd := args[0]
	switch cmd {
	case "print":
		if len(args) < 2 {
			log.Fatal("Usage: pngmark print <file>")
		}
		handlePrint(args[1])

	case "encode":
		if len(args) < 4 {
			log.Fatal("Usage: pngmark encode <file> <type> <message> [out]")
		}
		out := args[1]
		if len(args) > 4 {
			out = args[4]
		}
		handleEncode(args[1], args[2], args[3], out, *compress)

	case "decode":
		if len(args) < 3 {
			log.Fatal("Usage: pngmark decode <file> <type>")
		}
		handleDecode(args[1], args[2], *compress)

	case "remove":
		if len(args) < 3 {
			log.Fatal("Usage: pngmark remove <file> <type>")
		}
		handleRemove(args[1], args[2])

	case "scan":
		if len(args) < 2 {
			log.Fatal("Usage: pngmark scan <dir>")
		}
		handleScan(args[1])

	default:
		log.Fatalf("Unknown command: %s", cmd)
	}
}

func handlePrint(path string) {
	f, err := pngpkg.Open(path)
	if err != nil {
		log.Fatalf("Error opening png: %v", err)
	}

	fmt.Printf("%-6s %10s %12s %-9s %-7s %-5s %s\n",
		"TYPE", "LENGTH", "CRC", "CRITICAL", "PUBLIC", "COPY", "VALID")
	for _, c := range f.Chunks() {
		fmt.Printf("%-6s %10d %12d %-9v %-7v %-5v %v\n",
			c.Type, c.Length, c.CRC, c.Critical, c.Public, c.SafeToCopy, c.Valid)
	}
}

func handleEncode(path, typeCode, message, out string, compress bool) {
	f, err := pngpkg.Open(path)
	if err != nil {
		log.Fatalf("Error opening png: %v", err)
	}

	if err := f.Embed(typeCode, []byte(message), pngpkg.EmbedOptions{Compress: compress}); err != nil {
		log.Fatalf("Error embedding message: %v", err)
	}

	if err := f.SaveAs(out); err != nil {
		log.Fatalf("Error writing png: %v", err)
	}

	applog.WithFields(logrus.Fields{
		"type": typeCode,
		"out":  out,
	}).Debug("embedded message")
	fmt.Printf("Embedded %d byte message in %s chunk of %s\n", len(message), typeCode, out)
}

func handleDecode(path, typeCode string, compress bool) {
	f, err := pngpkg.Open(path)
	if err != nil {
		log.Fatalf("Error opening png: %v", err)
	}

	msg, err := f.Extract(typeCode, pngpkg.EmbedOptions{Compress: compress})
	if err != nil {
		log.Fatalf("Error extracting message: %v", err)
	}

	fmt.Println(string(msg))
}

func handleRemove(path, typeCode string) {
	f, err := pngpkg.Open(path)
	if err != nil {
		log.Fatalf("Error opening png: %v", err)
	}

	if err := f.Remove(typeCode); err != nil {
		log.Fatalf("Error removing chunk: %v", err)
	}

	if err := f.Save(); err != nil {
		log.Fatalf("Error writing png: %v", err)
	}

	fmt.Printf("Removed %s chunk from %s\n", typeCode, path)
}

// standardTypes are the chunk types registered by the PNG specification;
// anything else found during a scan is worth flagging.
var standardTypes = map[string]bool{
	"IHDR": true, "PLTE": true, "IDAT": true, "IEND": true,
	"tRNS": true, "cHRM": true, "gAMA": true, "iCCP": true,
	"sBIT": true, "sRGB": true, "tEXt": true, "zTXt": true,
	"iTXt": true, "bKGD": true, "hIST": true, "pHYs": true,
	"sPLT": true, "tIME": true,
}

func handleScan(dir string) {
	found := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".png") {
			return nil
		}

		f, err := pngpkg.Open(path)
		if err != nil {
			// Corrupt or non-PNG files are reported, not fatal, so the
			// walk can finish.
			applog.WithError(err).Warnf("skipping %s", path)
			fmt.Printf("%s: unreadable (%v)\n", path, err)
			return nil
		}

		for _, c := range f.Chunks() {
			if !standardTypes[c.Type] {
				fmt.Printf("%s: %s chunk, %d bytes\n", path, c.Type, c.Length)
				found++
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Error scanning %s: %v", dir, err)
	}

	fmt.Printf("Found %d non-standard chunk(s)\n", found)
}

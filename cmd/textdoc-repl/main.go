// Command textdoc-repl is an interactive shell over a single document.
// It exists to poke at the model from a terminal: insert text, move
// the cursor, remove selections, and dump the element tree.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dshills/textdoc/document"
	"github.com/dshills/textdoc/document/cursor"
	"github.com/dshills/textdoc/document/element"
)

type repl struct {
	doc    *document.Document
	cursor *cursor.Cursor
	reader *bufio.Reader
}

func main() {
	doc, err := document.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating document: %v\n", err)
		os.Exit(1)
	}

	r := &repl{
		doc:    doc,
		cursor: doc.NewCursor(),
		reader: bufio.NewReader(os.Stdin),
	}

	r.doc.OnTextChanged(func(tc element.TextChange) {
		fmt.Printf("  [text change] position=%d removed=%d added=%d\n", tc.Position, tc.Removed, tc.Added)
	})
	r.doc.OnElementChanged(func(ec element.ElementChange) {
		fmt.Printf("  [element change] id=%d reason=%s\n", ec.Element.ID(), ec.Reason)
	})

	fmt.Printf("textdoc repl, document %s\n", r.doc.ID())
	fmt.Println("Type 'help' for commands, 'quit' to exit")

	for {
		fmt.Print("textdoc> ")
		input, err := r.reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !r.handle(input) {
			return
		}
	}
}

func (r *repl) handle(input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help":
		r.printHelp()

	case "quit", "exit":
		return false

	case "set":
		// Everything after the command, \n escapes included.
		text := unescape(strings.TrimSpace(strings.TrimPrefix(input, parts[0])))
		if err := r.doc.SetPlainText(text); err != nil {
			fmt.Printf("error: %v\n", err)
		}

	case "insert":
		text := unescape(strings.TrimSpace(strings.TrimPrefix(input, parts[0])))
		start, end, err := r.cursor.InsertPlainText(text)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			break
		}
		fmt.Printf("inserted [%d, %d)\n", start, end)

	case "block":
		if _, err := r.cursor.InsertBlock(); err != nil {
			fmt.Printf("error: %v\n", err)
		}

	case "frame":
		if _, err := r.cursor.InsertFrame(); err != nil {
			fmt.Printf("error: %v\n", err)
		}

	case "pos":
		if len(args) == 0 {
			fmt.Printf("position=%d anchor=%d\n", r.cursor.Position(), r.cursor.AnchorPosition())
			break
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Printf("error: %v\n", err)
			break
		}
		mode := cursor.MoveAnchor
		if len(args) > 1 && args[1] == "keep" {
			mode = cursor.KeepAnchor
		}
		r.cursor.SetPosition(n, mode)

	case "select":
		if len(args) < 2 {
			fmt.Println("usage: select <from> <to>")
			break
		}
		from, err1 := strconv.Atoi(args[0])
		to, err2 := strconv.Atoi(args[1])
		if err1 != nil || err2 != nil {
			fmt.Println("usage: select <from> <to>")
			break
		}
		r.cursor.SetPosition(from, cursor.MoveAnchor)
		r.cursor.SetPosition(to, cursor.KeepAnchor)
		fmt.Printf("selected %q\n", r.cursor.SelectedText())

	case "remove":
		newPos, removed, err := r.cursor.Remove()
		if err != nil {
			fmt.Printf("error: %v\n", err)
			break
		}
		fmt.Printf("removed %d characters, cursor at %d\n", removed, newPos)

	case "move":
		if len(args) == 0 {
			fmt.Println("usage: move start|end|left|right|startofblock|endofblock [keep]")
			break
		}
		op, ok := moveOps[args[0]]
		if !ok {
			fmt.Printf("unknown motion %q\n", args[0])
			break
		}
		mode := cursor.MoveAnchor
		if len(args) > 1 && args[1] == "keep" {
			mode = cursor.KeepAnchor
		}
		r.cursor.MovePosition(op, mode)
		fmt.Printf("position=%d anchor=%d\n", r.cursor.Position(), r.cursor.AnchorPosition())

	case "text":
		fmt.Printf("%q\n", r.doc.ToPlainText())

	case "info":
		fmt.Printf("blocks=%d characters=%d position=%d anchor=%d\n",
			r.doc.BlockCount(), r.doc.CharacterCount(),
			r.cursor.Position(), r.cursor.AnchorPosition())

	case "dump":
		fmt.Print(r.doc.DumpElements())

	default:
		fmt.Printf("unknown command %q, try 'help'\n", cmd)
	}
	return true
}

var moveOps = map[string]cursor.MoveOperation{
	"start":        cursor.Start,
	"end":          cursor.End,
	"left":         cursor.Left,
	"right":        cursor.Right,
	"startofblock": cursor.StartOfBlock,
	"endofblock":   cursor.EndOfBlock,
}

// unescape turns literal \n sequences into newlines so multi-block
// inserts can be typed on one line.
func unescape(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

func (r *repl) printHelp() {
	fmt.Println(`Commands:
  set <text>         replace the whole document (\n for newline)
  insert <text>      insert at the cursor (\n for newline)
  block              split the current block at the cursor
  frame              insert a frame at the cursor
  pos [n] [keep]     show or set the cursor position
  select <from> <to> select a span and print it
  remove             remove the selection
  move <op> [keep]   start|end|left|right|startofblock|endofblock
  text               print the document as plain text
  info               print document and cursor state
  dump               print the element tree
  quit               exit`)
}

package net

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/peterkuimelis/tcgadvisor/internal/engine"
	"github.com/peterkuimelis/tcgadvisor/internal/log"
)

const helpText = `Commands:
  hand <card, card, ...>    set the cards in your hand
  field <card, card, ...>   set the cards on your field
  enemy <card, card, ...>   set the cards on the opponent's field
  mode <name>               pure, enemy or feature_learning
  go                        ask for a recommendation
  search <text>             list card names containing text
  clear                     forget hand, field, enemy and mode
  quit                      disconnect`

// Client connects to an advisor server and provides a terminal REPL.
type Client struct {
	conn net.Conn
	in   io.Reader
	out  io.Writer

	board ClientMessage
}

// Connect connects to a server and runs the REPL on stdin and stdout.
func Connect(ctx context.Context, addr string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	fmt.Printf("Connected to %s. Type help for commands.\n", addr)
	return NewClient(conn, os.Stdin, os.Stdout).RunREPL(ctx)
}

func NewClient(conn net.Conn, in io.Reader, out io.Writer) *Client {
	return &Client{conn: conn, in: in, out: out}
}

// RunREPL reads commands until quit, end of input or ctx cancellation.
func (c *Client) RunREPL(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { c.conn.Close() })
	defer stop()

	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)
	scanner := bufio.NewScanner(c.in)

	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			_ = enc.Encode(ClientMessage{Type: TypeQuit})
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		arg = strings.TrimSpace(arg)

		switch strings.ToLower(cmd) {
		case "":
		case "hand":
			c.board.Hand = splitNames(arg)
			fmt.Fprintf(c.out, "hand: %v\n", c.board.Hand)
		case "field":
			c.board.Field = splitNames(arg)
			fmt.Fprintf(c.out, "field: %v\n", c.board.Field)
		case "enemy":
			c.board.Enemy = splitNames(arg)
			fmt.Fprintf(c.out, "enemy: %v\n", c.board.Enemy)
		case "mode":
			c.board.Mode = arg
			fmt.Fprintf(c.out, "mode: %s\n", arg)
		case "clear":
			c.board = ClientMessage{}
			fmt.Fprintln(c.out, "board cleared")

		case "go":
			req := c.board
			req.Type = TypeRecommend
			if err := enc.Encode(req); err != nil {
				return fmt.Errorf("send recommend: %w", err)
			}
			if err := c.readRun(dec); err != nil {
				return err
			}

		case "search":
			if err := enc.Encode(ClientMessage{Type: TypeSearch, Query: arg}); err != nil {
				return fmt.Errorf("send search: %w", err)
			}
			var msg ServerMessage
			if err := dec.Decode(&msg); err != nil {
				return fmt.Errorf("read message: %w", err)
			}
			c.renderCards(msg)

		case "quit", "exit":
			if err := enc.Encode(ClientMessage{Type: TypeQuit}); err != nil {
				return fmt.Errorf("send quit: %w", err)
			}
			return nil

		case "help":
			fmt.Fprintln(c.out, helpText)
		default:
			fmt.Fprintf(c.out, "unknown command %q, type help for commands\n", cmd)
		}
	}
}

// readRun renders streamed events until the run's result or error arrives.
func (c *Client) readRun(dec *json.Decoder) error {
	for {
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}
		switch msg.Type {
		case TypeEvent:
			if msg.Event != nil {
				fmt.Fprintln(c.out, log.FormatEvent(*msg.Event))
			}
		case TypeResult:
			c.renderResult(msg.Result)
			return nil
		case TypeError:
			fmt.Fprintf(c.out, "error: %s\n", msg.Error)
			return nil
		}
	}
}

func (c *Client) renderResult(res *engine.Result) {
	if res == nil {
		return
	}
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "Recommended plays (run %s):\n", res.RunID)
	n := 0
	for _, st := range res.Steps {
		if st.IsTerminal() {
			fmt.Fprintf(c.out, "  %s\n", st.Message)
			continue
		}
		n++
		line := fmt.Sprintf("  %d. %s [%s] NA %.1f", n, st.PlayedCard, st.Type, st.NAValue)
		if st.Position != "" {
			line += " in " + st.Position + " position"
		}
		if st.Target != "" {
			line += ", targeting " + st.Target
		}
		fmt.Fprintln(c.out, line)
	}
	if res.CanContinue {
		fmt.Fprintln(c.out, "Ask again next turn for more plays.")
	}
}

func (c *Client) renderCards(msg ServerMessage) {
	if msg.Type == TypeError {
		fmt.Fprintf(c.out, "error: %s\n", msg.Error)
		return
	}
	if len(msg.Cards) == 0 {
		fmt.Fprintln(c.out, "no matching cards")
		return
	}
	for _, name := range msg.Cards {
		fmt.Fprintf(c.out, "  %s\n", name)
	}
}

// splitNames splits a comma-separated list, dropping blanks.
func splitNames(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
